package middleware

import (
	"log/slog"
	"net/http"

	"github.com/hitoshi/timejoy/internal/model"
)

// UserFinder は管理者判定に必要なユーザー検索のインターフェース。
// store.Storeの部分集合として定義する。
type UserFinder interface {
	FindUserByID(id string) *model.User
}

// NewAdminMiddleware は管理者ロールのユーザーのみ通過させるミドルウェアを返す。
// SessionMiddlewareの後に配置する。非管理者には403 Forbiddenを返す。
func NewAdminMiddleware(users UserFinder) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := UserIDFromContext(r.Context())
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			user := users.FindUserByID(userID)
			if !user.IsAdmin() {
				slog.Warn("管理者権限のない操作を拒否しました",
					slog.String("user_id", userID),
					slog.String("path", r.URL.Path),
				)
				WriteErrorResponse(w, http.StatusForbidden, &model.APIError{
					Code:     "FORBIDDEN",
					Message:  "この操作には管理者権限が必要です。",
					Category: "auth",
					Action:   "管理者プロファイルでログインしてください。",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
