package account

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/store"
)

// adminUsername はこの小文字表記に一致するユーザー名で登録すると
// 管理者ロールが付与される。
const adminUsername = "admin"

// ServiceConfig はアカウントサービスの設定。
type ServiceConfig struct {
	SessionMaxAge int // セッション有効期間（秒）
}

// Service はプロファイル切り替えのビジネスロジックを提供する。
type Service struct {
	store    *store.Store
	sessions *SessionStore
	config   ServiceConfig
}

// NewService はServiceを生成する。
func NewService(st *store.Store, sessions *SessionStore, config ServiceConfig) *Service {
	return &Service{
		store:    st,
		sessions: sessions,
		config:   config,
	}
}

// Register は新しいローカルプロファイルを作成してログインする。
// email・usernameはカタログ全体で大文字小文字を無視して一意でなければならない。
// 小文字化したusernameが "admin" のときは管理者ロールを付与する。
func (s *Service) Register(ctx context.Context, username, email string) (*model.User, *model.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	role := model.RoleUser
	if strings.ToLower(username) == adminUsername {
		role = model.RoleAdmin
	}

	now := time.Now()
	newUser := model.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Update(func(doc *store.Document) error {
		for _, u := range doc.Users {
			if u.EmailEquals(email) {
				return model.NewEmailTakenError()
			}
			if u.UsernameEquals(username) {
				return model.NewUsernameTakenError()
			}
		}
		doc.Users = append(doc.Users, newUser)
		doc.User = &newUser
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, newUser.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("新しいプロファイルを登録しました",
		slog.String("user_id", newUser.ID),
		slog.String("role", string(newUser.Role)),
	)
	return &newUser, session, nil
}

// Login は既存プロファイルへ切り替える。
// emailでユーザーを検索し、usernameが一致した場合のみ成功する。
func (s *Service) Login(ctx context.Context, username, email string) (*model.User, *model.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	user := s.store.FindUserByEmail(email)
	if user == nil {
		return nil, nil, model.NewUserNotFoundError()
	}
	if !user.UsernameEquals(username) {
		return nil, nil, model.NewCredentialMismatchError()
	}

	if err := s.store.Update(func(doc *store.Document) error {
		active := *user
		doc.User = &active
		return nil
	}); err != nil {
		return nil, nil, err
	}

	session, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("プロファイルを切り替えました", slog.String("user_id", user.ID))
	return user, session, nil
}

// Logout はセッションを破棄し、アクティブプロファイルを解除する。
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("session ID is required")
	}

	if err := s.sessions.DeleteByID(ctx, sessionID); err != nil {
		return fmt.Errorf("セッションの破棄に失敗しました: %w", err)
	}

	if err := s.store.Update(func(doc *store.Document) error {
		doc.User = nil
		return nil
	}); err != nil {
		return err
	}

	slog.Info("ログアウトしました", slog.String("session_id", sessionID))
	return nil
}

// CurrentUser はセッションから現在のユーザーを取得する。
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}

	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("セッションの検索に失敗しました: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("session not found or expired")
	}

	user := s.store.FindUserByID(session.UserID)
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// UpdateProfile はユーザー名とメールアドレスを更新する。
// 空文字列のフィールドは変更しない。一意性チェックは自分自身を除いて行う。
func (s *Service) UpdateProfile(ctx context.Context, userID, username, email string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	var updated model.User
	err := s.store.Update(func(doc *store.Document) error {
		idx := -1
		for i, u := range doc.Users {
			if u.ID == userID {
				idx = i
				continue
			}
			if email != "" && u.EmailEquals(email) {
				return model.NewEmailTakenError()
			}
			if username != "" && u.UsernameEquals(username) {
				return model.NewUsernameTakenError()
			}
		}
		if idx < 0 {
			return model.NewUserNotFoundError()
		}

		if username != "" {
			doc.Users[idx].Username = username
		}
		if email != "" {
			doc.Users[idx].Email = email
		}
		doc.Users[idx].UpdatedAt = time.Now()
		updated = doc.Users[idx]

		// アクティブプロファイルが本人なら追従させる
		if doc.User != nil && doc.User.ID == userID {
			active := updated
			doc.User = &active
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("プロファイルを更新しました", slog.String("user_id", userID))
	return &updated, nil
}

// createSession はセッションを作成して保管する。
// 同一ユーザーの既存セッションは破棄し、アクティブなセッションを常に1つに保つ。
func (s *Service) createSession(ctx context.Context, userID string) (*model.Session, error) {
	if err := s.sessions.DeleteByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("既存セッションの破棄に失敗しました: %w", err)
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return nil, fmt.Errorf("セッションIDの生成に失敗しました: %w", err)
	}

	session := &model.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(time.Duration(s.config.SessionMaxAge) * time.Second),
		CreatedAt: time.Now(),
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("セッションの保存に失敗しました: %w", err)
	}
	return session, nil
}

// generateSessionID は暗号的に安全なセッションIDを生成する。
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
