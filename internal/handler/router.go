package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/timejoy/internal/metrics"
	"github.com/hitoshi/timejoy/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	SessionFinder     middleware.SessionFinder
	UserFinder        middleware.UserFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger
	CSRFConfig        middleware.CSRFConfig

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// タイムエントリー
	EntryService EntryServiceInterface

	// ダッシュボード
	DashboardData       DashboardDataSource
	ReflectionGenerator ReflectionGenerator
	ReportSender        ReportSender
	Metrics             metrics.MetricsCollector

	// カタログ
	CatalogService CatalogServiceInterface
	CatalogReader  CatalogReader

	// バックアップ
	BackupService BackupServiceInterface

	// Prometheusメトリクスの公開（nilの場合は/metricsを公開しない）
	MetricsGatherer prometheus.Gatherer
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → Metrics → SecurityHeaders → CORS →
//	SessionMiddleware → CSRF → RateLimitMiddleware(General)
//
// 認証ルート（/auth/*）はセッションミドルウェアの外に配置する。
// 管理者専用ルート（/api/admin/*）にはAdminMiddlewareを追加する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	entryHandler := NewEntryHandler(deps.EntryService)
	dashHandler := NewDashboardHandler(deps.DashboardData, deps.ReflectionGenerator, deps.ReportSender, deps.Metrics)
	catalogHandler := NewCatalogHandler(deps.CatalogService, deps.CatalogReader)
	backupHandler := NewBackupHandler(deps.BackupService)

	// --- 認証不要のルート ---

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))
	}

	r.Get("/api/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig).ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Session → CSRF → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// タイムエントリー
		r.Route("/api/entries", func(r chi.Router) {
			// POST /api/entries - エントリー記録（記録専用レート制限を追加）
			r.With(deps.RateLimiter.EntryLogMiddleware()).Post("/", entryHandler.LogEntry)

			r.Get("/recent", entryHandler.RecentEntries)
			r.Get("/last-end", entryHandler.LastEntryEnd)
		})
		r.Get("/api/timeslots", entryHandler.Slots)

		// カタログ閲覧（記録フォーム用）
		r.Get("/api/catalogs", catalogHandler.List)

		// ダッシュボード
		r.Route("/api/dashboard", func(r chi.Router) {
			r.Get("/", dashHandler.View)
			r.Post("/reflection", dashHandler.Reflection)
			r.Post("/report", dashHandler.SendReport)
		})

		// プロファイル更新
		r.Put("/api/users/me", authHandler.UpdateProfile)

		// --- 管理者専用ルート ---
		r.Route("/api/admin", func(r chi.Router) {
			r.Use(middleware.NewAdminMiddleware(deps.UserFinder))

			r.Route("/work-types", func(r chi.Router) {
				r.Post("/", catalogHandler.AddWorkType)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", catalogHandler.RenameWorkType)
					r.Post("/color", catalogHandler.CycleWorkTypeColor)
					r.Delete("/", catalogHandler.DeleteWorkType)
				})
			})

			r.Route("/moods", func(r chi.Router) {
				r.Post("/", catalogHandler.AddMoodOption)
				r.Route("/{id}", func(r chi.Router) {
					r.Patch("/", catalogHandler.UpdateMoodOption)
					r.Post("/color", catalogHandler.CycleMoodColor)
					r.Delete("/", catalogHandler.DeleteMoodOption)
				})
			})

			r.Route("/backup", func(r chi.Router) {
				r.Get("/", backupHandler.Export)
				r.Post("/", backupHandler.Import)
			})
		})
	})

	return r
}
