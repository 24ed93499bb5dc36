package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/timejoy/internal/account"
	"github.com/hitoshi/timejoy/internal/backup"
	"github.com/hitoshi/timejoy/internal/catalog"
	"github.com/hitoshi/timejoy/internal/config"
	"github.com/hitoshi/timejoy/internal/handler"
	"github.com/hitoshi/timejoy/internal/insight"
	"github.com/hitoshi/timejoy/internal/logger"
	"github.com/hitoshi/timejoy/internal/mailer"
	"github.com/hitoshi/timejoy/internal/metrics"
	"github.com/hitoshi/timejoy/internal/middleware"
	"github.com/hitoshi/timejoy/internal/security"
	"github.com/hitoshi/timejoy/internal/store"
	"github.com/hitoshi/timejoy/internal/timelog"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	// export はバックアップJSONをwに書き出すため、ログが混ざらないよう
	// ログ出力は標準エラーに向ける
	if cmd == CommandExport {
		cfg, err := Init(os.Stderr)
		if err != nil {
			return fmt.Errorf("initialization failed: %w", err)
		}
		return runExport(cfg, w)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	return runServe(cfg)
}

// runServe はAPIサーバーモードで起動する。
// 状態ファイルを開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. 状態ファイルのオープン（存在しない場合はシードデータで初期化される）
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}

	slog.Info("state file opened",
		slog.String("path", cfg.StatePath),
	)

	// 2. セッションストアとメトリクスの初期化
	sessions := account.NewSessionStore()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 3. セキュリティサービスの初期化
	sanitizer := security.NewSanitizer()

	// 4. ドメインサービスの初期化
	accountService := account.NewService(st, sessions, account.ServiceConfig{
		SessionMaxAge: cfg.SessionMaxAge,
	})
	entryService := timelog.NewService(st, sanitizer, collector)
	catalogService := catalog.NewService(st)
	backupService := backup.NewService(st)

	insightClient := insight.NewClient(
		&http.Client{Timeout: cfg.InsightTimeout},
		slog.Default(),
		cfg.InsightAPIKey,
		cfg.InsightModelID,
	)
	insightClient.SetEndpoint(cfg.InsightEndpoint)

	reportMailer := mailer.New(mailer.Config{
		Host: cfg.MailHost,
		From: cfg.MailFrom,
	}, sanitizer, slog.Default())

	// 5. レート制限の構成（configはreq/min単位なのでreq/secに変換する）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = perMinute(cfg.RateLimitGeneral)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.EntryLogRate = perMinute(cfg.RateLimitEntryLog)
	rateLimiterCfg.EntryLogBurst = cfg.RateLimitEntryLog
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 6. ルーターの構築
	deps := &handler.RouterDeps{
		SessionFinder:     sessions,
		UserFinder:        st,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),
		CSRFConfig: middleware.CSRFConfig{
			CookieSecure: cfg.CookieSecure,
			CookieDomain: cfg.CookieDomain,
		},

		AuthService: accountService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain:  cfg.CookieDomain,
			CookieSecure:  cfg.CookieSecure,
			SessionMaxAge: cfg.SessionMaxAge,
		},

		EntryService: entryService,

		DashboardData:       st,
		ReflectionGenerator: insightClient,
		ReportSender:        reportMailer,
		Metrics:             collector,

		CatalogService: catalogService,
		CatalogReader:  st,

		BackupService: backupService,

		MetricsGatherer: registry,
	}

	router := handler.NewRouter(deps)

	// 7. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("API server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down API server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("API server stopped gracefully")
	return nil
}

// runExport は状態ファイルをバックアップJSONとして標準出力に書き出す。
// サーバーを起動せずに手元でバックアップを取るための運用サブコマンド。
func runExport(cfg *config.Config, w io.Writer) error {
	st, err := store.Open(cfg.StatePath)
	if err != nil {
		return fmt.Errorf("failed to open state file: %w", err)
	}

	backupService := backup.NewService(st)
	data, err := backupService.ExportJSON(context.Background())
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write backup: %w", err)
	}

	slog.Info("backup exported",
		slog.String("filename", backupService.ExportFileName()),
		slog.Int("bytes", len(data)),
	)
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /health エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/health", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// perMinute はreq/min単位の値をrate.Limit（req/sec）に変換する。
func perMinute(n int) rate.Limit {
	return rate.Limit(float64(n) / 60.0)
}
