// Package mailer は週次レポートメールの送信シミュレーションを提供する。
// 実際のSMTP接続は行わず、送信内容をログへ出力して短い遅延の後に
// 成功を報告する。
package mailer

import (
	"context"
	"log/slog"
	"time"

	"github.com/hitoshi/timejoy/internal/security"
)

// defaultDelay は送信シミュレーションの擬似ネットワーク遅延。
const defaultDelay = 1500 * time.Millisecond

// Config はメール送信シミュレーションの設定。
type Config struct {
	Host string
	From string
}

// Mailer は週次レポートの送信シミュレーター。
type Mailer struct {
	config    Config
	sanitizer security.ReportSanitizerService
	logger    *slog.Logger
	delay     time.Duration // テスト用に短縮可能
}

// New はMailerの新しいインスタンスを生成する。
func New(config Config, sanitizer security.ReportSanitizerService, logger *slog.Logger) *Mailer {
	return &Mailer{
		config:    config,
		sanitizer: sanitizer,
		logger:    logger,
		delay:     defaultDelay,
	}
}

// SendWeeklyReport は週次レポートの送信をシミュレートする。
// HTML本文をサニタイズし、送信内容をログへ出力し、遅延の後にtrueを返す。
// コンテキストがキャンセルされた場合はfalseを返す。
func (m *Mailer) SendWeeklyReport(ctx context.Context, recipient, reportHTML string) bool {
	body := m.sanitizer.SanitizeHTML(reportHTML)

	m.logger.Info("[SIMULATION] メールを送信します",
		slog.String("host", m.config.Host),
		slog.String("from", m.config.From),
		slog.String("to", recipient),
		slog.Int("content_length", len(body)),
	)

	select {
	case <-time.After(m.delay):
	case <-ctx.Done():
		m.logger.Warn("[SIMULATION] メール送信がキャンセルされました",
			slog.String("to", recipient),
			slog.String("error", ctx.Err().Error()),
		)
		return false
	}

	m.logger.Info("[SIMULATION] メールの送信に成功しました", slog.String("to", recipient))
	return true
}
