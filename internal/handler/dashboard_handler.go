package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/hitoshi/timejoy/internal/metrics"
	"github.com/hitoshi/timejoy/internal/middleware"
	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/report"
)

// DashboardDataSource はダッシュボード集計に必要な状態読み取りのインターフェース。
// store.Storeの部分集合として定義する。
type DashboardDataSource interface {
	FindUserByID(id string) *model.User
	Entries() []model.TimeEntry
	EntriesByUser(userID string) []model.TimeEntry
	WorkTypes() []model.WorkType
	MoodOptions() []model.MoodOption
}

// ReflectionGenerator は振り返り生成のインターフェース。
type ReflectionGenerator interface {
	GenerateReflection(ctx context.Context, entries []model.TimeEntry, workTypes []model.WorkType, moods []model.MoodOption) string
}

// ReportSender は週次レポート送信のインターフェース。
type ReportSender interface {
	SendWeeklyReport(ctx context.Context, recipient, reportHTML string) bool
}

// DashboardHandler はダッシュボード関連のHTTPハンドラー。
type DashboardHandler struct {
	data       DashboardDataSource
	reflection ReflectionGenerator
	reports    ReportSender
	metrics    metrics.MetricsCollector
	now        func() time.Time
}

// NewDashboardHandler はDashboardHandlerを生成する。
func NewDashboardHandler(data DashboardDataSource, reflection ReflectionGenerator, reports ReportSender, collector metrics.MetricsCollector) *DashboardHandler {
	return &DashboardHandler{
		data:       data,
		reflection: reflection,
		reports:    reports,
		metrics:    collector,
		now:        time.Now,
	}
}

// View はプライバシー対応のダッシュボード集計を返す。
// 管理者には全エントリーの集計のみ、一般ユーザーには自分の集計と
// 直近エントリー一覧を返す。
// GET /api/dashboard?date=YYYY-MM-DD
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}
	viewer := h.data.FindUserByID(userID)
	if viewer == nil {
		writeUnauthorized(w)
		return
	}

	today := r.URL.Query().Get("date")
	if today == "" {
		today = h.now().Format("2006-01-02")
	}

	view := report.BuildView(
		viewer,
		h.data.EntriesByUser(userID),
		h.data.Entries(),
		h.data.WorkTypes(),
		h.data.MoodOptions(),
		today,
	)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// Reflection はエントリー群からAI振り返りコメントを生成して返す。
// 生成の失敗は定型文として200で返る。
// POST /api/dashboard/reflection
func (h *DashboardHandler) Reflection(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	start := time.Now()
	text := h.reflection.GenerateReflection(
		r.Context(),
		h.data.EntriesByUser(userID),
		h.data.WorkTypes(),
		h.data.MoodOptions(),
	)
	h.metrics.RecordReflectionLatency(time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"reflection": text})
}

// sendReportRequest は週次レポート送信リクエストのボディ。
type sendReportRequest struct {
	ReportHTML string `json:"reportHtml"`
}

// SendReport は週次レポートメールの送信をシミュレートする。
// 送信先は現在のユーザーのメールアドレス。
// POST /api/dashboard/report
func (h *DashboardHandler) SendReport(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}
	user := h.data.FindUserByID(userID)
	if user == nil {
		writeUnauthorized(w)
		return
	}

	var req sendReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	success := h.reports.SendWeeklyReport(r.Context(), user.Email, req.ReportHTML)
	h.metrics.RecordReportSent(success)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": success})
}
