package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/timejoy/internal/middleware"
	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/timelog"
	"github.com/hitoshi/timejoy/internal/timeslot"
)

// EntryServiceInterface はエントリーハンドラーが必要とするサービスインターフェース。
type EntryServiceInterface interface {
	LogEntry(ctx context.Context, userID string, req timelog.LogRequest) (*model.TimeEntry, error)
	RecentEntries(ctx context.Context, userID string) []model.TimeEntry
	LastEntryEnd(ctx context.Context, userID, date string) string
	Slots(ctx context.Context) []string
	Today() string
}

// EntryHandler はタイムエントリーのHTTPハンドラー。
type EntryHandler struct {
	service EntryServiceInterface
}

// NewEntryHandler はEntryHandlerを生成する。
func NewEntryHandler(service EntryServiceInterface) *EntryHandler {
	return &EntryHandler{service: service}
}

// logEntryRequest はエントリー記録リクエストのボディ。
type logEntryRequest struct {
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	WorkTypeID string `json:"workTypeId"`
	MoodID     string `json:"moodId"`
	Comment    string `json:"comment"`
}

// LogEntry はタイムエントリーを記録する。
// POST /api/entries
func (h *EntryHandler) LogEntry(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req logEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}
	if req.Date == "" {
		req.Date = h.service.Today()
	}

	entry, err := h.service.LogEntry(r.Context(), userID, timelog.LogRequest{
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		WorkTypeID: req.WorkTypeID,
		MoodID:     req.MoodID,
		Comment:    req.Comment,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(entry)
}

// RecentEntries は直近のエントリー一覧を新しい順に返す。
// GET /api/entries/recent
func (h *EntryHandler) RecentEntries(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	entries := h.service.RecentEntries(r.Context(), userID)
	if entries == nil {
		entries = []model.TimeEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}

// LastEntryEnd は指定日の最終エントリー終了時刻を返す。
// suggestedEndは終了時刻の次のスロットで、記録フォームの終了時刻の
// 初期値に使う。次のスロットがない場合（24:00）は空文字列。
// GET /api/entries/last-end?date=YYYY-MM-DD
func (h *EntryHandler) LastEntryEnd(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.service.Today()
	}

	endTime := h.service.LastEntryEnd(r.Context(), userID, date)
	suggested, _ := timeslot.NextSlot(endTime)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"date":         date,
		"endTime":      endTime,
		"suggestedEnd": suggested,
	})
}

// Slots は記録フォーム用の30分刻みの時刻候補を返す。
// GET /api/timeslots
func (h *EntryHandler) Slots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.service.Slots(r.Context()))
}
