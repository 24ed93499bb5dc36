// Package timelog はタイムエントリー記録のドメインロジックを提供する。
package timelog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hitoshi/timejoy/internal/metrics"
	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/report"
	"github.com/hitoshi/timejoy/internal/security"
	"github.com/hitoshi/timejoy/internal/store"
	"github.com/hitoshi/timejoy/internal/timeslot"
)

// defaultStartTime はエントリーが1件もない日の開始時刻の既定値。
const defaultStartTime = "09:00"

// LogRequest はエントリー記録のリクエスト。
type LogRequest struct {
	Date       string
	StartTime  string
	EndTime    string
	WorkTypeID string
	MoodID     string
	Comment    string
}

// Service はタイムエントリー記録のサービス層。
// バリデーション、サニタイズ、採番、永続化を1トランザクションとして扱う。
type Service struct {
	store     *store.Store
	sanitizer security.CommentSanitizerService
	metrics   metrics.MetricsCollector
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(st *store.Store, sanitizer security.CommentSanitizerService, collector metrics.MetricsCollector) *Service {
	return &Service{
		store:     st,
		sanitizer: sanitizer,
		metrics:   collector,
		now:       time.Now,
	}
}

// LogEntry はバリデーションを通過したタイムエントリーを追記する。
// 同一ユーザー・同一日付の既存エントリーとの重複を拒否する。
// エントリーは追記専用で、更新や削除の操作は存在しない。
func (s *Service) LogEntry(ctx context.Context, userID string, req LogRequest) (*model.TimeEntry, error) {
	comment := s.sanitizer.Sanitize(req.Comment)

	entry := model.TimeEntry{
		ID:         uuid.New().String(),
		UserID:     userID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		WorkTypeID: req.WorkTypeID,
		MoodID:     req.MoodID,
		Comment:    comment,
	}

	err := s.store.Update(func(doc *store.Document) error {
		candidate := timeslot.Candidate{
			Date:       req.Date,
			StartTime:  req.StartTime,
			EndTime:    req.EndTime,
			WorkTypeID: req.WorkTypeID,
		}
		existing := make([]model.TimeEntry, 0, len(doc.Entries))
		for _, e := range doc.Entries {
			if e.UserID == userID {
				existing = append(existing, e)
			}
		}

		duration, err := timeslot.Validate(candidate, existing)
		if err != nil {
			return err
		}
		entry.DurationMinutes = duration
		doc.Entries = append(doc.Entries, entry)
		return nil
	})
	if err != nil {
		var apiErr *model.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordValidationReject(apiErr.Code)
		}
		return nil, err
	}

	s.metrics.RecordEntryLogged()
	slog.Info("タイムエントリーを記録しました",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", userID),
		slog.String("date", entry.Date),
		slog.Int("duration_minutes", entry.DurationMinutes),
	)
	return &entry, nil
}

// RecentEntries はユーザーの直近のエントリーを新しい順に返す。
func (s *Service) RecentEntries(ctx context.Context, userID string) []model.TimeEntry {
	return report.RecentEntries(s.store.EntriesByUser(userID))
}

// LastEntryEnd は指定日のユーザーの最終エントリー終了時刻を返す。
// 記録フォームの開始時刻の初期値に使う。その日のエントリーがなければ09:00を返す。
func (s *Service) LastEntryEnd(ctx context.Context, userID, date string) string {
	last := defaultStartTime
	lastMins := -1
	for _, e := range s.store.EntriesByUser(userID) {
		if e.Date != date {
			continue
		}
		mins, err := timeslot.ParseClock(e.EndTime)
		if err != nil {
			continue
		}
		if mins > lastMins {
			lastMins = mins
			last = e.EndTime
		}
	}
	return last
}

// Slots は記録フォームが提示する30分刻みの時刻候補を返す。
func (s *Service) Slots(ctx context.Context) []string {
	return timeslot.Slots()
}

// Today は現在日付をYYYY-MM-DD形式で返す。
func (s *Service) Today() string {
	return s.now().Format("2006-01-02")
}
