// Package backup は状態ドキュメント全体のエクスポートとインポートを提供する。
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/store"
)

// importDocument はインポート時の形状検査用のシャドウ構造体。
// 必須コレクションをポインタで受けてnull・欠落を検出する。
type importDocument struct {
	User        *model.User        `json:"user"`
	Users       *[]model.User      `json:"users"`
	WorkTypes   *[]model.WorkType  `json:"workTypes"`
	MoodOptions []model.MoodOption `json:"moodOptions"`
	Entries     *[]model.TimeEntry `json:"entries"`
}

// Service はバックアップのエクスポート・インポートのサービス層。
type Service struct {
	store *store.Store
	now   func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now}
}

// Export は状態ドキュメントのスナップショットを返す。
func (s *Service) Export(ctx context.Context) *store.Document {
	return s.store.Snapshot()
}

// ExportJSON は状態ドキュメントのスナップショットをインデント付きJSONで返す。
// exportサブコマンドなど、HTTPを介さないエクスポートで使用する。
func (s *Service) ExportJSON(ctx context.Context) ([]byte, error) {
	data, err := json.MarshalIndent(s.Export(ctx), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("バックアップのシリアライズに失敗しました: %w", err)
	}
	return append(data, '\n'), nil
}

// ExportFileName はエクスポートの推奨ファイル名を返す。
func (s *Service) ExportFileName() string {
	return fmt.Sprintf("timejoy_backup_%s.json", s.now().Format("2006-01-02"))
}

// Import はバックアップJSONで状態ドキュメント全体を置き換える。
// users・workTypes・entriesが存在しない、またはnullの場合は拒否する。
// durationMinutesは取り込み時に開始・終了時刻から再計算する。
func (s *Service) Import(ctx context.Context, data []byte) error {
	var in importDocument
	if err := json.Unmarshal(data, &in); err != nil {
		return model.NewInvalidBackupError()
	}
	if in.Users == nil || in.WorkTypes == nil || in.Entries == nil {
		return model.NewInvalidBackupError()
	}

	doc := &store.Document{
		User:        in.User,
		Users:       *in.Users,
		WorkTypes:   *in.WorkTypes,
		MoodOptions: in.MoodOptions,
		Entries:     *in.Entries,
	}
	if err := s.store.Replace(doc); err != nil {
		return fmt.Errorf("バックアップの適用に失敗しました: %w", err)
	}

	slog.Info("バックアップをインポートしました",
		slog.Int("users", len(doc.Users)),
		slog.Int("entries", len(doc.Entries)),
	)
	return nil
}
