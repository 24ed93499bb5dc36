// Package catalog は活動種別とムード選択肢の管理者向け編集機能を提供する。
// カタログはプロセス全体で共有され、削除してもエントリーへは波及しない。
// 参照切れになったIDは集計側でフォールバック表示される。
package catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/store"
)

// palette は色の循環順。Cycle系の操作はこの順に次の色へ進める。
var palette = []string{
	"blue", "green", "purple", "red", "orange",
	"yellow", "pink", "indigo", "gray",
}

const (
	defaultWorkTypeLabel = "New Activity"
	defaultMoodLabel     = "New Mood"
	defaultMoodValue     = 5
	defaultColor         = "gray"
)

// Service はカタログ編集のビジネスロジックを提供する。
type Service struct {
	store *store.Store
}

// NewService はServiceを生成する。
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// AddWorkType は既定値の新しい活動種別を追加する。
func (s *Service) AddWorkType(ctx context.Context) (*model.WorkType, error) {
	wt := model.WorkType{
		ID:    uuid.New().String(),
		Label: defaultWorkTypeLabel,
		Color: defaultColor,
	}
	err := s.store.Update(func(doc *store.Document) error {
		doc.WorkTypes = append(doc.WorkTypes, wt)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("活動種別を追加しました", slog.String("work_type_id", wt.ID))
	return &wt, nil
}

// RenameWorkType は活動種別のラベルを変更する。
func (s *Service) RenameWorkType(ctx context.Context, id, label string) (*model.WorkType, error) {
	var updated model.WorkType
	err := s.store.Update(func(doc *store.Document) error {
		for i := range doc.WorkTypes {
			if doc.WorkTypes[i].ID == id {
				doc.WorkTypes[i].Label = label
				updated = doc.WorkTypes[i]
				return nil
			}
		}
		return model.NewWorkTypeNotFoundError(id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CycleWorkTypeColor は活動種別の色をパレットの次の色へ進める。
func (s *Service) CycleWorkTypeColor(ctx context.Context, id string) (*model.WorkType, error) {
	var updated model.WorkType
	err := s.store.Update(func(doc *store.Document) error {
		for i := range doc.WorkTypes {
			if doc.WorkTypes[i].ID == id {
				doc.WorkTypes[i].Color = nextColor(doc.WorkTypes[i].Color)
				updated = doc.WorkTypes[i]
				return nil
			}
		}
		return model.NewWorkTypeNotFoundError(id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteWorkType は活動種別をカタログから削除する。
// この種別を参照する既存エントリーはそのまま残る。
func (s *Service) DeleteWorkType(ctx context.Context, id string) error {
	err := s.store.Update(func(doc *store.Document) error {
		for i := range doc.WorkTypes {
			if doc.WorkTypes[i].ID == id {
				doc.WorkTypes = append(doc.WorkTypes[:i], doc.WorkTypes[i+1:]...)
				return nil
			}
		}
		return model.NewWorkTypeNotFoundError(id)
	})
	if err != nil {
		return err
	}

	slog.Info("活動種別を削除しました", slog.String("work_type_id", id))
	return nil
}

// AddMoodOption は既定値の新しいムード選択肢を追加する。
func (s *Service) AddMoodOption(ctx context.Context) (*model.MoodOption, error) {
	mood := model.MoodOption{
		ID:    uuid.New().String(),
		Label: defaultMoodLabel,
		Value: defaultMoodValue,
		Icon:  model.MoodIconMeh,
		Color: defaultColor,
	}
	err := s.store.Update(func(doc *store.Document) error {
		doc.MoodOptions = append(doc.MoodOptions, mood)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("ムード選択肢を追加しました", slog.String("mood_id", mood.ID))
	return &mood, nil
}

// UpdateMoodOption はムード選択肢の各フィールドを更新する。
// labelとiconは空文字列、valueは0のとき変更しない。
func (s *Service) UpdateMoodOption(ctx context.Context, id, label string, value int, icon model.MoodIcon) (*model.MoodOption, error) {
	var updated model.MoodOption
	err := s.store.Update(func(doc *store.Document) error {
		for i := range doc.MoodOptions {
			if doc.MoodOptions[i].ID == id {
				if label != "" {
					doc.MoodOptions[i].Label = label
				}
				if value != 0 {
					doc.MoodOptions[i].Value = value
				}
				if icon != "" {
					doc.MoodOptions[i].Icon = icon
				}
				updated = doc.MoodOptions[i]
				return nil
			}
		}
		return model.NewMoodNotFoundError(id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// CycleMoodColor はムード選択肢の色をパレットの次の色へ進める。
func (s *Service) CycleMoodColor(ctx context.Context, id string) (*model.MoodOption, error) {
	var updated model.MoodOption
	err := s.store.Update(func(doc *store.Document) error {
		for i := range doc.MoodOptions {
			if doc.MoodOptions[i].ID == id {
				doc.MoodOptions[i].Color = nextColor(doc.MoodOptions[i].Color)
				updated = doc.MoodOptions[i]
				return nil
			}
		}
		return model.NewMoodNotFoundError(id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMoodOption はムード選択肢をカタログから削除する。
// この選択肢を参照する既存エントリーはそのまま残る。
func (s *Service) DeleteMoodOption(ctx context.Context, id string) error {
	err := s.store.Update(func(doc *store.Document) error {
		for i := range doc.MoodOptions {
			if doc.MoodOptions[i].ID == id {
				doc.MoodOptions = append(doc.MoodOptions[:i], doc.MoodOptions[i+1:]...)
				return nil
			}
		}
		return model.NewMoodNotFoundError(id)
	})
	if err != nil {
		return err
	}

	slog.Info("ムード選択肢を削除しました", slog.String("mood_id", id))
	return nil
}

// nextColor は現在の色のパレット上の次の色を返す。
// パレット外の色は先頭から始める。
func nextColor(current string) string {
	for i, c := range palette {
		if c == current {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}
