// Package store はアプリケーション全状態を1つのJSONドキュメントとして
// 保持・永続化する。明示的なload/save境界を持ち、すべての状態遷移は
// Updateに渡すreducer関数として表現される。
package store

import (
	"time"

	"github.com/hitoshi/timejoy/internal/model"
	"github.com/hitoshi/timejoy/internal/timeslot"
)

// Document はディスク上のJSONドキュメントと1対1に対応する全状態を表す。
// Userは現在アクティブなプロファイル（未ログイン時はnull）。
// カタログ（WorkTypes, MoodOptions）は全ユーザー共有で、
// Entriesはフラットな全ユーザーの記録コレクション。
type Document struct {
	User        *model.User        `json:"user"`
	Users       []model.User       `json:"users"`
	WorkTypes   []model.WorkType   `json:"workTypes"`
	MoodOptions []model.MoodOption `json:"moodOptions"`
	Entries     []model.TimeEntry  `json:"entries"`
}

// DefaultDocument は初回起動時のシードデータを返す。
// 既定の管理者プロファイルと既定カタログを含む。
func DefaultDocument() *Document {
	now := time.Now()
	return &Document{
		User: nil,
		Users: []model.User{
			{
				ID:        "admin-default-id",
				Username:  "Admin",
				Email:     "admin@timejoy.com",
				Role:      model.RoleAdmin,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		WorkTypes: []model.WorkType{
			{ID: "1", Label: "Daily Project Work", Color: "blue"},
			{ID: "2", Label: "Life & Family", Color: "green"},
			{ID: "3", Label: "Long-Term Investment", Color: "purple"},
		},
		MoodOptions: []model.MoodOption{
			{ID: "m1", Label: "Happy", Value: 10, Icon: model.MoodIconSmile, Color: "green"},
			{ID: "m2", Label: "OK", Value: 5, Icon: model.MoodIconMeh, Color: "yellow"},
			{ID: "m3", Label: "Not so good", Value: 1, Icon: model.MoodIconFrown, Color: "red"},
		},
		Entries: []model.TimeEntry{},
	}
}

// clone はドキュメントの深いコピーを返す。
// 各要素は値型のみで構成されるため、スライスの複製で十分。
func (d *Document) clone() *Document {
	c := &Document{
		Users:       append([]model.User(nil), d.Users...),
		WorkTypes:   append([]model.WorkType(nil), d.WorkTypes...),
		MoodOptions: append([]model.MoodOption(nil), d.MoodOptions...),
		Entries:     append([]model.TimeEntry(nil), d.Entries...),
	}
	if d.User != nil {
		u := *d.User
		c.User = &u
	}
	return c
}

// NormalizeDurations は全エントリのDurationMinutesを開始/終了時刻から
// 再計算して上書きする。DurationMinutesは導出キャッシュであり、
// 破損したインポートでずれていても開始/終了時刻を正とする。
// 時刻が解釈できないエントリは保存値をそのまま残す。
func (d *Document) NormalizeDurations() {
	for i := range d.Entries {
		start, err := timeslot.ParseClock(d.Entries[i].StartTime)
		if err != nil {
			continue
		}
		end, err := timeslot.ParseClock(d.Entries[i].EndTime)
		if err != nil {
			continue
		}
		d.Entries[i].DurationMinutes = end - start
	}
}
