// Package model はドメインモデルを定義する。
package model

// WorkType は活動種別のカタログエントリを表す。
// 管理者が編集・削除できる。削除してもエントリ側の参照は消さないため、
// 参照切れのIDは下流でフォールバック表示される。
type WorkType struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// MoodIcon は気分選択肢のアイコン種別を表す。
type MoodIcon string

const (
	// MoodIconSmile は笑顔アイコン。
	MoodIconSmile MoodIcon = "smile"
	// MoodIconMeh は平静アイコン。
	MoodIconMeh MoodIcon = "meh"
	// MoodIconFrown はしかめ面アイコン。
	MoodIconFrown MoodIcon = "frown"
	// MoodIconAngry は怒りアイコン。
	MoodIconAngry MoodIcon = "angry"
	// MoodIconExcited は興奮アイコン。
	MoodIconExcited MoodIcon = "excited"
	// MoodIconTired は疲労アイコン。
	MoodIconTired MoodIcon = "tired"
)

// MoodOption は気分・満足度のカタログエントリを表す。
// Valueは1〜10のスケールを想定する。ライフサイクルはWorkTypeと同じで、
// 削除してもエントリ側の参照は残る。
type MoodOption struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Value int      `json:"value"`
	Icon  MoodIcon `json:"icon"`
	Color string   `json:"color"`
}

// TimeEntry は1件の時間記録を表す。
// 所有ユーザーが一度だけ作成し、以後は変更も削除もできない（追記専用ログ）。
// DurationMinutes は EndTime−StartTime の分数の導出キャッシュであり、
// 作成時にバリデータが算出し、インポート時には再計算で上書きされる。
type TimeEntry struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	Date            string `json:"date"`      // YYYY-MM-DD
	StartTime       string `json:"startTime"` // HH:MM
	EndTime         string `json:"endTime"`   // HH:MM（24:00まで）
	DurationMinutes int    `json:"durationMinutes"`
	WorkTypeID      string `json:"workTypeId"`
	MoodID          string `json:"moodId"`
	Comment         string `json:"comment,omitempty"`
}
