// Package report はエントリ集合をチャート表示用の集計値へ変換する。
// すべての関数は純粋な読み取り専用の射影であり、同一入力に対して常に
// 同一出力を返す。カタログ参照が切れている場合はエラーにせず
// フォールバック表示（Unknown / gray）へ退避する。
package report

import (
	"math"
	"sort"

	"github.com/hitoshi/timejoy/internal/model"
)

const (
	// fallbackLabel は参照切れカタログIDの表示ラベル。
	fallbackLabel = "Unknown"
	// fallbackColor は参照切れカタログIDのカラートークン。
	fallbackColor = "gray"
	// happyColor は「幸福な時間」とみなす気分カラートークン。
	happyColor = "green"
	// recentLimit は直近アクティビティ一覧の最大件数。
	recentLimit = 10
)

// ActivityHours は活動種別ごとの時間集計1行を表す。
// Fillはチャート描画用にカラートークンを16進カラーへ解決した値。
type ActivityHours struct {
	ActivityLabel string  `json:"activityLabel"`
	Hours         float64 `json:"hours"`
	Color         string  `json:"color"`
	Fill          string  `json:"fill"`
}

// WeeklyActivity は活動種別ごとの今週/先週比較1行を表す。
type WeeklyActivity struct {
	ActivityLabel string  `json:"activityLabel"`
	CurrentHours  float64 `json:"currentHours"`
	PreviousHours float64 `json:"previousHours"`
}

// MoodShare は気分ごとの時間配分1件を表す。
type MoodShare struct {
	MoodLabel    string `json:"moodLabel"`
	TotalMinutes int    `json:"totalMinutes"`
	Color        string `json:"color"`
	Fill         string `json:"fill"`
}

// Summary はダッシュボードのサマリーカードの数値を表す。
type Summary struct {
	TotalHours      float64 `json:"totalHours"`
	HappyHours      float64 `json:"happyHours"`
	ActiveUserCount int     `json:"activeUserCount"`
}

// TodayBreakdown は指定日のエントリを活動種別ごとに集計する。
// カタログの並び順で、合計が0の種別も含めて必ず1種別1行を返す。
func TodayBreakdown(entries []model.TimeEntry, workTypes []model.WorkType, today string) []ActivityHours {
	totals := make(map[string]int)
	for _, e := range entries {
		if e.Date == today {
			totals[e.WorkTypeID] += e.DurationMinutes
		}
	}

	rows := make([]ActivityHours, 0, len(workTypes))
	for _, wt := range workTypes {
		rows = append(rows, ActivityHours{
			ActivityLabel: wt.Label,
			Hours:         roundHours(totals[wt.ID]),
			Color:         wt.Color,
			Fill:          HexColor(wt.Color),
		})
	}
	return rows
}

// WeeklyComparison は渡された全エントリを活動種別ごとに集計し、
// 今週/先週の比較行を返す。先週の値は実際の履歴ウィンドウではなく
// 今週の8割とする暫定ヒューリスティックで埋める。
func WeeklyComparison(entries []model.TimeEntry, workTypes []model.WorkType) []WeeklyActivity {
	totals := make(map[string]int)
	for _, e := range entries {
		totals[e.WorkTypeID] += e.DurationMinutes
	}

	rows := make([]WeeklyActivity, 0, len(workTypes))
	for _, wt := range workTypes {
		minutes := totals[wt.ID]
		rows = append(rows, WeeklyActivity{
			ActivityLabel: wt.Label,
			CurrentHours:  roundHours(minutes),
			PreviousHours: round1(float64(minutes) * 0.8 / 60),
		})
	}
	return rows
}

// MoodDistribution はエントリを気分ごとに集計する。
// カタログに存在しない気分IDは Unknown / gray へフォールバックする。
// 合計が0のグループは出力しない。行の順序はエントリ中の初出順。
func MoodDistribution(entries []model.TimeEntry, moods []model.MoodOption) []MoodShare {
	totals := make(map[string]int)
	order := make([]string, 0)
	for _, e := range entries {
		if _, seen := totals[e.MoodID]; !seen {
			order = append(order, e.MoodID)
		}
		totals[e.MoodID] += e.DurationMinutes
	}

	rows := make([]MoodShare, 0, len(order))
	for _, moodID := range order {
		if totals[moodID] == 0 {
			continue
		}
		label, color := resolveMood(moods, moodID)
		rows = append(rows, MoodShare{
			MoodLabel:    label,
			TotalMinutes: totals[moodID],
			Color:        color,
			Fill:         HexColor(color),
		})
	}
	return rows
}

// Summarize は合計時間・幸福時間・アクティブユーザー数を算出する。
// 幸福時間は解決後の気分カラーが green のエントリの合計時間。
// アクティブユーザー数はエントリ中の相異なるuserIdの数。
func Summarize(entries []model.TimeEntry, moods []model.MoodOption) Summary {
	totalMinutes := 0
	happyMinutes := 0
	users := make(map[string]struct{})

	for _, e := range entries {
		totalMinutes += e.DurationMinutes
		if _, color := resolveMood(moods, e.MoodID); color == happyColor {
			happyMinutes += e.DurationMinutes
		}
		users[e.UserID] = struct{}{}
	}

	return Summary{
		TotalHours:      roundHours(totalMinutes),
		HappyHours:      roundHours(happyMinutes),
		ActiveUserCount: len(users),
	}
}

// RecentEntries は (date, startTime) を結合したタイムスタンプの降順で
// 並べ替え、直近10件に切り詰めたコピーを返す。入力は変更しない。
func RecentEntries(entries []model.TimeEntry) []model.TimeEntry {
	sorted := make([]model.TimeEntry, len(entries))
	copy(sorted, entries)

	sort.SliceStable(sorted, func(i, j int) bool {
		a := sorted[i].Date + "T" + sorted[i].StartTime
		b := sorted[j].Date + "T" + sorted[j].StartTime
		return a > b
	})

	if len(sorted) > recentLimit {
		sorted = sorted[:recentLimit]
	}
	return sorted
}

// resolveMood は気分IDをカタログと照合し、表示ラベルとカラートークンを返す。
// 見つからない場合は Unknown / gray を返す。
func resolveMood(moods []model.MoodOption, moodID string) (label, color string) {
	for _, m := range moods {
		if m.ID == moodID {
			return m.Label, m.Color
		}
	}
	return fallbackLabel, fallbackColor
}

// roundHours は分数を時間に変換し、小数第1位へ四捨五入（絶対値切り上げ）する。
func roundHours(minutes int) float64 {
	return round1(float64(minutes) / 60)
}

// round1 は小数第1位への四捨五入（round-half-away-from-zero）を行う。
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
