package report

import "github.com/hitoshi/timejoy/internal/model"

// View はダッシュボード1画面分の集計結果を表す。
// PrivacyAggregation が真の場合（管理者閲覧）、集計は全ユーザーの
// エントリに対して行われ、個別エントリの一覧（Recent）は常にnilになる。
// 管理者は集計値のみを見ることができ、他ユーザーの個別の記録・コメント・
// 時刻を見ることはできない。
type View struct {
	PrivacyAggregation bool              `json:"privacyAggregation"`
	Today              []ActivityHours   `json:"today"`
	Weekly             []WeeklyActivity  `json:"weekly"`
	Moods              []MoodShare       `json:"moods"`
	Summary            Summary           `json:"summary"`
	Recent             []model.TimeEntry `json:"recent,omitempty"`
}

// BuildView は閲覧者のロールに応じたダッシュボードを組み立てる。
// 管理者: allEntries に対する4種の集計のみ（個別行は返さない）。
// 一般ユーザー: ownEntries に対する集計と直近10件の自分の記録。
func BuildView(viewer *model.User, ownEntries, allEntries []model.TimeEntry, workTypes []model.WorkType, moods []model.MoodOption, today string) View {
	chartEntries := ownEntries
	privacy := viewer.IsAdmin()
	if privacy {
		chartEntries = allEntries
	}

	view := View{
		PrivacyAggregation: privacy,
		Today:              TodayBreakdown(chartEntries, workTypes, today),
		Weekly:             WeeklyComparison(chartEntries, workTypes),
		Moods:              MoodDistribution(chartEntries, moods),
		Summary:            Summarize(chartEntries, moods),
	}

	if !privacy {
		view.Recent = RecentEntries(ownEntries)
	}
	return view
}
