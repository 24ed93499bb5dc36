package timeslot

import "github.com/hitoshi/timejoy/internal/model"

// Candidate は記録フォームから渡される新規エントリの候補を表す。
type Candidate struct {
	Date       string // YYYY-MM-DD
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	WorkTypeID string
}

// Validate は候補エントリの妥当性を判定し、成功時は所要分数を返す。
//
// 判定は次の順で行う。
//  1. 両時刻のパース（不正な形式は INVALID_TIME）
//  2. 順序チェック: 終了 <= 開始 は INVALID_RANGE
//  3. 必須チェック: 活動種別未選択は MISSING_WORK_TYPE
//  4. 重複チェック: 同一ユーザー・同一日付の既存区間 [start, end) と
//     交差する場合は OVERLAP_CONFLICT。端点が一致するだけの隣接は許容する。
//
// existing には同一ユーザーの既存エントリを渡す。日付の絞り込みはこの関数が
// 行うため、全件渡してよい。判定結果はexistingの並び順に依存しない。
// 副作用はなく、永続化は成功後に呼び出し側が行う。
func Validate(c Candidate, existing []model.TimeEntry) (int, error) {
	startMins, err := ParseClock(c.StartTime)
	if err != nil {
		return 0, err
	}
	endMins, err := ParseClock(c.EndTime)
	if err != nil {
		return 0, err
	}

	if endMins <= startMins {
		return 0, model.NewInvalidRangeError()
	}

	if c.WorkTypeID == "" {
		return 0, model.NewMissingWorkTypeError()
	}

	for _, entry := range existing {
		if entry.Date != c.Date {
			continue
		}
		existingStart, err := ParseClock(entry.StartTime)
		if err != nil {
			continue
		}
		existingEnd, err := ParseClock(entry.EndTime)
		if err != nil {
			continue
		}
		// 半開区間の交差条件: (existingStart < newEnd) かつ (existingEnd > newStart)
		if existingStart < endMins && existingEnd > startMins {
			return 0, model.NewOverlapConflictError()
		}
	}

	return endMins - startMins, nil
}
