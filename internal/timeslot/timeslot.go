// Package timeslot は時間帯の算術と記録エントリの重複バリデーションを提供する。
// このパッケージは純粋な判定ロジックのみを持ち、I/Oも副作用も行わない。
package timeslot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hitoshi/timejoy/internal/model"
)

const (
	// SlotMinutes は選択UIの時刻刻み（分）。
	SlotMinutes = 30
	// MinutesPerDay は1日の分数。終了時刻は24:00（=1440分）まで許容する。
	MinutesPerDay = 24 * 60
)

// Slots は選択UIに提示する時刻スロットの一覧を返す。
// 00:00 から 30分刻みで 24:00 を含む49個の値を返す。
func Slots() []string {
	slots := make([]string, 0, MinutesPerDay/SlotMinutes+1)
	for m := 0; m < MinutesPerDay; m += SlotMinutes {
		slots = append(slots, formatClock(m))
	}
	slots = append(slots, "24:00")
	return slots
}

// NextSlot は指定スロットの次のスロットを返す。
// 24:00 の次は存在しないため ok=false を返す。
// スロット境界に乗らない時刻が渡された場合もok=falseを返す。
func NextSlot(value string) (string, bool) {
	minutes, err := ParseClock(value)
	if err != nil {
		return "", false
	}
	if minutes%SlotMinutes != 0 || minutes+SlotMinutes > MinutesPerDay {
		return "", false
	}
	return formatClock(minutes + SlotMinutes), true
}

// ParseClock は HH:MM 形式の時刻文字列を深夜0時からの分数に変換する。
// スロット境界は要求しない（バリデータは任意のHH:MMを受理する）が、
// 0〜1440分の範囲を超える値は不正とする。
func ParseClock(value string) (int, error) {
	hh, mm, ok := strings.Cut(value, ":")
	if !ok {
		return 0, model.NewInvalidTimeError(value)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, model.NewInvalidTimeError(value)
	}
	mins, err := strconv.Atoi(mm)
	if err != nil {
		return 0, model.NewInvalidTimeError(value)
	}
	if hours < 0 || mins < 0 || mins > 59 {
		return 0, model.NewInvalidTimeError(value)
	}
	total := hours*60 + mins
	if total > MinutesPerDay {
		return 0, model.NewInvalidTimeError(value)
	}
	return total, nil
}

// formatClock は深夜0時からの分数をHH:MM文字列に変換する。
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
