package earnings

import (
	"fmt"
	"strings"
	"time"
)

// Mode は集計期間の種類です。
type Mode string

const (
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// Window は暦月または暦年の集計期間です。Month は 0 始まり (0 = 1 月) です。
type Window struct {
	Mode     Mode
	Year     int
	Month    int
	Location *time.Location
}

// NewWindow は期間指定を検証して Window を生成します。年モードでは month は無視されます。
func NewWindow(mode Mode, year, month int) (Window, error) {
	switch Mode(strings.ToLower(string(mode))) {
	case ModeMonth:
		if month < 0 || month > 11 {
			return Window{}, fmt.Errorf("month %d: %w", month, ErrInvalidWindow)
		}
		return Window{Mode: ModeMonth, Year: year, Month: month, Location: time.UTC}, nil
	case ModeYear:
		return Window{Mode: ModeYear, Year: year, Location: time.UTC}, nil
	default:
		return Window{}, fmt.Errorf("mode %q: %w", mode, ErrInvalidWindow)
	}
}

// In はタイムゾーンを差し替えた Window を返します。
func (w Window) In(loc *time.Location) Window {
	w.Location = loc
	return w
}

func (w Window) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// Contains は t が期間内に開始するかを返します。判定は Window のタイムゾーンで行います。
func (w Window) Contains(t time.Time) bool {
	local := t.In(w.location())
	if local.Year() != w.Year {
		return false
	}
	if w.Mode == ModeMonth && int(local.Month())-1 != w.Month {
		return false
	}
	return true
}

// Bounds は期間の開始時刻 (含む) と終了時刻 (含まない) を返します。
func (w Window) Bounds() (time.Time, time.Time) {
	loc := w.location()
	if w.Mode == ModeMonth {
		start := time.Date(w.Year, time.Month(w.Month+1), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	}
	start := time.Date(w.Year, time.January, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(1, 0, 0)
}

// String は "2025-03" または "2025" 形式の表記を返します。
func (w Window) String() string {
	if w.Mode == ModeMonth {
		return fmt.Sprintf("%04d-%02d", w.Year, w.Month+1)
	}
	return fmt.Sprintf("%04d", w.Year)
}
