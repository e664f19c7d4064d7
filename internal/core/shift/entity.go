package shift

import (
	"math"
	"strings"
	"time"
)

// Shift は 1 人の作業者が 1 施設・1 役割で働く勤務枠です。
type Shift struct {
	ID     string
	UserID string
	// CompanyID は会社への参照です。空文字は会社未設定を表します。
	CompanyID    string
	Facility     string
	Role         string
	StartAt      time.Time
	EndAt        time.Time
	BreakMinutes int
}

// Duration は開始から終了までの長さを返します。
func (s Shift) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// EffectiveHours は休憩を差し引いた実働時間を返します。負の値にはなりません。
func (s Shift) EffectiveHours() float64 {
	hours := s.Duration().Hours() - float64(s.BreakMinutes)/60
	if math.IsNaN(hours) || hours <= 0 {
		return 0
	}
	return hours
}

// HasCompany は会社参照を持つかどうかを返します。
func (s Shift) HasCompany() bool {
	return strings.TrimSpace(s.CompanyID) != ""
}

// Validate はシフトの不変条件を検証します。
func (s Shift) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return ErrInvalidID
	}
	if s.StartAt.IsZero() || s.EndAt.IsZero() || !s.EndAt.After(s.StartAt) {
		return ErrInvalidTimeRange
	}
	if s.BreakMinutes < 0 {
		return ErrInvalidBreak
	}
	return nil
}
