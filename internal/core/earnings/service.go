package earnings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/poolcalendar/internal/core/company"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
)

// UseCase は収入集計ユースケースの公開インターフェースです。
type UseCase interface {
	Summarize(ctx context.Context, in SummaryInput) (*Summary, error)
}

// ShiftLister はユーザーのシフトを取得します。
type ShiftLister interface {
	ListShifts(ctx context.Context, in shift.ListShiftsInput) ([]shift.Shift, error)
}

// DirectoryProvider はユーザーの会社索引を取得します。
type DirectoryProvider interface {
	Directory(ctx context.Context, ownerID string) (*company.Directory, error)
}

// Service はシフトと会社情報を読み出して集計します。
type Service struct {
	shifts    ShiftLister
	companies DirectoryProvider
	loc       *time.Location
}

// NewService は Service を生成します。loc は月・年の境界を判定するタイムゾーンです。
func NewService(shifts ShiftLister, companies DirectoryProvider, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{shifts: shifts, companies: companies, loc: loc}
}

// SummaryInput は集計時の入力です。
type SummaryInput struct {
	UserID    string
	Mode      Mode
	Year      int
	Month     int
	Role      string
	CompanyID string
}

// Summarize はユーザーのシフトを指定期間で集計します。
func (s *Service) Summarize(ctx context.Context, in SummaryInput) (*Summary, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, fmt.Errorf("user_id: %w", ErrInvalidUserID)
	}

	window, err := NewWindow(in.Mode, in.Year, in.Month)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shifts.ListShifts(ctx, shift.ListShiftsInput{UserID: in.UserID})
	if err != nil {
		return nil, fmt.Errorf("earnings: list shifts: %w", err)
	}

	dir, err := s.companies.Directory(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("earnings: load companies: %w", err)
	}

	summary := Summarize(shifts, dir, window.In(s.loc), Filter{
		Role:      strings.TrimSpace(in.Role),
		CompanyID: strings.TrimSpace(in.CompanyID),
	})
	return &summary, nil
}
