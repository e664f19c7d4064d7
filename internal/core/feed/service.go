package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ogurasousui/poolcalendar/internal/core/calendar"
	"github.com/ogurasousui/poolcalendar/internal/core/company"
	"github.com/ogurasousui/poolcalendar/internal/core/profile"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
)

// TokenVerifier はフィードトークンを検証します。
type TokenVerifier interface {
	VerifyFeedToken(ctx context.Context, userID, token string) error
}

// ShiftLister はユーザーのシフトを取得します。
type ShiftLister interface {
	ListShifts(ctx context.Context, in shift.ListShiftsInput) ([]shift.Shift, error)
}

// DirectoryProvider はユーザーの会社索引を取得します。
type DirectoryProvider interface {
	Directory(ctx context.Context, ownerID string) (*company.Directory, error)
}

// Exporter はシフトを iCalendar テキストへ変換します。
type Exporter interface {
	Export(shifts []shift.Shift, names calendar.CompanyNamer) (string, error)
}

// UseCase はフィード配信ユースケースの公開インターフェースです。
type UseCase interface {
	Feed(ctx context.Context, in FeedInput) (string, error)
}

// Options はフィードの挙動を切り替えます。
type Options struct {
	// EmptyCalendar が true ならシフトの無いユーザーに空のカレンダーを返します。
	EmptyCalendar bool
}

// Service はトークンで保護された購読フィードを組み立てます。
type Service struct {
	tokens    TokenVerifier
	shifts    ShiftLister
	companies DirectoryProvider
	exporter  Exporter
	opts      Options
}

// NewService は Service を生成します。
func NewService(tokens TokenVerifier, shifts ShiftLister, companies DirectoryProvider, exporter Exporter, opts Options) *Service {
	return &Service{
		tokens:    tokens,
		shifts:    shifts,
		companies: companies,
		exporter:  exporter,
		opts:      opts,
	}
}

// FeedInput はフィード取得時の入力です。
type FeedInput struct {
	UserID string
	Token  string
}

// Feed はユーザーの全シフトを 1 つの VCALENDAR にして返します。
func (s *Service) Feed(ctx context.Context, in FeedInput) (string, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" || strings.TrimSpace(in.Token) == "" {
		return "", ErrMissingParams
	}

	// トークンは受け取った値のまま完全一致で比較する
	if err := s.tokens.VerifyFeedToken(ctx, userID, in.Token); err != nil {
		if errors.Is(err, profile.ErrInvalidToken) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("feed: verify token: %w", err)
	}

	shifts, err := s.shifts.ListShifts(ctx, shift.ListShiftsInput{UserID: userID})
	if err != nil {
		return "", fmt.Errorf("feed: list shifts: %w", err)
	}
	if len(shifts) == 0 && !s.opts.EmptyCalendar {
		return "", ErrNoShifts
	}

	dir, err := s.companies.Directory(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("feed: load companies: %w", err)
	}

	out, err := s.exporter.Export(shifts, dir)
	if err != nil {
		return "", fmt.Errorf("feed: encode: %w", err)
	}

	return out, nil
}
