package profile

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// TokenGenerator は新しいフィードトークンを生成します。
type TokenGenerator func() (string, error)

// NewFeedToken はダッシュを除いたランダムな UUID v4 をトークンとして返します。
func NewFeedToken() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("profile: generate token: %w", err)
	}
	return strings.ReplaceAll(id.String(), "-", ""), nil
}

// UseCase はプロフィールユースケースの公開インターフェースです。
type UseCase interface {
	GetProfile(ctx context.Context, in GetProfileInput) (*Profile, error)
	RotateFeedToken(ctx context.Context, in RotateFeedTokenInput) (*Profile, error)
	VerifyFeedToken(ctx context.Context, userID, token string) error
}

// Service はプロフィールに関するユースケースをまとめます。
type Service struct {
	repo     Repository
	clock    Clock
	tx       TransactionManager
	newToken TokenGenerator
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager, newToken TokenGenerator) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if newToken == nil {
		newToken = NewFeedToken
	}
	return &Service{repo: repo, clock: clock, tx: tx, newToken: newToken}
}

// GetProfileInput はプロフィール取得時の入力です。
type GetProfileInput struct {
	UserID string
}

// RotateFeedTokenInput はトークン再発行時の入力です。
type RotateFeedTokenInput struct {
	UserID string
}

// GetProfile は ID でプロフィールを取得します。
func (s *Service) GetProfile(ctx context.Context, in GetProfileInput) (*Profile, error) {
	userID, err := normalizeUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	var result *Profile
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		p, err := s.repo.FindByID(txCtx, userID)
		if err != nil {
			return err
		}
		result = p
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// RotateFeedToken は新しいフィードトークンを発行して保存します。以前のトークンは無効になります。
func (s *Service) RotateFeedToken(ctx context.Context, in RotateFeedTokenInput) (*Profile, error) {
	userID, err := normalizeUserID(in.UserID)
	if err != nil {
		return nil, err
	}

	token, err := s.newToken()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("profile: generated token is empty")
	}

	var updated *Profile
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.FindByID(txCtx, userID); err != nil {
			return err
		}

		p, err := s.repo.UpdateFeedToken(txCtx, userID, token, s.clock.Now())
		if err != nil {
			return err
		}
		updated = p
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// VerifyFeedToken はトークンがユーザーの現在のフィードトークンと一致するかを検証します。
// 未登録のユーザー、未発行のトークン、不一致はいずれも ErrInvalidToken になります。
func (s *Service) VerifyFeedToken(ctx context.Context, userID, token string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" || token == "" {
		return ErrInvalidToken
	}

	p, err := s.GetProfile(ctx, GetProfileInput{UserID: userID})
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if !p.FeedEnabled() || subtle.ConstantTimeCompare([]byte(p.FeedToken), []byte(token)) != 1 {
		return ErrInvalidToken
	}

	return nil
}

func normalizeUserID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("user_id: %w", ErrInvalidUserID)
	}
	return trimmed, nil
}
