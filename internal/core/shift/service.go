package shift

import (
	"context"
	"fmt"
	"strings"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// UseCase はシフトユースケースの公開インターフェースです。
type UseCase interface {
	ListShifts(ctx context.Context, in ListShiftsInput) ([]Shift, error)
}

// Service はシフトに関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// ListShiftsInput は一覧取得時の入力です。
type ListShiftsInput struct {
	UserID string
}

// ListShifts はユーザーの全シフトを開始時刻順に取得します。
func (s *Service) ListShifts(ctx context.Context, in ListShiftsInput) ([]Shift, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, fmt.Errorf("user_id: %w", ErrInvalidUserID)
	}

	var shifts []Shift
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByUser(txCtx, in.UserID)
		if err != nil {
			return err
		}
		shifts = result
		return nil
	}); err != nil {
		return nil, err
	}

	return shifts, nil
}
