package company

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

// Service は会社に関するユースケースをまとめます。
type Service struct {
	repo    Repository
	tx      TransactionManager
	builtin Company
}

// UseCase は会社ユースケースの公開インターフェースです。
type UseCase interface {
	ListCompanies(ctx context.Context, in ListCompaniesInput) ([]Company, error)
	Directory(ctx context.Context, ownerID string) (*Directory, error)
}

// NewService は Service を生成します。builtin は起動時に ResolveConfig で確定した組み込み会社です。
func NewService(repo Repository, tx TransactionManager, builtin Company) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx, builtin: cloneCompany(builtin)}
}

// ListCompaniesInput は一覧取得時の入力です。
type ListCompaniesInput struct {
	OwnerID string
}

// ListCompanies は組み込み会社を先頭に、利用者が登録した会社を続けて返します。
func (s *Service) ListCompanies(ctx context.Context, in ListCompaniesInput) ([]Company, error) {
	if strings.TrimSpace(in.OwnerID) == "" {
		return nil, fmt.Errorf("owner_id: %w", ErrInvalidOwnerID)
	}

	var stored []Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListByOwner(txCtx, in.OwnerID)
		if err != nil {
			return err
		}
		stored = result
		return nil
	}); err != nil {
		return nil, err
	}

	companies := make([]Company, 0, len(stored)+1)
	companies = append(companies, cloneCompany(s.builtin))
	for _, c := range stored {
		// 予約 ID の行は組み込み会社で置き換える
		if c.ID == DefaultCompanyID {
			continue
		}
		companies = append(companies, c)
	}

	return companies, nil
}

// Directory は ListCompanies の結果を索引化して返します。
func (s *Service) Directory(ctx context.Context, ownerID string) (*Directory, error) {
	companies, err := s.ListCompanies(ctx, ListCompaniesInput{OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	return NewDirectory(companies), nil
}
