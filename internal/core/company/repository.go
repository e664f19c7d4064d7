package company

import "context"

// Repository は会社エンティティの読み出しを行うインターフェースです。
type Repository interface {
	// ListByOwner はユーザーが登録した会社を返します。組み込み会社は含みません。
	ListByOwner(ctx context.Context, ownerID string) ([]Company, error)
}
