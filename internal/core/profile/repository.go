package profile

import (
	"context"
	"time"
)

// Repository はプロフィールの永続化を行うインターフェースです。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Profile, error)
	UpdateFeedToken(ctx context.Context, id, token string, updatedAt time.Time) (*Profile, error)
}
