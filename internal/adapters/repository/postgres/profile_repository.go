package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/poolcalendar/internal/core/profile"
	pgdb "github.com/ogurasousui/poolcalendar/internal/platform/db/postgres"
)

// ProfileRepository は PostgreSQL を利用したプロフィール永続化の実装です。
type ProfileRepository struct {
	pool pgdb.Queryer
}

// NewProfileRepository は ProfileRepository を生成します。
func NewProfileRepository(pool pgdb.Queryer) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// FindByID は ID でプロフィールを取得します。UUID として解釈できない ID は未登録と同じ扱いです。
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*profile.Profile, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, ical_token, updated_at
          FROM user_profiles
         WHERE id = $1
         LIMIT 1
    `, id)

	return scanProfile(row)
}

// UpdateFeedToken はフィードトークンを置き換えます。
func (r *ProfileRepository) UpdateFeedToken(ctx context.Context, id, token string, updatedAt time.Time) (*profile.Profile, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE user_profiles
           SET ical_token = $1,
               updated_at = $2
         WHERE id = $3
        RETURNING id, ical_token, updated_at
    `, token, updatedAt, id)

	return scanProfile(row)
}

func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var (
		id        string
		token     sql.NullString
		updatedAt sql.NullTime
	)

	if err := row.Scan(&id, &token, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) || pgdb.IsInvalidInput(err) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, err
	}

	return &profile.Profile{
		ID:        id,
		FeedToken: token.String,
		UpdatedAt: updatedAt.Time,
	}, nil
}
