package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
	pgdb "github.com/ogurasousui/poolcalendar/internal/platform/db/postgres"
)

// ShiftRepository は PostgreSQL を利用したシフト読み出しの実装です。
type ShiftRepository struct {
	pool pgdb.Queryer
}

// NewShiftRepository は ShiftRepository を生成します。
func NewShiftRepository(pool pgdb.Queryer) *ShiftRepository {
	return &ShiftRepository{pool: pool}
}

// ListByUser はユーザーの全シフトを開始時刻の昇順で取得します。
// UUID として解釈できないユーザー ID にはシフトが無いものとして空を返します。
func (r *ShiftRepository) ListByUser(ctx context.Context, userID string) ([]shift.Shift, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, user_id, company_id, facility, role, start_time, end_time, break_duration
          FROM shifts
         WHERE user_id = $1
         ORDER BY start_time ASC, id ASC
    `, userID)
	if err != nil {
		if pgdb.IsInvalidInput(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		found, err := scanShift(rows)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, found)
	}

	if err := rows.Err(); err != nil {
		if pgdb.IsInvalidInput(err) {
			return nil, nil
		}
		return nil, err
	}

	return shifts, nil
}

func scanShift(row pgx.Row) (shift.Shift, error) {
	var (
		id, userID, facility, role string
		companyID                  sql.NullString
		startAt, endAt             time.Time
		breakMinutes               sql.NullInt32
	)

	if err := row.Scan(&id, &userID, &companyID, &facility, &role, &startAt, &endAt, &breakMinutes); err != nil {
		return shift.Shift{}, err
	}

	return shift.Shift{
		ID:           id,
		UserID:       userID,
		CompanyID:    companyID.String,
		Facility:     facility,
		Role:         role,
		StartAt:      startAt,
		EndAt:        endAt,
		BreakMinutes: int(breakMinutes.Int32),
	}, nil
}
