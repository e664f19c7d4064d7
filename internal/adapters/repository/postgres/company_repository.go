package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/poolcalendar/internal/core/company"
	pgdb "github.com/ogurasousui/poolcalendar/internal/platform/db/postgres"
)

// CompanyRepository は PostgreSQL を利用した会社読み出しの実装です。
type CompanyRepository struct {
	pool pgdb.Queryer
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(pool pgdb.Queryer) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// ListByOwner はユーザーが登録した会社を名前順に取得します。
func (r *CompanyRepository) ListByOwner(ctx context.Context, ownerID string) ([]company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, user_id, name, is_active, roles, facilities
          FROM companies
         WHERE user_id = $1
         ORDER BY name ASC, id ASC
    `, ownerID)
	if err != nil {
		if pgdb.IsInvalidInput(err) {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	var companies []company.Company
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, found)
	}

	if err := rows.Err(); err != nil {
		if pgdb.IsInvalidInput(err) {
			return nil, nil
		}
		return nil, err
	}

	return companies, nil
}

func scanCompany(row pgx.Row) (company.Company, error) {
	var (
		id, ownerID, name string
		active            bool
		roles             []byte
		facilities        []string
	)

	if err := row.Scan(&id, &ownerID, &name, &active, &roles, &facilities); err != nil {
		return company.Company{}, err
	}

	rates, err := company.ParseRates(roles)
	if err != nil {
		// 壊れた roles は時給未設定として扱う
		rates = map[string]float64{}
	}

	return company.Company{
		ID:         id,
		OwnerID:    ownerID,
		Name:       name,
		Active:     active,
		Rates:      rates,
		Facilities: facilities,
	}, nil
}
