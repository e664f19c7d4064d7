package app

import (
	"github.com/ogurasousui/poolcalendar/internal/adapters/repository/postgres"
	"github.com/ogurasousui/poolcalendar/internal/core/calendar"
	"github.com/ogurasousui/poolcalendar/internal/core/company"
	"github.com/ogurasousui/poolcalendar/internal/core/earnings"
	"github.com/ogurasousui/poolcalendar/internal/core/feed"
	"github.com/ogurasousui/poolcalendar/internal/core/profile"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
	"github.com/ogurasousui/poolcalendar/internal/platform/config"
	pgdb "github.com/ogurasousui/poolcalendar/internal/platform/db/postgres"
)

// Services はコマンドが共有するユースケース一式です。
type Services struct {
	Shifts    *shift.Service
	Companies *company.Service
	Profiles  *profile.Service
	Earnings  *earnings.Service
	Feed      *feed.Service
	Encoder   *calendar.Encoder
}

// NewServices は設定と DB 接続からユースケースを組み立てます。
func NewServices(cfg *config.Config, db pgdb.DB) *Services {
	txManager := pgdb.NewTransactionManager(db)

	builtin := company.ResolveConfig(CompanyOverride(cfg.DefaultCompany), company.DefaultConfig())

	shifts := shift.NewService(postgres.NewShiftRepository(db), txManager)
	companies := company.NewService(postgres.NewCompanyRepository(db), txManager, builtin)
	profiles := profile.NewService(postgres.NewProfileRepository(db), nil, txManager, nil)

	encoder := calendar.NewEncoder(calendar.EncoderConfig{
		ProductID:    cfg.Calendar.ProductID,
		CalendarName: cfg.Calendar.CalendarName,
		Timezone:     cfg.Calendar.Timezone,
		Domain:       cfg.Calendar.Domain,
	}, nil)

	return &Services{
		Shifts:    shifts,
		Companies: companies,
		Profiles:  profiles,
		Earnings:  earnings.NewService(shifts, companies, cfg.Calendar.Location),
		Feed: feed.NewService(profiles, shifts, companies, encoder, feed.Options{
			EmptyCalendar: cfg.Feed.EmptyCalendar,
		}),
		Encoder: encoder,
	}
}

// CompanyOverride は設定ファイルの default_company を組み込み会社の上書きに変換します。
// 何も指定されていなければ nil を返します。
func CompanyOverride(o config.DefaultCompanyOverride) *company.Override {
	if o.Active == nil && len(o.Rates) == 0 && len(o.Facilities) == 0 {
		return nil
	}
	return &company.Override{
		Active:     o.Active,
		Rates:      o.Rates,
		Facilities: o.Facilities,
	}
}
