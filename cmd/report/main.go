package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ogurasousui/poolcalendar/internal/adapters/report"
	"github.com/ogurasousui/poolcalendar/internal/app"
	"github.com/ogurasousui/poolcalendar/internal/core/earnings"
	"github.com/ogurasousui/poolcalendar/internal/core/profile"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
	"github.com/ogurasousui/poolcalendar/internal/platform/config"
	pg "github.com/ogurasousui/poolcalendar/internal/platform/db/postgres"
)

func main() {
	now := time.Now()

	var (
		configPath  = flag.String("config", "", "path to config file (defaults to CONFIG_PATH env or assets/local.yaml)")
		userID      = flag.String("user", "", "user id (required)")
		mode        = flag.String("mode", string(earnings.ModeMonth), "aggregation window: month or year")
		year        = flag.Int("year", now.Year(), "calendar year")
		month       = flag.Int("month", int(now.Month())-1, "month, 0-based (0 = January)")
		role        = flag.String("role", "", "only count shifts with this role")
		companyID   = flag.String("company", "", "only count shifts for this company id")
		icsPath     = flag.String("ics", "", "write all shifts as an .ics file to this path")
		xlsxPath    = flag.String("xlsx", "", "write the earnings summary as an .xlsx workbook to this path")
		rotateToken = flag.Bool("rotate-token", false, "issue a new feed token for the user and print it")
	)
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load(config.ResolvePath(*configPath))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	svcs := app.NewServices(cfg, dbPool)

	if *rotateToken {
		p, err := svcs.Profiles.RotateFeedToken(ctx, profile.RotateFeedTokenInput{UserID: *userID})
		if err != nil {
			log.Fatalf("failed to rotate feed token: %v", err)
		}
		fmt.Printf("feed token: %s\n", p.FeedToken)
	}

	summary, err := svcs.Earnings.Summarize(ctx, earnings.SummaryInput{
		UserID:    *userID,
		Mode:      earnings.Mode(*mode),
		Year:      *year,
		Month:     *month,
		Role:      *role,
		CompanyID: *companyID,
	})
	if err != nil {
		log.Fatalf("failed to summarize earnings: %v", err)
	}
	printSummary(os.Stdout, summary)

	if *xlsxPath != "" {
		if err := writeFile(*xlsxPath, func(w io.Writer) error {
			return report.WriteEarningsWorkbook(w, summary)
		}); err != nil {
			log.Fatalf("failed to write workbook: %v", err)
		}
		log.Printf("workbook written to %s", *xlsxPath)
	}

	if *icsPath != "" {
		shifts, err := svcs.Shifts.ListShifts(ctx, shift.ListShiftsInput{UserID: *userID})
		if err != nil {
			log.Fatalf("failed to list shifts: %v", err)
		}
		dir, err := svcs.Companies.Directory(ctx, *userID)
		if err != nil {
			log.Fatalf("failed to load companies: %v", err)
		}
		out, err := svcs.Encoder.Export(shifts, dir)
		if err != nil {
			log.Fatalf("failed to export calendar: %v", err)
		}
		if err := writeFile(*icsPath, func(w io.Writer) error {
			_, err := io.WriteString(w, out)
			return err
		}); err != nil {
			log.Fatalf("failed to write calendar: %v", err)
		}
		log.Printf("%d shifts written to %s", len(shifts), *icsPath)
	}
}

func printSummary(w io.Writer, s *earnings.Summary) {
	fmt.Fprintf(w, "period %s: %d shifts, %.2f h, %.2f EUR\n", s.Window, s.ShiftCount, s.TotalHours, s.TotalEarnings)
	for _, role := range s.RoleKeys() {
		b := s.ByRole[role]
		fmt.Fprintf(w, "  %-20s %3d  %7.2f h  %9.2f EUR\n", role, b.Count, b.Hours, b.Earnings)
	}
	for _, key := range s.CompanyKeys() {
		c := s.ByCompany[key]
		fmt.Fprintf(w, "  [%s] %d shifts, %.2f h, %.2f EUR\n", c.Name, c.Count, c.Hours, c.Earnings)
		for _, role := range c.RoleKeys() {
			rb := c.ByRole[role]
			fmt.Fprintf(w, "    %-18s %6.2f/h  %7.2f h  %9.2f EUR\n", role, rb.Rate, rb.Hours, rb.Earnings)
		}
	}
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}
