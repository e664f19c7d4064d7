package earnings

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ogurasousui/poolcalendar/internal/core/company"
	"github.com/ogurasousui/poolcalendar/internal/core/shift"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func mustWindow(t *testing.T, mode Mode, year, month int) Window {
	t.Helper()
	w, err := NewWindow(mode, year, month)
	if err != nil {
		t.Fatalf("NewWindow returned error: %v", err)
	}
	return w
}

func newShift(id, companyID, role string, start time.Time, hours float64, breakMinutes int) shift.Shift {
	return shift.Shift{
		ID:           id,
		UserID:       "user-1",
		CompanyID:    companyID,
		Facility:     "Piscina Cozzi",
		Role:         role,
		StartAt:      start,
		EndAt:        start.Add(time.Duration(hours * float64(time.Hour))),
		BreakMinutes: breakMinutes,
	}
}

func testDirectory() *company.Directory {
	return company.NewDirectory([]company.Company{
		company.DefaultConfig(),
		{ID: "c-1", Name: "Aquatica", Active: true, Rates: map[string]float64{"Bagnino": 9.5, "AB": 11}},
	})
}

func TestSummarize_SingleShiftScenario(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	shifts := []shift.Shift{newShift("s-1", company.DefaultCompanyID, "AB", start, 8, 30)}

	summary := Summarize(shifts, testDirectory(), mustWindow(t, ModeMonth, 2025, 2), Filter{})

	if !almostEqual(summary.TotalHours, 7.5) {
		t.Fatalf("expected 7.5 hours, got %v", summary.TotalHours)
	}
	if !almostEqual(summary.TotalEarnings, 80.025) {
		t.Fatalf("expected 80.025 earnings, got %v", summary.TotalEarnings)
	}
	if summary.ShiftCount != 1 {
		t.Fatalf("expected 1 shift, got %d", summary.ShiftCount)
	}

	ms := summary.ByCompany[company.DefaultCompanyID]
	if ms == nil || ms.Name != "Milanosport" {
		t.Fatalf("expected Milanosport bucket, got %+v", ms)
	}
	if rb := ms.ByRole["AB"]; rb == nil || rb.Rate != 10.67 || rb.Count != 1 {
		t.Fatalf("unexpected company role bucket %+v", rb)
	}
}

func TestSummarize_NoShifts(t *testing.T) {
	t.Parallel()

	summary := Summarize(nil, testDirectory(), mustWindow(t, ModeYear, 2025, 0), Filter{})

	if summary.TotalHours != 0 || summary.TotalEarnings != 0 || summary.ShiftCount != 0 {
		t.Fatalf("expected zero totals, got %+v", summary)
	}
	if len(summary.ByRole) != 0 || len(summary.ByCompany) != 0 {
		t.Fatalf("expected empty groupings, got %+v", summary)
	}
}

func TestSummarize_YearVersusMonthWindow(t *testing.T) {
	t.Parallel()

	shifts := []shift.Shift{
		newShift("jan", "c-1", "Bagnino", time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC), 4, 0),
		newShift("jun", "c-1", "Bagnino", time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC), 2, 0),
		newShift("other-year", "c-1", "Bagnino", time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC), 5, 0),
	}
	dir := testDirectory()

	year := Summarize(shifts, dir, mustWindow(t, ModeYear, 2025, 0), Filter{})
	if year.ShiftCount != 2 || !almostEqual(year.TotalHours, 6) {
		t.Fatalf("expected both 2025 shifts in the year window, got %+v", year)
	}

	june := Summarize(shifts, dir, mustWindow(t, ModeMonth, 2025, 5), Filter{})
	if june.ShiftCount != 1 || !almostEqual(june.TotalHours, 2) {
		t.Fatalf("expected only the June shift, got %+v", june)
	}
	if !almostEqual(june.TotalEarnings, 19) {
		t.Fatalf("expected 19 earnings, got %v", june.TotalEarnings)
	}
}

func TestSummarize_MonthBoundaries(t *testing.T) {
	t.Parallel()

	shifts := []shift.Shift{
		newShift("first-midnight", "c-1", "Bagnino", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 1, 0),
		newShift("last-second", "c-1", "Bagnino", time.Date(2025, 2, 28, 23, 59, 59, 0, time.UTC), 1, 0),
		newShift("before", "c-1", "Bagnino", time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC), 1, 0),
		newShift("after", "c-1", "Bagnino", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 1, 0),
	}

	summary := Summarize(shifts, testDirectory(), mustWindow(t, ModeMonth, 2025, 1), Filter{})
	if summary.ShiftCount != 2 {
		t.Fatalf("expected both boundary shifts in February, got %d", summary.ShiftCount)
	}
}

func TestSummarize_WindowLocation(t *testing.T) {
	t.Parallel()

	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2025-02-28 23:30 UTC は Rome では 3 月 1 日 00:30
	shifts := []shift.Shift{
		newShift("late", "c-1", "Bagnino", time.Date(2025, 2, 28, 23, 30, 0, 0, time.UTC), 1, 0),
	}

	utc := Summarize(shifts, testDirectory(), mustWindow(t, ModeMonth, 2025, 1), Filter{})
	local := Summarize(shifts, testDirectory(), mustWindow(t, ModeMonth, 2025, 2).In(rome), Filter{})

	if utc.ShiftCount != 1 || local.ShiftCount != 1 {
		t.Fatalf("expected the shift to move month with the window location, got utc=%d local=%d", utc.ShiftCount, local.ShiftCount)
	}
}

func TestSummarize_Filters(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	shifts := []shift.Shift{
		newShift("a", company.DefaultCompanyID, "AB", start, 2, 0),
		newShift("b", "c-1", "AB", start, 3, 0),
		newShift("c", "c-1", "Bagnino", start, 4, 0),
	}
	window := mustWindow(t, ModeMonth, 2025, 3)
	dir := testDirectory()

	byRole := Summarize(shifts, dir, window, Filter{Role: "AB"})
	if byRole.ShiftCount != 2 || !almostEqual(byRole.TotalHours, 5) {
		t.Fatalf("unexpected role-filtered summary %+v", byRole)
	}

	byCompany := Summarize(shifts, dir, window, Filter{CompanyID: "c-1"})
	if byCompany.ShiftCount != 2 || !almostEqual(byCompany.TotalHours, 7) {
		t.Fatalf("unexpected company-filtered summary %+v", byCompany)
	}

	both := Summarize(shifts, dir, window, Filter{Role: "AB", CompanyID: "c-1"})
	if both.ShiftCount != 1 || !almostEqual(both.TotalEarnings, 33) {
		t.Fatalf("unexpected combined-filter summary %+v", both)
	}
}

func TestSummarize_UnknownCompanyAndMissingRates(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	shifts := []shift.Shift{
		newShift("no-company", "", "AB", start, 2, 0),
		newShift("ghost-company", "deleted", "AB", start, 2, 0),
		newShift("unknown-role", "c-1", "Custode", start, 2, 0),
	}

	summary := Summarize(shifts, testDirectory(), mustWindow(t, ModeMonth, 2025, 3), Filter{})

	if summary.TotalEarnings != 0 {
		t.Fatalf("expected zero earnings for unresolved rates, got %v", summary.TotalEarnings)
	}
	if !almostEqual(summary.TotalHours, 6) {
		t.Fatalf("expected hours to be counted regardless of rates, got %v", summary.TotalHours)
	}

	unknown := summary.ByCompany[UnknownCompanyKey]
	if unknown == nil || unknown.Name != company.UnknownSummaryName || unknown.Count != 1 {
		t.Fatalf("expected unknown company bucket, got %+v", unknown)
	}
	if unknown.Name != "Sconosciuta" {
		t.Fatalf("expected summary fallback label, got %q", unknown.Name)
	}
	if ghost := summary.ByCompany["deleted"]; ghost == nil || ghost.Name != company.UnknownSummaryName {
		t.Fatalf("expected fallback name for unresolved company, got %+v", ghost)
	}
}

func TestSummarize_NilLookup(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	summary := Summarize([]shift.Shift{newShift("a", "c-1", "AB", start, 2, 0)}, nil, mustWindow(t, ModeYear, 2025, 0), Filter{})

	if summary.TotalEarnings != 0 || !almostEqual(summary.TotalHours, 2) {
		t.Fatalf("unexpected summary with nil lookup %+v", summary)
	}
}

func TestSummarize_NeverNegative(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC)
	inverted := shift.Shift{ID: "bad", CompanyID: "c-1", Role: "Bagnino", StartAt: start, EndAt: start.Add(-time.Hour)}
	longBreak := newShift("break", "c-1", "Bagnino", start, 1, 240)

	summary := Summarize([]shift.Shift{inverted, longBreak}, testDirectory(), mustWindow(t, ModeYear, 2025, 0), Filter{})

	if summary.TotalHours != 0 || summary.TotalEarnings != 0 {
		t.Fatalf("expected clamped zero totals, got %+v", summary)
	}
	if summary.ShiftCount != 2 {
		t.Fatalf("expected clamped shifts to still be counted, got %d", summary.ShiftCount)
	}
}

func TestSummarize_PartitionConsistency(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 5, 1, 6, 0, 0, 0, time.UTC)
	roles := []string{"AB", "Bagnino", "Istruttore", "Reception"}
	companies := []string{company.DefaultCompanyID, "c-1", "", "deleted"}

	var shifts []shift.Shift
	for i := 0; i < 40; i++ {
		start := base.AddDate(0, 0, i%28).Add(time.Duration(i%5) * time.Hour)
		shifts = append(shifts, newShift(
			"s",
			companies[i%len(companies)],
			roles[(i/2)%len(roles)],
			start,
			1.25+float64(i%7)*0.75,
			(i%4)*15,
		))
	}

	dir := testDirectory()
	summary := Summarize(shifts, dir, mustWindow(t, ModeMonth, 2025, 4), Filter{})

	var wantHours, wantEarnings float64
	for _, s := range shifts {
		h := s.EffectiveHours()
		wantHours += h
		if s.CompanyID != "" {
			wantEarnings += h * dir.RateFor(s.CompanyID, s.Role)
		}
	}

	if !almostEqual(summary.TotalHours, wantHours) || !almostEqual(summary.TotalEarnings, wantEarnings) {
		t.Fatalf("totals mismatch: got %v/%v want %v/%v", summary.TotalHours, summary.TotalEarnings, wantHours, wantEarnings)
	}

	var roleEarnings, companyEarnings, nestedEarnings float64
	for _, key := range summary.RoleKeys() {
		roleEarnings += summary.ByRole[key].Earnings
	}
	for _, key := range summary.CompanyKeys() {
		bucket := summary.ByCompany[key]
		companyEarnings += bucket.Earnings
		for _, role := range bucket.RoleKeys() {
			nestedEarnings += bucket.ByRole[role].Earnings
		}
	}

	if !almostEqual(roleEarnings, summary.TotalEarnings) {
		t.Fatalf("by-role earnings %v do not add up to %v", roleEarnings, summary.TotalEarnings)
	}
	if !almostEqual(companyEarnings, summary.TotalEarnings) {
		t.Fatalf("by-company earnings %v do not add up to %v", companyEarnings, summary.TotalEarnings)
	}
	if !almostEqual(nestedEarnings, summary.TotalEarnings) {
		t.Fatalf("company x role earnings %v do not add up to %v", nestedEarnings, summary.TotalEarnings)
	}

	again := Summarize(shifts, dir, mustWindow(t, ModeMonth, 2025, 4), Filter{})
	if again.TotalEarnings != summary.TotalEarnings || again.TotalHours != summary.TotalHours {
		t.Fatalf("expected identical totals for identical input")
	}
}

func TestNewWindow_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewWindow(ModeMonth, 2025, 12); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow for month 12, got %v", err)
	}
	if _, err := NewWindow("week", 2025, 0); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow for unknown mode, got %v", err)
	}

	w, err := NewWindow("YEAR", 2025, 99)
	if err != nil {
		t.Fatalf("expected year mode to ignore month, got %v", err)
	}
	if w.String() != "2025" {
		t.Fatalf("unexpected window label %s", w.String())
	}

	start, end := mustWindow(t, ModeMonth, 2024, 1).Bounds()
	if !start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) || !end.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected bounds %v - %v", start, end)
	}
}

type stubShiftLister struct {
	in     shift.ListShiftsInput
	shifts []shift.Shift
	err    error
}

func (s *stubShiftLister) ListShifts(_ context.Context, in shift.ListShiftsInput) ([]shift.Shift, error) {
	s.in = in
	return s.shifts, s.err
}

type stubDirectoryProvider struct {
	dir *company.Directory
	err error
}

func (s *stubDirectoryProvider) Directory(context.Context, string) (*company.Directory, error) {
	return s.dir, s.err
}

func TestService_Summarize(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	lister := &stubShiftLister{shifts: []shift.Shift{newShift("s-1", company.DefaultCompanyID, "AB", start, 8, 30)}}
	svc := NewService(lister, &stubDirectoryProvider{dir: testDirectory()}, time.UTC)

	summary, err := svc.Summarize(context.Background(), SummaryInput{UserID: "user-1", Mode: ModeMonth, Year: 2025, Month: 2, Role: " AB "})
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}

	if lister.in.UserID != "user-1" {
		t.Fatalf("expected user id to be forwarded, got %+v", lister.in)
	}
	if !almostEqual(summary.TotalEarnings, 80.025) {
		t.Fatalf("expected 80.025, got %v", summary.TotalEarnings)
	}
}

func TestService_Summarize_Errors(t *testing.T) {
	t.Parallel()

	svc := NewService(&stubShiftLister{}, &stubDirectoryProvider{}, nil)

	if _, err := svc.Summarize(context.Background(), SummaryInput{Mode: ModeYear, Year: 2025}); !errors.Is(err, ErrInvalidUserID) {
		t.Fatalf("expected ErrInvalidUserID, got %v", err)
	}
	if _, err := svc.Summarize(context.Background(), SummaryInput{UserID: "u", Mode: "day"}); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	listErr := errors.New("list failed")
	svc = NewService(&stubShiftLister{err: listErr}, &stubDirectoryProvider{}, nil)
	if _, err := svc.Summarize(context.Background(), SummaryInput{UserID: "u", Mode: ModeYear, Year: 2025}); !errors.Is(err, listErr) {
		t.Fatalf("expected list error, got %v", err)
	}

	dirErr := errors.New("dir failed")
	svc = NewService(&stubShiftLister{}, &stubDirectoryProvider{err: dirErr}, nil)
	if _, err := svc.Summarize(context.Background(), SummaryInput{UserID: "u", Mode: ModeYear, Year: 2025}); !errors.Is(err, dirErr) {
		t.Fatalf("expected directory error, got %v", err)
	}
}
