package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/ogurasousui/poolcalendar/internal/core/earnings"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary   = "Riepilogo"
	SheetRoles     = "Ruoli"
	SheetCompanies = "Società"

	totalLabel = "Totale"
)

// WriteEarningsWorkbook は集計結果を 3 シートの .xlsx として書き出します。
func WriteEarningsWorkbook(w io.Writer, summary *earnings.Summary) (err error) {
	if summary == nil {
		return errors.New("report: summary is required")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("report: close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return fmt.Errorf("report: rename sheet: %w", err)
	}
	for _, name := range []string{SheetRoles, SheetCompanies} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("report: create sheet %s: %w", name, err)
		}
	}

	if err := writeRows(f, SheetSummary, summaryRows(summary)); err != nil {
		return err
	}
	if err := writeRows(f, SheetRoles, roleRows(summary)); err != nil {
		return err
	}
	if err := writeRows(f, SheetCompanies, companyRows(summary)); err != nil {
		return err
	}

	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("report: write workbook: %w", err)
	}
	return nil
}

func summaryRows(s *earnings.Summary) [][]any {
	return [][]any{
		{"Periodo", s.Window.String()},
		{"Turni", s.ShiftCount},
		{"Ore totali", s.TotalHours},
		{"Guadagno totale", s.TotalEarnings},
	}
}

func roleRows(s *earnings.Summary) [][]any {
	rows := [][]any{{"Ruolo", "Turni", "Ore", "Guadagno"}}
	for _, role := range s.RoleKeys() {
		b := s.ByRole[role]
		rows = append(rows, []any{role, b.Count, b.Hours, b.Earnings})
	}
	return rows
}

func companyRows(s *earnings.Summary) [][]any {
	rows := [][]any{{"Società", "Ruolo", "Tariffa", "Turni", "Ore", "Guadagno"}}
	for _, key := range s.CompanyKeys() {
		c := s.ByCompany[key]
		for _, role := range c.RoleKeys() {
			rb := c.ByRole[role]
			rows = append(rows, []any{c.Name, role, rb.Rate, rb.Count, rb.Hours, rb.Earnings})
		}
		rows = append(rows, []any{c.Name, totalLabel, "", c.Count, c.Hours, c.Earnings})
	}
	return rows
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("report: %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("report: %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
