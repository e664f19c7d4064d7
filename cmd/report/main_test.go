package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ogurasousui/poolcalendar/internal/core/earnings"
)

func TestPrintSummary(t *testing.T) {
	t.Parallel()

	window, err := earnings.NewWindow(earnings.ModeYear, 2025, 0)
	if err != nil {
		t.Fatalf("NewWindow returned error: %v", err)
	}

	summary := &earnings.Summary{
		Window:        window,
		TotalHours:    7.5,
		TotalEarnings: 80.025,
		ShiftCount:    1,
		ByRole:        map[string]*earnings.Bucket{"AB": {Hours: 7.5, Earnings: 80.025, Count: 1}},
		ByCompany: map[string]*earnings.CompanyBucket{
			"milanosport": {
				Bucket: earnings.Bucket{Hours: 7.5, Earnings: 80.025, Count: 1},
				Name:   "Milanosport",
				ByRole: map[string]*earnings.RoleBucket{"AB": {Bucket: earnings.Bucket{Hours: 7.5, Earnings: 80.025, Count: 1}, Rate: 10.67}},
			},
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, summary)

	out := buf.String()
	for _, want := range []string{"period 2025: 1 shifts, 7.50 h,", "[Milanosport]", "10.67/h"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got\n%s", want, out)
		}
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.ics")
	if err := writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "BEGIN:VCALENDAR\r\n")
		return err
	}); err != nil {
		t.Fatalf("writeFile returned error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file: %v", err)
	}
	if string(b) != "BEGIN:VCALENDAR\r\n" {
		t.Fatalf("unexpected file content %q", b)
	}
}
