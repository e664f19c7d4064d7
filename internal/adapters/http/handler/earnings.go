package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ogurasousui/poolcalendar/internal/core/earnings"
)

type earningsResponse struct {
	Window    string   `json:"window"`
	Mode      string   `json:"mode"`
	Roles     []string `json:"roles"`
	Companies []string `json:"companies"`
	*earnings.Summary
}

// Earnings はトークンで保護された収入集計を JSON で返します。
// year と month (0 始まり) は省略時に現在の年月を使います。
func (h *Handler) Earnings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userID, token, err := credentials(q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.profiles.VerifyFeedToken(r.Context(), userID, token); err != nil {
		writeError(w, r, err)
		return
	}

	in, err := h.parseSummaryInput(userID, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := h.earnings.Summarize(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, earningsResponse{
		Window:    summary.Window.String(),
		Mode:      string(summary.Window.Mode),
		Roles:     summary.RoleKeys(),
		Companies: summary.CompanyKeys(),
		Summary:   summary,
	})
}

type queryValues interface {
	Get(key string) string
}

func (h *Handler) parseSummaryInput(userID string, q queryValues) (earnings.SummaryInput, error) {
	now := h.now()

	in := earnings.SummaryInput{
		UserID:    userID,
		Mode:      earnings.ModeMonth,
		Year:      now.Year(),
		Month:     int(now.Month()) - 1,
		Role:      q.Get("role"),
		CompanyID: q.Get("company"),
	}

	if mode := strings.TrimSpace(q.Get("mode")); mode != "" {
		in.Mode = earnings.Mode(mode)
	}

	if raw := strings.TrimSpace(q.Get("year")); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return earnings.SummaryInput{}, fmt.Errorf("year %q: %w", raw, earnings.ErrInvalidWindow)
		}
		in.Year = year
	}

	if raw := strings.TrimSpace(q.Get("month")); raw != "" {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return earnings.SummaryInput{}, fmt.Errorf("month %q: %w", raw, earnings.ErrInvalidWindow)
		}
		in.Month = month
	}

	return in, nil
}
