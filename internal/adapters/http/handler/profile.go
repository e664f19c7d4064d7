package handler

import (
	"net/http"
	"time"

	"github.com/ogurasousui/poolcalendar/internal/core/profile"
)

type feedTokenResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RotateFeedToken は現在のトークンで認証したうえで新しいトークンを発行します。
func (h *Handler) RotateFeedToken(w http.ResponseWriter, r *http.Request) {
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

	updated, err := h.profiles.RotateFeedToken(r.Context(), profile.RotateFeedTokenInput{UserID: userID})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, feedTokenResponse{
		UserID:    updated.ID,
		Token:     updated.FeedToken,
		UpdatedAt: updated.UpdatedAt,
	})
}
