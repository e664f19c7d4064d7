package handler

import (
	"errors"
	"net/http"

	"github.com/ogurasousui/poolcalendar/internal/core/earnings"
	"github.com/ogurasousui/poolcalendar/internal/core/feed"
	"github.com/ogurasousui/poolcalendar/internal/core/profile"
)

const (
	msgMissingParams = "Missing user or token"
	msgInvalidToken  = "Invalid token"
	msgNoShifts      = "No shifts found"
)

func toHTTPError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case errors.Is(err, feed.ErrMissingParams):
		return http.StatusBadRequest, msgMissingParams
	case errors.Is(err, feed.ErrInvalidToken), errors.Is(err, profile.ErrInvalidToken):
		return http.StatusForbidden, msgInvalidToken
	case errors.Is(err, feed.ErrNoShifts):
		return http.StatusNotFound, msgNoShifts
	case errors.Is(err, earnings.ErrInvalidWindow),
		errors.Is(err, earnings.ErrInvalidUserID),
		errors.Is(err, profile.ErrInvalidUserID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, profile.ErrProfileNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
