// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/geo"
	"antar/internal/modules/auth"
	"antar/internal/modules/chat"
	"antar/internal/modules/match"
	"antar/internal/modules/notification"
	"antar/internal/modules/trip"
	"antar/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

// isValidID ensures IDs are hex and at most 32 chars (matches the ID generator).
func isValidID(v string) bool {
	if v == "" || len(v) > 32 {
		return false
	}
	for _, c := range v {
		if (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') {
			continue
		}
		return false
	}
	return true
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest),
		errors.Is(err, auth.ErrBadRequest),
		errors.Is(err, chat.ErrBadRequest),
		errors.Is(err, geo.ErrInvalidCoordinate):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound),
		errors.Is(err, match.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, chat.ErrNotFound),
		errors.Is(err, notification.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrInvalidState),
		errors.Is(err, match.ErrInvalidState),
		errors.Is(err, auth.ErrPhoneTaken):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidOTP):
		writeError(c, http.StatusUnauthorized, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
