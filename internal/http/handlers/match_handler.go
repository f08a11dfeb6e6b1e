// README: Match handlers: list available matches for a trip, re-trigger
// matching, accept, reject.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/modules/match"
	"antar/internal/types"
)

// MatchRunner re-evaluates the candidate pool for a trip.
type MatchRunner interface {
	Run(ctx context.Context, tripID types.ID) error
}

type MatchHandler struct {
	matches *match.Service
	matcher MatchRunner
}

func NewMatchHandler(svc *match.Service, matcher MatchRunner) *MatchHandler {
	return &MatchHandler{matches: svc, matcher: matcher}
}

func (h *MatchHandler) ListForTrip(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	matches, err := h.matches.AvailableMatches(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, matches)
}

// Rematch re-runs candidate evaluation for a trip on demand and returns the
// refreshed match list. Matching already runs on trip creation; this is the
// manual retry for when the pool has changed since.
func (h *MatchHandler) Rematch(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	if err := h.matcher.Run(c.Request.Context(), types.ID(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	matches, err := h.matches.AvailableMatches(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, matches)
}

type setMatchStatusReq struct {
	Status string `json:"status"`
}

func (h *MatchHandler) SetStatus(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid match id")
		return
	}
	var req setMatchStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	m, err := h.matches.SetStatus(c.Request.Context(), types.ID(id), match.Status(req.Status))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, m)
}
