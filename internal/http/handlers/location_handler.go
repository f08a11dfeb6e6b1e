// README: Location handlers: record positions, fetch history, nearby lookup.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"antar/internal/http/middleware"
	"antar/internal/modules/location"
	"antar/internal/types"
)

type LocationHandler struct {
	locations *location.Service
}

func NewLocationHandler(svc *location.Service) *LocationHandler {
	return &LocationHandler{locations: svc}
}

type updateLocationReq struct {
	Lat        float64  `json:"lat"`
	Lng        float64  `json:"lng"`
	AccuracyM  *float64 `json:"accuracy_m"`
	SpeedKmh   *float64 `json:"speed_kmh"`
	HeadingDeg *float64 `json:"heading_deg"`
}

func (h *LocationHandler) Update(c *gin.Context) {
	var req updateLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	u, err := h.locations.Record(c.Request.Context(), middleware.CallerUID(c),
		types.Point{Lat: req.Lat, Lng: req.Lng},
		location.Telemetry{AccuracyM: req.AccuracyM, SpeedKmh: req.SpeedKmh, HeadingDeg: req.HeadingDeg})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, u)
}

func (h *LocationHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	updates, err := h.locations.History(c.Request.Context(), middleware.CallerUID(c), limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, updates)
}

func (h *LocationHandler) Nearby(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(c, http.StatusBadRequest, "lat and lng are required")
		return
	}
	radiusKm, _ := strconv.ParseFloat(c.Query("radius_km"), 64)
	users, err := h.locations.Nearby(c.Request.Context(), types.Point{Lat: lat, Lng: lng}, radiusKm)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, users)
}
