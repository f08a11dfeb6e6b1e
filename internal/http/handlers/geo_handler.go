// README: Geocoding handlers. Unavailable (503) when no Maps API key is
// configured.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/maps"
	"antar/internal/types"
)

type GeoHandler struct {
	geocoding *maps.GeocodingService
	routes    *maps.RouteService
}

func NewGeoHandler(geocoding *maps.GeocodingService, routes *maps.RouteService) *GeoHandler {
	return &GeoHandler{geocoding: geocoding, routes: routes}
}

func (h *GeoHandler) Geocode(c *gin.Context) {
	if h.geocoding == nil {
		writeError(c, http.StatusServiceUnavailable, "geocoding not configured")
		return
	}
	address := c.Query("address")
	if address == "" {
		writeError(c, http.StatusBadRequest, "address is required")
		return
	}
	p, formatted, err := h.geocoding.Geocode(c.Request.Context(), address)
	if err != nil {
		writeError(c, http.StatusBadGateway, "geocoding failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"position": p, "address": formatted})
}

type reverseGeocodeReq struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (h *GeoHandler) ReverseGeocode(c *gin.Context) {
	if h.geocoding == nil {
		writeError(c, http.StatusServiceUnavailable, "geocoding not configured")
		return
	}
	var req reverseGeocodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	address, err := h.geocoding.ReverseGeocode(c.Request.Context(), types.Point{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		writeError(c, http.StatusBadGateway, "reverse geocoding failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"address": address})
}

type routeEstimateReq struct {
	Origin      types.Point `json:"origin"`
	Destination types.Point `json:"destination"`
}

// RouteEstimate returns the driving duration and road distance between two
// points.
func (h *GeoHandler) RouteEstimate(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "routing not configured")
		return
	}
	var req routeEstimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	duration, distanceKm, err := h.routes.TravelEstimate(c.Request.Context(), req.Origin, req.Destination)
	if err != nil {
		writeError(c, http.StatusBadGateway, "route lookup failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"duration_minutes": duration.Minutes(),
		"distance_km":      distanceKm,
	})
}
