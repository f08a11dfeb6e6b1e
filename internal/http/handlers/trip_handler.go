// README: Trip handlers for create/list/get/update/cancel plus fare
// suggestions.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/http/middleware"
	"antar/internal/modules/pricing"
	"antar/internal/modules/trip"
	"antar/internal/types"
)

type TripHandler struct {
	trips   *trip.Service
	pricing *pricing.Service
}

func NewTripHandler(trips *trip.Service, pricingSvc *pricing.Service) *TripHandler {
	return &TripHandler{trips: trips, pricing: pricingSvc}
}

type createTripReq struct {
	Type               string      `json:"type"`
	Origin             types.Point `json:"origin"`
	OriginAddress      string      `json:"origin_address"`
	Destination        types.Point `json:"destination"`
	DestinationAddress string      `json:"destination_address"`
	DepartureDate      string      `json:"departure_date"`
	DepartureTime      string      `json:"departure_time"`
	SeatsAvailable     *int        `json:"seats_available"`
	Price              float64     `json:"price"`
}

func (h *TripHandler) Create(c *gin.Context) {
	var req createTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	t, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		UserID:             middleware.CallerUID(c),
		Type:               trip.Type(req.Type),
		Origin:             req.Origin,
		OriginAddress:      req.OriginAddress,
		Destination:        req.Destination,
		DestinationAddress: req.DestinationAddress,
		DepartureDate:      req.DepartureDate,
		DepartureTime:      req.DepartureTime,
		SeatsAvailable:     req.SeatsAvailable,
		Price:              req.Price,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, t)
}

func (h *TripHandler) List(c *gin.Context) {
	trips, err := h.trips.ListByUser(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, trips)
}

func (h *TripHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	t, err := h.trips.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

type updateTripReq struct {
	Status         *string  `json:"status"`
	SeatsAvailable *int     `json:"seats_available"`
	Price          *float64 `json:"price"`
}

func (h *TripHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req updateTripReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := trip.UpdateCommand{SeatsAvailable: req.SeatsAvailable, Price: req.Price}
	if req.Status != nil {
		status := trip.Status(*req.Status)
		cmd.Status = &status
	}
	t, err := h.trips.Update(c.Request.Context(), types.ID(id), cmd)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, t)
}

func (h *TripHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	if err := h.trips.Cancel(c.Request.Context(), types.ID(id)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": trip.StatusCancelled})
}

// SuggestFare returns a suggested price for the trip's distance and seats.
func (h *TripHandler) SuggestFare(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	t, err := h.trips.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	seats := 1
	if t.SeatsAvailable != nil {
		seats = *t.SeatsAvailable
	}
	est, err := h.pricing.Suggest(c.Request.Context(), string(t.Type), t.DistanceKm, seats)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, est)
}
