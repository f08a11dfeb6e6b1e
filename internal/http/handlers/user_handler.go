// README: Profile handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/http/middleware"
	"antar/internal/modules/user"
)

type UserHandler struct {
	users *user.Service
}

func NewUserHandler(svc *user.Service) *UserHandler {
	return &UserHandler{users: svc}
}

// userView hides credential fields from API responses.
func userView(u *user.User) gin.H {
	return gin.H{
		"id":                       u.ID,
		"phone_number":             u.PhoneNumber,
		"full_name":                u.FullName,
		"email":                    u.Email,
		"role":                     u.Role,
		"is_driver":                u.IsDriver,
		"avatar_url":               u.AvatarURL,
		"rating":                   u.Rating,
		"trips_completed":          u.TripsCompleted,
		"license_type":             u.LicenseType,
		"vehicle_model":            u.VehicleModel,
		"vehicle_plate":            u.VehiclePlate,
		"current_position":         u.CurrentPosition,
		"location_sharing_enabled": u.LocationSharingEnabled,
		"created_at":               u.CreatedAt,
	}
}

func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, userView(u))
}

type updateProfileReq struct {
	FullName               *string `json:"full_name"`
	Email                  *string `json:"email"`
	Role                   *string `json:"role"`
	AvatarURL              *string `json:"avatar_url"`
	LocationSharingEnabled *bool   `json:"location_sharing_enabled"`
	LicenseType            *string `json:"license_type"`
	VehicleModel           *string `json:"vehicle_model"`
	VehiclePlate           *string `json:"vehicle_plate"`
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	cmd := user.UpdateCommand{
		FullName:               req.FullName,
		Email:                  req.Email,
		AvatarURL:              req.AvatarURL,
		LocationSharingEnabled: req.LocationSharingEnabled,
		LicenseType:            req.LicenseType,
		VehicleModel:           req.VehicleModel,
		VehiclePlate:           req.VehiclePlate,
	}
	if req.Role != nil {
		role := user.Role(*req.Role)
		cmd.Role = &role
	}
	u, err := h.users.Update(c.Request.Context(), middleware.CallerUID(c), cmd)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, userView(u))
}
