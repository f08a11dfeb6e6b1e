// README: Notification handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/http/middleware"
	"antar/internal/modules/notification"
	"antar/internal/types"
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: svc}
}

func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.notifications.List(c.Request.Context(), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, list)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		writeError(c, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), types.ID(id), middleware.CallerUID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifications.MarkAllRead(c.Request.Context(), middleware.CallerUID(c)); err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": "read"})
}
