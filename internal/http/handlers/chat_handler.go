// README: Chat handlers: send a message on a trip, fetch the history.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"antar/internal/http/middleware"
	"antar/internal/modules/chat"
	"antar/internal/types"
)

type ChatHandler struct {
	chat *chat.Service
}

func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{chat: svc}
}

type sendMessageReq struct {
	ReceiverID string `json:"receiver_id"`
	Text       string `json:"text"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if !isValidID(req.ReceiverID) {
		writeError(c, http.StatusBadRequest, "invalid receiver id")
		return
	}
	m, err := h.chat.Send(c.Request.Context(), types.ID(tripID), middleware.CallerUID(c), types.ID(req.ReceiverID), req.Text)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, m)
}

func (h *ChatHandler) History(c *gin.Context) {
	tripID := c.Param("id")
	if !isValidID(tripID) {
		writeError(c, http.StatusBadRequest, "invalid trip id")
		return
	}
	msgs, err := h.chat.History(c.Request.Context(), types.ID(tripID), middleware.CallerUID(c))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, msgs)
}
