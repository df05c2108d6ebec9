package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/cynq/cynq-backend/internal/realtime"
)

type RealtimeHandler struct {
	hub *realtime.Hub
}

func NewRealtimeHandler(hub *realtime.Hub) *RealtimeHandler {
	return &RealtimeHandler{hub: hub}
}

// GET /api/events/stream
//
// Each caller is subscribed to their own user channel; hub broadcasts
// for other users never reach this stream.
func (h *RealtimeHandler) Stream(c *gin.Context) {
	userID := callerID(c)
	client := h.hub.NewClient(userID)
	h.hub.AddChannel(client, userID.String())
	defer h.hub.CloseClient(client)

	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
