package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Mohor35/collaborative-canvas/internal/core"
)

// RoomHandlers provides read-only HTTP handlers for observing live rooms.
// All reads go through hub queries, so they never race the event stream.
type RoomHandlers struct {
	hub *core.Hub
	log *zerolog.Logger
}

// NewRoomHandlers creates a new room handlers instance.
func NewRoomHandlers(hub *core.Hub, logger *zerolog.Logger) *RoomHandlers {
	return &RoomHandlers{
		hub: hub,
		log: logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListRooms returns the active rooms with member and stroke counts.
// GET /api/rooms
func (h *RoomHandlers) ListRooms(c *gin.Context) {
	summaries := h.hub.RoomSummaries()
	if summaries == nil {
		summaries = []core.RoomSummary{}
	}
	c.JSON(http.StatusOK, summaries)
}

// Participants returns the roster of one room.
// GET /api/rooms/:id/participants
func (h *RoomHandlers) Participants(c *gin.Context) {
	roomID := c.Param("id")
	roster, err := h.hub.RoomRoster(roomID)
	if err != nil {
		if errors.Is(err, core.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		h.log.Error().Err(err).Str("room", roomID).Msg("failed to read roster")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, roster)
}

// Strokes returns the room's completed stroke log in snapshot order.
// GET /api/rooms/:id/strokes
func (h *RoomHandlers) Strokes(c *gin.Context) {
	roomID := c.Param("id")
	strokes, err := h.hub.RoomSnapshot(roomID)
	if err != nil {
		if errors.Is(err, core.ErrRoomNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		h.log.Error().Err(err).Str("room", roomID).Msg("failed to read snapshot")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	c.JSON(http.StatusOK, strokes)
}
