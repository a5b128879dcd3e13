package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Mohor35/collaborative-canvas/internal/config"
	"github.com/Mohor35/collaborative-canvas/internal/core"
)

// NewServer builds the HTTP server: health check, the WebSocket endpoint,
// and the read-only room observation API.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.ClientBuffer, cfg.CursorRateLimit, logger)))

	rooms := NewRoomHandlers(hub, logger)
	api := router.Group("/api")
	api.GET("/rooms", rooms.ListRooms)
	api.GET("/rooms/:id/participants", rooms.Participants)
	api.GET("/rooms/:id/strokes", rooms.Strokes)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
