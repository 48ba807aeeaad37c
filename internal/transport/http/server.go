package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bblair321/TeamChat/internal/auth"
	"github.com/bblair321/TeamChat/internal/config"
	"github.com/bblair321/TeamChat/internal/core"
	"github.com/bblair321/TeamChat/internal/store"
)

// NewServer builds the HTTP server: REST surface for accounts, channels and
// history, plus the WebSocket endpoint that feeds the hub.
func NewServer(hub *core.Hub, authService *auth.Service, st store.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	api := NewAPIHandlers(authService, st, logger)

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.EventBuffer, logger)))

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", api.Register)
		authGroup.POST("/login", api.Login)
	}

	chatGroup := router.Group("/chat")
	chatGroup.Use(AuthMiddleware(authService, logger))
	{
		chatGroup.GET("/channels", api.ListChannels)
		chatGroup.POST("/channels", api.CreateChannel)
		chatGroup.GET("/messages/:channel_id", api.ListMessages)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
