package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"classpoll/internal/config"
	"classpoll/internal/core"
)

// NewServer builds the HTTP server: websocket endpoint, REST snapshot API,
// and health check.
func NewServer(session *core.Session, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(session, logger)))

	handlers := NewAPIHandlers(session, logger)
	api := router.Group("/api")
	api.Use(LoggerMiddleware(logger))
	{
		api.GET("/students", handlers.Students)
		api.GET("/polls/current", handlers.CurrentPoll)
		api.GET("/polls/history", handlers.History)
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
