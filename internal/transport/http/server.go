package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/onelap/pitwall-server/internal/config"
	"github.com/onelap/pitwall-server/internal/core"
)

// NewServer builds the HTTP server: status and dashboard pages, the
// websocket endpoint, health and metrics.
func NewServer(hub *core.Hub, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", indexPage)
	// The page is served without checking that the session exists; the
	// dashboard itself waits on its join_session round trip.
	router.GET("/dashboard/:session_id", dashboardPage)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.ClientBuffer, logger)))
	router.GET("/healthz", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
