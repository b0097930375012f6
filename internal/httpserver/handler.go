package httpserver

import (
	"auditor-srv/internal/middleware"
)

const (
	Api = "/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	corsConfig := middleware.DefaultCORSConfig()
	srv.gin.Use(middleware.CORS(corsConfig))
	srv.gin.Use(middleware.Recovery(srv.logger))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	api := srv.gin.Group(Api)
	audit := api.Group("/audit")
	audit.POST("/run", srv.runCycle)
	audit.POST("/test-message", srv.sendTestMessage)
	audit.GET("/inventory", srv.inventory)

	leads := api.Group("/leads")
	leads.PATCH("/:id/status", srv.markLeadStatus)

	return nil
}
