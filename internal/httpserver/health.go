package httpserver

import (
	"github.com/gin-gonic/gin"

	pgConfig "auditor-srv/config/postgre"
	"auditor-srv/pkg/errors"
	"auditor-srv/pkg/response"
)

// healthCheck reports overall service health, including the lead store
// connection and, when configured, the Redis dedup backend.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := pgConfig.HealthCheck(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(503, "Lead store connection failed"))
		return
	}

	redisStatus := "disabled"
	if srv.redis != nil {
		if err := srv.redis.Ping(ctx); err != nil {
			response.HttpError(c, errors.NewHTTPError(503, "Redis connection failed"))
			return
		}
		redisStatus = "connected"
	}

	response.OK(c, gin.H{
		"status":     "healthy",
		"service":    "auditor-srv",
		"version":    "1.0.0",
		"lead_store": "connected",
		"redis":      redisStatus,
	})
}

// readyCheck reports whether the service is ready to serve traffic.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := pgConfig.HealthCheck(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(503, "Lead store connection not available"))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "auditor-srv",
		"version": "1.0.0",
	})
}

// liveCheck reports whether the process is alive.
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "auditor-srv",
		"version": "1.0.0",
	})
}
