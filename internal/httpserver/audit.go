package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"auditor-srv/internal/auditor"
	pkgErrors "auditor-srv/pkg/errors"
	"auditor-srv/pkg/response"
)

// runCycle triggers a single audit cycle immediately and returns its report.
// Returns 409 when a scheduled cycle is already running.
func (srv *HTTPServer) runCycle(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := srv.auditorUC.RunCycle(ctx)
	if err != nil {
		if errors.Is(err, auditor.ErrCycleInProgress) {
			response.HttpError(c, pkgErrors.NewHTTPError(409, "Audit cycle already in progress"))
			return
		}
		srv.logger.Errorf(ctx, "internal.httpserver.runCycle: %v", err)
		response.HttpError(c, pkgErrors.NewInternalServerError())
		return
	}

	response.OK(c, report)
}

// sendTestMessage pushes an online notice through every chat channel so an
// operator can verify webhook and bot credentials.
func (srv *HTTPServer) sendTestMessage(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.auditorUC.SendTestMessage(ctx); err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.sendTestMessage: %v", err)
		response.HttpError(c, pkgErrors.NewHTTPError(502, "Test message delivery failed"))
		return
	}

	response.OK(c, gin.H{"status": "sent"})
}

// inventory reports current lead counts per status and score threshold.
func (srv *HTTPServer) inventory(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := srv.auditorUC.Inventory(ctx)
	if err != nil {
		srv.logger.Errorf(ctx, "internal.httpserver.inventory: %v", err)
		response.HttpError(c, pkgErrors.NewServiceUnavailableHTTPError("Lead store unavailable"))
		return
	}

	response.OK(c, summary)
}
