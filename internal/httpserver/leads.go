package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"auditor-srv/internal/lead"
	"auditor-srv/internal/lead/repository"
	"auditor-srv/internal/model"
	pkgErrors "auditor-srv/pkg/errors"
	postgresPkg "auditor-srv/pkg/postgre"
	"auditor-srv/pkg/response"
)

type markLeadStatusReq struct {
	Status model.LeadStatus `json:"status" binding:"required"`
}

// markLeadStatus updates a lead's pipeline status, the acknowledge path
// after a hot-lead alert has been handled.
func (srv *HTTPServer) markLeadStatus(c *gin.Context) {
	ctx := c.Request.Context()
	leadID := c.Param("id")

	var req markLeadStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.HttpError(c, pkgErrors.NewBadRequestHTTPError("status is required"))
		return
	}

	if err := srv.auditorUC.MarkLeadStatus(ctx, leadID, req.Status); err != nil {
		switch {
		case errors.Is(err, postgresPkg.ErrInvalidUUID), errors.Is(err, lead.ErrInvalidStatus):
			response.HttpError(c, pkgErrors.NewBadRequestHTTPError(err.Error()))
		case errors.Is(err, repository.ErrNotFound):
			response.HttpError(c, pkgErrors.NewHTTPError(404, "Lead not found"))
		case errors.Is(err, lead.ErrStoreUnavailable):
			response.HttpError(c, pkgErrors.NewServiceUnavailableHTTPError("Lead store unavailable"))
		default:
			srv.logger.Errorf(ctx, "internal.httpserver.markLeadStatus: %v", err)
			response.HttpError(c, pkgErrors.NewInternalServerError())
		}
		return
	}

	response.OK(c, gin.H{"id": leadID, "status": req.Status})
}
