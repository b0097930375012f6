package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "auditor-srv/pkg/errors"
)

const MessageSuccess = "Success"

// Resp is the standard JSON response envelope.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// HttpError sends an error response, mapping HTTPError to its status code
// and anything else to a generic 500.
func HttpError(c *gin.Context, err error) {
	if httpErr, ok := err.(*pkgErrors.HTTPError); ok {
		statusCode := httpErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: http.StatusInternalServerError,
		Message:   "internal server error",
	})
}
