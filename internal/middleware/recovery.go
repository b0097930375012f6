package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	pkgLog "auditor-srv/pkg/log"
	"auditor-srv/pkg/response"
)

// Recovery returns a middleware that recovers from panics, logs the stack
// and answers with a generic 500.
func Recovery(l pkgLog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l.Errorf(c.Request.Context(), "internal.middleware.Recovery: panic: %v\n%s", r, debug.Stack())
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Resp{
					ErrorCode: http.StatusInternalServerError,
					Message:   "internal server error",
				})
			}
		}()
		c.Next()
	}
}
