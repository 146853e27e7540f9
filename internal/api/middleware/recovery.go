package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/pkg/apperr"
	"github.com/linskybing/projectsign/pkg/response"
	"go.uber.org/zap"
)

// Recovery turns panics into a 500 and logs the stack.
func Recovery(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", redactPath(c.Request.URL.Path)),
					zap.String("request_id", GetRequestID(c)),
					zap.Stack("stack"))
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
					Error: "internal server error",
					Code:  string(apperr.KindInternal),
				})
			}
		}()
		c.Next()
	}
}
