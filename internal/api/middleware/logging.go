package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/pkg/types"
	"go.uber.org/zap"
)

// ZapLogger logs one line per request. Paths under /sign-api/ carry a bearer
// capability and are logged with the token redacted.
func ZapLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", redactPath(c.Request.URL.Path)),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", GetRequestID(c)),
		}
		if v, ok := c.Get("claims"); ok {
			if claims, ok := v.(*types.Claims); ok {
				fields = append(fields, zap.Uint("user_id", claims.UserID))
			}
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			log.Error("request", fields...)
		case status >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

func redactPath(p string) string {
	const prefix = "/sign-api/"
	if strings.HasPrefix(p, prefix) {
		return prefix + ":token"
	}
	return p
}
