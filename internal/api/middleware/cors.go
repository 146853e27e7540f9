package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/config"
)

// CORSMiddleware allows the configured front-end origins. Localhost is always
// allowed outside production.
func CORSMiddleware() gin.HandlerFunc {
	corsHandler := cors.New(cors.Config{
		AllowOriginFunc:  OriginAllowed,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}

// OriginAllowed reports whether a browser origin may call the API. The
// websocket upgrader uses it as well.
func OriginAllowed(origin string) bool {
	origin = strings.TrimRight(origin, "/")
	for _, o := range config.CORSAllowedOrigins {
		if strings.TrimRight(o, "/") == origin {
			return true
		}
	}
	if !config.IsProduction {
		return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
	}
	return false
}
