package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/api/handlers"
	"github.com/linskybing/projectsign/internal/api/middleware"
	"github.com/linskybing/projectsign/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/linskybing/projectsign/docs"
)

// RegisterRoutes mounts the owner API behind JWT auth and the public
// signing API behind the per-IP limiter.
func RegisterRoutes(r *gin.Engine, h *handlers.Handlers, signLimiter *middleware.IPRateLimiter) {
	r.GET("/healthz", h.Health.Healthz)
	if config.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/register", h.User.Register)
	r.POST("/login", h.User.Login)
	r.POST("/logout", h.User.Logout)

	sign := r.Group("/sign-api")
	sign.Use(middleware.RateLimit(signLimiter))
	{
		sign.GET("/:token", h.Sign.GetSigningForm)
		sign.POST("/:token", h.Sign.SubmitSignature)
	}

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware())
	{
		auth.GET("/auth/status", h.User.AuthStatus)
		auth.GET("/ws/events", h.Events.Watch)

		projects := auth.Group("/projects")
		{
			projects.GET("", h.Project.GetProjects)
			projects.POST("", h.Project.CreateProject)
			projects.GET("/:id", h.Project.GetProjectByID)
			projects.PUT("/:id", h.Project.UpdateProject)
			projects.PATCH("/:id/status", h.Project.UpdateStatus)
			projects.DELETE("/:id", h.Project.DeleteProject)
			projects.GET("/:id/forms", h.Project.ListForms)
			projects.POST("/:id/forms", h.Project.CreateForm)
		}

		forms := auth.Group("/forms")
		{
			forms.GET("/:id", h.Form.GetForm)
			forms.PATCH("/:id", h.Form.UpdateForm)
			forms.DELETE("/:id", h.Form.DeleteForm)
			forms.POST("/:id/send", h.Form.SendForm)
			forms.GET("/:id/pdf", h.Form.DownloadPDF)
			forms.GET("/:id/verify", h.Form.VerifyForm)
		}

		auth.GET("/audit/logs", h.Audit.GetAuditLogs)
	}
}
