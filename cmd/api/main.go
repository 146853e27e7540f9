package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/projectsign/internal/api/handlers"
	"github.com/linskybing/projectsign/internal/api/middleware"
	"github.com/linskybing/projectsign/internal/api/routes"
	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/config"
	"github.com/linskybing/projectsign/internal/config/db"
	"github.com/linskybing/projectsign/internal/cron"
	"github.com/linskybing/projectsign/internal/migrations"
	"github.com/linskybing/projectsign/internal/notify"
	"github.com/linskybing/projectsign/internal/render"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/internal/storage"
	"github.com/linskybing/projectsign/pkg/logger"
	"go.uber.org/zap"
)

// @title ProjectSign API
// @version 1.0
// @description Contractor document signing service.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log, err := logger.NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// Load configuration from environment variables and .env file
	config.LoadConfig()

	// Initialize JWT signing key
	middleware.Init()

	if err := db.Init(); err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}
	if err := migrations.Run(db.DB); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	blobs, err := storage.Open(ctx)
	if err != nil {
		log.Fatal("failed to open signature storage", zap.Error(err))
	}

	repos := repository.NewRepositories(db.DB)
	svc := application.New(repos, application.Dependencies{
		Blobs:    blobs,
		Email:    notify.NewEmailSender(config.ResendAPIKey, config.EmailFrom),
		SMS:      notify.NewSMSSender(config.TwilioAccountSID, config.TwilioAuthToken, config.TwilioPhoneNumber),
		Renderer: render.NewPDFRenderer(config.PDFFontPath, config.PDFRenderTimeout),
		Logger:   log,
	})

	if config.CleanupInAPI {
		cron.StartCleanupTask(ctx, svc.Audit, cron.OptionsFromConfig(), log.Named("cleanup"))
	}

	if config.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ZapLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORSMiddleware())

	signLimiter := middleware.NewIPRateLimiter(config.SignRateLimit, config.SignRateBurst)
	signLimiter.StartSweeper(ctx, time.Minute)
	routes.RegisterRoutes(router, handlers.New(svc, repos), signLimiter)

	srv := &http.Server{
		Addr:              ":" + config.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting API server", zap.String("addr", srv.Addr), zap.String("env", config.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
