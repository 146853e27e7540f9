// Command scheduler runs the retention cleanup outside the API process.
// Deploy it with CLEANUP_IN_API=false on the API replicas.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/linskybing/projectsign/internal/application"
	"github.com/linskybing/projectsign/internal/config"
	"github.com/linskybing/projectsign/internal/config/db"
	"github.com/linskybing/projectsign/internal/cron"
	"github.com/linskybing/projectsign/internal/repository"
	"github.com/linskybing/projectsign/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	once := flag.Bool("once", false, "run a single cleanup pass and exit")
	flag.Parse()

	log, err := logger.NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	config.LoadConfig()

	if err := db.Init(); err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	auditSvc := application.NewAuditService(repository.NewRepositories(db.DB))
	opts := cron.OptionsFromConfig()

	if *once {
		cron.RunOnce(auditSvc, opts, log)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	<-cron.StartCleanupTask(ctx, auditSvc, opts, log)
	log.Info("scheduler stopped")
}
