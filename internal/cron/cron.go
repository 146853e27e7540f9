package cron

import (
	"context"
	"time"

	"github.com/linskybing/projectsign/internal/config"
	"go.uber.org/zap"
)

// Cleaner is the retention work run on every tick.
type Cleaner interface {
	CleanupOldLogs(days int) error
	CleanupStaleTokens(days int) (int64, error)
}

type Options struct {
	Interval           time.Duration
	AuditRetentionDays int
	TokenRetentionDays int
}

// OptionsFromConfig reads the retention settings loaded by config.LoadConfig.
func OptionsFromConfig() Options {
	return Options{
		Interval:           config.CleanupInterval,
		AuditRetentionDays: config.AuditRetentionDays,
		TokenRetentionDays: config.TokenRetentionDays,
	}
}

// RunOnce purges audit logs and signing tokens past their retention.
func RunOnce(c Cleaner, opts Options, log *zap.Logger) {
	if opts.AuditRetentionDays > 0 {
		if err := c.CleanupOldLogs(opts.AuditRetentionDays); err != nil {
			log.Error("audit log cleanup failed", zap.Error(err))
		} else {
			log.Info("audit log cleanup completed", zap.Int("retention_days", opts.AuditRetentionDays))
		}
	}
	if opts.TokenRetentionDays > 0 {
		n, err := c.CleanupStaleTokens(opts.TokenRetentionDays)
		if err != nil {
			log.Error("signing token cleanup failed", zap.Error(err))
		} else {
			log.Info("signing token cleanup completed", zap.Int64("deleted", n))
		}
	}
}

// StartCleanupTask runs RunOnce immediately and then every Interval until
// ctx is cancelled. The returned channel closes when the loop exits.
func StartCleanupTask(ctx context.Context, c Cleaner, opts Options, log *zap.Logger) <-chan struct{} {
	if opts.Interval <= 0 {
		opts.Interval = 24 * time.Hour
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		log.Info("starting background cleanup task",
			zap.Duration("interval", opts.Interval),
			zap.Int("audit_retention_days", opts.AuditRetentionDays),
			zap.Int("token_retention_days", opts.TokenRetentionDays))

		RunOnce(c, opts, log)

		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				RunOnce(c, opts, log)
			}
		}
	}()
	return done
}
