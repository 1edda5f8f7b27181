package jobs

import (
	"context"
	"fmt"
	"time"

	"juris_dashboard_go/config"
	"juris_dashboard_go/services"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// jobTimeout bounds a single run of any scheduled job
const jobTimeout = 2 * time.Minute

// CollectionStore is the part of services.Store the jobs need
type CollectionStore interface {
	Current() services.Collection
	Reload(ctx context.Context) (services.Collection, error)
}

// StartScheduler registers the reload and digest jobs and starts the cron
// runner. A job with an empty spec is not scheduled. Call Stop on the
// returned runner on shutdown.
func StartScheduler(store CollectionStore, cfg *config.Config, logger *zap.SugaredLogger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	loc, err := time.LoadLocation(cfg.CronTimezone)
	if err != nil {
		logger.Warnw("invalid cron timezone, using UTC", "timezone", cfg.CronTimezone, "error", err)
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cronLogger{logger})))

	if cfg.ReloadCron != "" {
		if _, err := c.AddFunc(cfg.ReloadCron, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			ReloadCurrentSource(ctx, store, logger)
		}); err != nil {
			return nil, fmt.Errorf("invalid RELOAD_CRON %q: %w", cfg.ReloadCron, err)
		}
	}

	if cfg.DigestCron != "" {
		if _, err := c.AddFunc(cfg.DigestCron, func() {
			if err := SendEscalationDigest(store, cfg, logger, time.Now()); err != nil {
				logger.Errorw("escalation digest failed", "error", err)
			}
		}); err != nil {
			return nil, fmt.Errorf("invalid DIGEST_CRON %q: %w", cfg.DigestCron, err)
		}
	}

	c.Start()
	logger.Infow("scheduler started",
		"reload", cfg.ReloadCron,
		"digest", cfg.DigestCron,
		"timezone", loc.String(),
		"jobs", len(c.Entries()),
	)
	return c, nil
}

// ReloadCurrentSource reloads the active data source. A store with no
// source selected yet is skipped.
func ReloadCurrentSource(ctx context.Context, store CollectionStore, logger *zap.SugaredLogger) {
	if store.Current().Source == "" {
		logger.Debugw("reload skipped, no source selected")
		return
	}
	c, err := store.Reload(ctx)
	if err != nil {
		logger.Errorw("scheduled reload failed", "error", err)
		return
	}
	logger.Infow("scheduled reload completed", "source", c.Source, "count", len(c.Records), "fallback", c.Fallback)
}

// SendEscalationDigest emails the critical alerts of the active collection
// to the configured recipients
func SendEscalationDigest(store CollectionStore, cfg *config.Config, logger *zap.SugaredLogger, now time.Time) error {
	if len(cfg.EscalationRecipients) == 0 {
		logger.Debugw("digest skipped, no recipients configured")
		return nil
	}

	current := store.Current()
	email, err := services.BuildEscalationDigest(current.Alerts, current.Source, cfg.DigestLanguage, cfg.EscalationRecipients, now)
	if err != nil {
		return err
	}
	if email == nil {
		logger.Infow("digest skipped, no critical alerts", "source", current.Source)
		return nil
	}

	if err := services.SendEmail(cfg, email, logger); err != nil {
		return fmt.Errorf("sending digest: %w", err)
	}
	logger.Infow("escalation digest sent", "source", current.Source, "recipients", len(email.To))
	return nil
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	logger *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
