// Package cleanup periodically purges rows with no remaining value:
// expired or used magic-link tokens and aged health-check logs.
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/holiday-promo/api/internal/repository"
	"github.com/robfig/cron/v3"
)

type Cleaner struct {
	users        repository.UserRepository
	healthChecks repository.HealthCheckRepository
	logger       *slog.Logger
	schedule     cron.Schedule
	logRetention time.Duration
}

// NewCleaner parses the cron expression up front so a bad config fails the
// process at startup rather than silently never running.
func NewCleaner(
	users repository.UserRepository,
	healthChecks repository.HealthCheckRepository,
	logger *slog.Logger,
	cronExpr string,
	logRetention time.Duration,
) (*Cleaner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse cleanup schedule %q: %w", cronExpr, err)
	}

	return &Cleaner{
		users:        users,
		healthChecks: healthChecks,
		logger:       logger.With("component", "cleanup"),
		schedule:     schedule,
		logRetention: logRetention,
	}, nil
}

// Start blocks until ctx is cancelled, running one cleanup pass at every
// schedule firing.
func (c *Cleaner) Start(ctx context.Context) {
	c.logger.Info("cleanup started", "log_retention", c.logRetention)

	for {
		next := c.schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			c.logger.Info("cleanup shut down")
			return
		case <-timer.C:
			c.runOnce(ctx)
		}
	}
}

func (c *Cleaner) runOnce(ctx context.Context) {
	tokens, err := c.users.DeleteExpiredMagicTokens(ctx)
	if err != nil {
		c.logger.Error("purge magic tokens", "error", err)
	}

	cutoff := time.Now().Add(-c.logRetention)
	logs, err := c.healthChecks.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		c.logger.Error("purge health check logs", "error", err)
	}

	if tokens > 0 || logs > 0 {
		c.logger.Info("cleanup pass finished", "magic_tokens", tokens, "health_check_logs", logs)
	}
}
