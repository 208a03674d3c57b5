// Package sweeper reclaims abandoned signups: records that requested an
// OTP, never verified it, and whose code expired long ago.
package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/udanya23/job-portal/internal/metrics"
	"github.com/udanya23/job-portal/internal/repository"
)

type Sweeper struct {
	users    repository.UserRepository
	logger   *slog.Logger
	schedule cron.Schedule
	retain   time.Duration
}

// New parses the cron expression up front so a bad schedule fails at
// startup, not on the first cycle.
func New(users repository.UserRepository, logger *slog.Logger, cronExpr string, retain time.Duration) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", cronExpr, err)
	}
	return &Sweeper{
		users:    users,
		logger:   logger.With("component", "sweeper"),
		schedule: schedule,
		retain:   retain,
	}, nil
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("sweeper started", "retain", s.retain)

	for {
		timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("sweeper shut down")
			return
		case <-timer.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep removes pending users whose OTP expired more than the retain
// window ago. The window leaves room for a slow user to re-request a code
// before the placeholder disappears.
func (s *Sweeper) Sweep(ctx context.Context) {
	start := time.Now()
	cutoff := start.Add(-s.retain)

	removed, err := s.users.DeleteExpiredPending(ctx, cutoff)
	if err != nil {
		s.logger.Error("sweep expired signups", "error", err)
		return
	}

	metrics.SweeperCycleDuration.Observe(time.Since(start).Seconds())
	if removed > 0 {
		metrics.SweeperRemovedTotal.Add(float64(removed))
		s.logger.Info("swept abandoned signups", "removed", removed)
	}
}
