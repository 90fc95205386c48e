// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule runs a job on a cron schedule.
package schedule

import (
	"context"
	"time"

	"github.com/gorhill/cronexpr"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultCron runs the digest at 09:00 on weekdays.
const DefaultCron = "0 9 * * 1-5"

// Schedule is a parsed cron expression.
type Schedule struct {
	spec string
	expr *cronexpr.Expression
}

// Parse parses a standard five-field cron expression (seconds and years
// fields are also accepted).
func Parse(spec string) (*Schedule, error) {
	if spec == "" {
		spec = DefaultCron
	}
	expr, err := cronexpr.Parse(spec)
	if err != nil {
		return nil, eris.Wrapf(err, "schedule: parse %q", spec)
	}
	return &Schedule{spec: spec, expr: expr}, nil
}

// String returns the expression the schedule was parsed from.
func (s *Schedule) String() string { return s.spec }

// Next returns the first activation strictly after from. The zero time
// means the expression never fires again.
func (s *Schedule) Next(from time.Time) time.Time {
	return s.expr.Next(from)
}

// Runner calls Job at every activation of Schedule until the context is
// cancelled. Runs never overlap: the next activation is computed after the
// job returns.
type Runner struct {
	Schedule *Schedule
	Job      func(ctx context.Context) error

	// Now and After are the clock; tests replace them.
	Now   func() time.Time
	After func(time.Duration) <-chan time.Time
}

// Run blocks until ctx is cancelled, returning nil, or until the schedule
// is exhausted, returning an error. Job errors are logged and do not stop
// the runner.
func (r *Runner) Run(ctx context.Context) error {
	now := r.Now
	if now == nil {
		now = time.Now
	}
	after := r.After
	if after == nil {
		after = time.After
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		current := now()
		next := r.Schedule.Next(current)
		if next.IsZero() {
			return eris.Errorf("schedule: %q has no future activations", r.Schedule.spec)
		}
		zap.L().Info("schedule: next run", zap.Time("at", next))

		select {
		case <-ctx.Done():
			return nil
		case <-after(next.Sub(current)):
		}

		if err := r.Job(ctx); err != nil {
			zap.L().Error("schedule: job failed", zap.Error(err))
		}
	}
}
