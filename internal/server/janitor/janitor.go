// Package janitor periodically purges expired refresh and reset tokens.
package janitor

import (
	"context"

	"github.com/dmitrijs2005/moviedeck/internal/logging"
	"github.com/robfig/cron/v3"
)

// Purger deletes expired credentials and reports how many were removed.
type Purger interface {
	PurgeExpired(ctx context.Context) (refresh, reset int64, err error)
}

type Janitor struct {
	schedule string
	purger   Purger
	logger   logging.Logger
}

func New(schedule string, p Purger, l logging.Logger) *Janitor {
	return &Janitor{schedule: schedule, purger: p, logger: l.With("module", "janitor")}
}

// Sweep runs one purge.
func (j *Janitor) Sweep(ctx context.Context) {
	refresh, reset, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		j.logger.Error(ctx, "token purge failed", "error", err)
		return
	}
	if refresh > 0 || reset > 0 {
		j.logger.Info(ctx, "expired tokens purged", "refresh_tokens", refresh, "reset_tokens", reset)
	}
}

// Run schedules Sweep until ctx is cancelled. An invalid schedule is
// returned immediately.
func (j *Janitor) Run(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(j.schedule, func() { j.Sweep(ctx) }); err != nil {
		return err
	}

	j.logger.Info(ctx, "Starting janitor", "schedule", j.schedule)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
