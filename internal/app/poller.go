package app

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/clientdesk/clientdesk/internal/listdetail"
)

const (
	defaultPollInterval = 30 * time.Second
	maxBackoff          = 5 * time.Minute
)

// Reloader is the part of a list-detail Context the refresher drives.
type Reloader interface {
	ReloadList()
	Health() listdetail.Health
}

// Refresher reloads the current list page at a fixed cadence, backing off
// exponentially while loads keep failing.
type Refresher struct {
	target   Reloader
	interval time.Duration
	clock    clockwork.Clock
	log      zerolog.Logger
}

// NewRefresher builds a refresher. A nil clock uses the real clock.
func NewRefresher(target Reloader, interval time.Duration, clock clockwork.Clock, logger zerolog.Logger) *Refresher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Refresher{target: target, interval: interval, clock: clock, log: logger}
}

// Run blocks until ctx is cancelled. Ticks are skipped while the list is
// already loading, the user is mid-search, or nothing has been loaded yet.
func (r *Refresher) Run(ctx context.Context) error {
	failures := 0
	for {
		wait := calculateBackoff(failures, r.interval)
		select {
		case <-ctx.Done():
			return nil
		case <-r.clock.After(wait):
		}

		h := r.target.Health()
		if h.ListLoading || h.SearchPending || (!h.HasList && h.ListFailures == 0) {
			continue
		}
		r.target.ReloadList()

		next := r.target.Health().ListFailures
		if next > 0 {
			r.log.Warn().Int("failures", next).Dur("retry_in", calculateBackoff(next, r.interval)).Msg("background refresh failed")
		} else if failures > 0 {
			r.log.Info().Msg("background refresh recovered")
		}
		failures = next
	}
}

// calculateBackoff returns the wait before the next refresh: interval after a
// success, doubling per consecutive failure up to maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 || interval >= maxBackoff {
		return interval
	}
	b := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(interval),
		backoff.WithRandomizationFactor(0),
		backoff.WithMultiplier(2),
		backoff.WithMaxInterval(maxBackoff),
		backoff.WithMaxElapsedTime(0),
	)
	wait := b.NextBackOff()
	for range failures {
		wait = b.NextBackOff()
	}
	return wait
}
