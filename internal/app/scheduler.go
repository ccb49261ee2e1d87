package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
	"github.com/dcohenb/olympics-scrapper/internal/domain/tally"
	"github.com/dcohenb/olympics-scrapper/pkg/logger"
	"github.com/dcohenb/olympics-scrapper/pkg/metrics"
)

// Refresh timing. The jitter spreads scrapes so the upstream never sees
// a fixed cadence; failures retry on half the delay, floored so a
// flapping feed cannot spin the loop.
const (
	refreshInterval = 5 * time.Minute
	refreshJitter   = 10 * time.Second
	minRetryDelay   = 10 * time.Second
)

// nextDelay computes the wait before the next refresh iteration.
func nextDelay(failed bool) time.Duration {
	d := refreshInterval + time.Duration(rand.Int63n(int64(refreshJitter)))
	if failed {
		d /= 2
	}
	if d < minRetryDelay {
		d = minRetryDelay
	}
	return d
}

// runRefreshLoop drives periodic refreshes until ctx is canceled. One
// refresh is in flight at a time; the next tick is scheduled only after
// the current iteration finishes. Failures are logged and shorten the
// delay, never kill the loop.
func (s *Service) runRefreshLoop(ctx context.Context) {
	defer close(s.done)

	// Fire the first refresh immediately.
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		start := time.Now()
		err := s.refresh(ctx)
		metrics.RecordRefresh(err == nil, time.Since(start))

		delay := nextDelay(err != nil)
		if err != nil {
			s.logger.Error(ctx, "refresh failed; keeping previous snapshot",
				logger.Error(err),
				logger.Duration("retryIn", delay),
			)
		} else {
			s.logger.Info(ctx, "leaderboard refreshed",
				logger.Int("countries", s.snapshot.Load().TotalCountries),
				logger.Duration("nextIn", delay),
			)
		}

		s.scheduleNext(time.Now().Add(delay))
		timer.Reset(delay)
	}
}

// refresh fetches the tally and replaces the snapshot wholesale. On
// error the previously published snapshot stays untouched.
func (s *Service) refresh(ctx context.Context) error {
	entries, err := s.feed.FetchTally(ctx)
	if err != nil {
		return err
	}

	rows := tally.BuildLeaderboard(entries, s.table.All())
	s.snapshot.Store(&model.Snapshot{
		LastUpdated: time.Now(),
		// NextUpdate is advanced by scheduleNext once the delay for
		// this iteration is known.
		NextUpdate:     s.snapshot.Load().NextUpdate,
		TotalCountries: len(rows),
		Leaderboard:    rows,
	})
	return nil
}

// scheduleNext advances the snapshot's timing field. Only the scheduler
// writes the snapshot, so a copy-and-swap needs no lock.
func (s *Service) scheduleNext(at time.Time) {
	next := *s.snapshot.Load()
	next.NextUpdate = at
	s.snapshot.Store(&next)
	metrics.UpdateSnapshot(next.LastUpdated, at, next.TotalCountries)
}
