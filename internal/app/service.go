// Package app provides the core service: the published snapshot cache,
// the background refresh scheduler and the on-demand detail queries the
// HTTP API depends on.
package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dcohenb/olympics-scrapper/internal/adapters/repository"
	"github.com/dcohenb/olympics-scrapper/internal/countries"
	"github.com/dcohenb/olympics-scrapper/internal/domain/detail"
	"github.com/dcohenb/olympics-scrapper/internal/domain/model"
	"github.com/dcohenb/olympics-scrapper/pkg/logger"
	"github.com/dcohenb/olympics-scrapper/pkg/metrics"
)

// Feed is the upstream client surface the service depends on.
type Feed interface {
	FetchTally(ctx context.Context) ([]model.TallyEntry, error)
	FetchCountryDetail(ctx context.Context, noc string) (*model.CountryMedals, error)
}

// Service owns the published snapshot and drives the refresh loop. The
// snapshot is the only shared mutable state; the scheduler is its sole
// writer and replaces it wholesale, so readers never need a lock.
type Service struct {
	mu sync.Mutex

	table   *countries.Table
	feed    Feed
	store   repository.Store
	builder *detail.Builder

	snapshot atomic.Pointer[model.Snapshot]

	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service around its collaborators. The empty default
// snapshot is published immediately so readers always see a complete
// shape, even before the first refresh.
func New(table *countries.Table, feed Feed, store repository.Store, opts ...Option) *Service {
	s := &Service{
		table:   table,
		feed:    feed,
		store:   store,
		builder: detail.NewBuilder(table, feed, store),
		done:    make(chan struct{}),
	}
	empty := model.EmptySnapshot()
	s.snapshot.Store(&empty)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the background refresh loop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	go s.runRefreshLoop(loopCtx)

	s.started = true
	s.logger.Info(ctx, "medals service started",
		logger.Int("countries", s.table.Len()),
		logger.Duration("refreshInterval", refreshInterval),
	)
	return nil
}

// Stop cancels the refresh loop and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.cancel()
	<-s.done
	s.started = false
	s.logger.Info(context.Background(), "medals service stopped")
}

// Snapshot returns the current published snapshot.
func (s *Service) Snapshot() model.Snapshot {
	return *s.snapshot.Load()
}

// Countries returns the static country table.
func (s *Service) Countries() []model.Country {
	return s.table.All()
}

// CountryDetail computes per-country medal detail fresh for each call.
// Errors propagate to the caller; they never affect the cache.
func (s *Service) CountryDetail(ctx context.Context, noc string) ([]model.MedalDetailEntry, error) {
	entries, err := s.builder.Build(ctx, noc)
	metrics.RecordDetailRequest(detailResult(err))
	return entries, err
}

// GetStats returns service statistics for the stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	snap := s.Snapshot()
	return map[string]interface{}{
		"totalCountries": snap.TotalCountries,
		"knownCountries": s.table.Len(),
		"lastUpdated":    snap.LastUpdated,
		"nextUpdate":     snap.NextUpdate,
		"snapshotAge":    s.age(time.Now()).String(),
	}
}

func detailResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, detail.ErrUnknownNOC):
		return "unknown_noc"
	case errors.Is(err, detail.ErrReferenceLookup):
		return "reference_error"
	default:
		return "upstream_error"
	}
}

// age reports how stale the published snapshot is. Used by stats.
func (s *Service) age(now time.Time) time.Duration {
	last := s.snapshot.Load().LastUpdated
	if last.IsZero() {
		return 0
	}
	return now.Sub(last)
}
