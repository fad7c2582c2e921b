package directory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"veriname/internal/directory/metrics"
	"veriname/internal/scoring"
)

// gatherTimeout bounds the whole fan-out; a slow source must not stall
// verification indefinitely.
const gatherTimeout = 5 * time.Second

// Service fans a phone lookup out across all configured providers,
// consulting the cache first. A failing source is logged and skipped so
// the remaining sources can still be scored.
type Service struct {
	providers []Provider
	cache     Cache
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// Option customizes a Service.
type Option func(*Service)

// WithCache wires a lookup cache.
func WithCache(cache Cache) Option {
	return func(s *Service) { s.cache = cache }
}

// WithMetrics wires lookup metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService constructs the lookup service. At least one provider is
// required.
func NewService(providers []Provider, logger *slog.Logger, opts ...Option) (*Service, error) {
	if len(providers) == 0 {
		return nil, fmt.Errorf("at least one directory provider is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	s := &Service{providers: providers, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Gather looks the phone number up in every source in parallel and returns
// the records that carried name data. Sources that fail or know nothing
// about the number are simply absent from the result.
func (s *Service) Gather(ctx context.Context, phone string) ([]scoring.CandidateRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, gatherTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	var records []scoring.CandidateRecord

	for _, p := range s.providers {
		g.Go(func() error {
			rec := s.lookupOne(ctx, p, phone)
			if rec == nil {
				return nil
			}
			mu.Lock()
			records = append(records, *rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) lookupOne(ctx context.Context, p Provider, phone string) *scoring.CandidateRecord {
	source := string(p.ID())

	if s.cache != nil {
		rec, err := s.cache.Get(ctx, p.ID(), phone)
		switch {
		case err == nil:
			s.metrics.IncrementCache(source, "hit")
			if rec.Empty() {
				return nil // cached negative result
			}
			return rec
		case errors.Is(err, ErrCacheMiss):
			s.metrics.IncrementCache(source, "miss")
		default:
			s.logger.WarnContext(ctx, "directory cache read failed",
				"source", source,
				"error", err,
			)
		}
	}

	start := time.Now()
	rec, err := p.Lookup(ctx, phone)
	s.metrics.ObserveLookup(source, time.Since(start))
	if err != nil {
		s.metrics.IncrementLookup(source, "error")
		s.logger.WarnContext(ctx, "directory lookup failed",
			"source", source,
			"error", err,
		)
		return nil
	}

	if s.cache != nil {
		cached := scoring.CandidateRecord{Source: p.ID()}
		if rec != nil {
			cached = *rec
		}
		if err := s.cache.Set(ctx, p.ID(), phone, cached); err != nil {
			s.logger.WarnContext(ctx, "directory cache write failed",
				"source", source,
				"error", err,
			)
		}
	}

	if rec == nil || rec.Empty() {
		s.metrics.IncrementLookup(source, "miss")
		return nil
	}
	s.metrics.IncrementLookup(source, "hit")
	return rec
}
