// Package verify orchestrates a verification call: normalize the phone
// number, gather candidate records from the directory sources, score the
// claimed name against them, and emit an audit event. All matching logic
// lives in the scoring engine; this package is plumbing around it.
package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"veriname/internal/audit"
	"veriname/internal/scoring"
	"veriname/internal/verify/metrics"
	"veriname/pkg/phone"
)

// DirectoryGatherer fetches candidate records for a phone number from all
// configured sources.
type DirectoryGatherer interface {
	Gather(ctx context.Context, phone string) ([]scoring.CandidateRecord, error)
}

// Service runs verifications.
type Service struct {
	engine    *scoring.Engine
	directory DirectoryGatherer
	logger    *slog.Logger
	metrics   *metrics.Metrics
	auditOut  chan<- audit.Event
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics wires verification metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithAuditChannel wires the audit event channel. Emission is non-blocking;
// a full channel drops the event with a warning rather than stalling
// verification.
func WithAuditChannel(out chan<- audit.Event) Option {
	return func(s *Service) { s.auditOut = out }
}

// NewService constructs the verification service.
func NewService(engine *scoring.Engine, directory DirectoryGatherer, logger *slog.Logger, opts ...Option) (*Service, error) {
	if engine == nil {
		return nil, fmt.Errorf("scoring engine is required")
	}
	if directory == nil {
		return nil, fmt.Errorf("directory service is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	s := &Service{engine: engine, directory: directory, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Verify scores a claimed name against every directory source that knows
// the phone number.
func (s *Service) Verify(ctx context.Context, rawPhone, claimedName string) (*scoring.ScoreBreakdown, error) {
	start := time.Now()

	normalized, err := phone.Normalize(rawPhone)
	if err != nil {
		return nil, fmt.Errorf("normalize phone: %w", err)
	}

	candidates, err := s.directory.Gather(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("gather directory records: %w", err)
	}

	breakdown, err := s.engine.ScoreMulti(ctx, claimedName, candidates)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveScore(breakdown.FinalScore)
	s.metrics.IncrementTier(string(breakdown.RiskTier))
	s.metrics.ObserveVerifyLatency(time.Since(start))

	s.emitAudit(ctx, normalized, claimedName, breakdown)

	s.logger.InfoContext(ctx, "verification scored",
		"phone", audit.MaskPhone(normalized),
		"sources", len(breakdown.PerSource),
		"final_score", breakdown.FinalScore,
		"risk_tier", breakdown.RiskTier,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return breakdown, nil
}

// Score runs the engine against a single caller-supplied candidate record,
// for integrations that already hold directory data.
func (s *Service) Score(ctx context.Context, claimedName string, candidate scoring.CandidateRecord) (*scoring.ScoreBreakdown, error) {
	breakdown, err := s.engine.ScoreMatch(ctx, claimedName, candidate)
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveScore(breakdown.FinalScore)
	s.metrics.IncrementTier(string(breakdown.RiskTier))

	return breakdown, nil
}

func (s *Service) emitAudit(ctx context.Context, normalizedPhone, claimedName string, b *scoring.ScoreBreakdown) {
	if s.auditOut == nil {
		return
	}

	sources := make([]scoring.SourceID, 0, len(b.PerSource))
	for _, o := range b.PerSource {
		sources = append(sources, o.Source)
	}

	event := audit.Event{
		ID:          uuid.NewString(),
		At:          time.Now().UTC(),
		Phone:       audit.MaskPhone(normalizedPhone),
		ClaimedName: audit.MaskName(claimedName),
		FinalScore:  b.FinalScore,
		RiskTier:    b.RiskTier,
		Sources:     sources,
	}

	select {
	case s.auditOut <- event:
	default:
		s.logger.WarnContext(ctx, "audit channel full, event dropped", "event_id", event.ID)
	}
}
