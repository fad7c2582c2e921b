// Package scoring implements the explainable name-match engine used for
// phone-directory identity verification. It compares a claimed name against
// candidate directory records through a fixed cascade of strategies (exact,
// nickname, transliteration, fuzzy), combines per-component scores under
// configured weights, classifies the result into a risk tier, and renders a
// deterministic audit explanation.
//
// Each scoring call is a pure function of its inputs plus a config
// snapshot: the engine holds no mutable state, performs no I/O of its own,
// and is safe for concurrent use. Nickname lookups, transliteration tables,
// and config loading are injected capabilities.
package scoring

import (
	"context"
	"fmt"
	"math"
)

// agreementThreshold is the per-source final score at or above which a
// source counts toward the cross-source agreement bonus.
const agreementThreshold = 60

// Engine scores claimed names against directory candidate records.
type Engine struct {
	config    ConfigSource
	nicknames NicknameResolver
	translit  Transliterator
}

// Option customizes an Engine.
type Option func(*Engine)

// WithNicknameResolver wires the nickname equivalence store. Without it the
// nickname strategy never fires.
func WithNicknameResolver(r NicknameResolver) Option {
	return func(e *Engine) { e.nicknames = r }
}

// WithTransliterator wires the foreign-script-to-Hebrew transliterator.
// Without it the transliteration strategies never fire and the cascade
// degrades to direct fuzzy matching.
func WithTransliterator(t Transliterator) Option {
	return func(e *Engine) { e.translit = t }
}

// NewEngine constructs a scoring engine. The config source is required;
// resolver and transliterator are optional capabilities.
func NewEngine(config ConfigSource, opts ...Option) (*Engine, error) {
	if config == nil {
		return nil, fmt.Errorf("config source is required")
	}
	e := &Engine{config: config}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ScoreMatch scores a claimed full name against one candidate record and
// returns the full breakdown. Missing name data on either side is not an
// error: the affected component resolves to no_match and the fact is
// recorded in the explanation. The only error path is an invalid or
// unloadable scoring config.
func (e *Engine) ScoreMatch(ctx context.Context, claimedFullName string, cand CandidateRecord) (*ScoreBreakdown, error) {
	cfg, err := e.config.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return e.scoreWith(ctx, &cfg, claimedFullName, cand), nil
}

// ScoreMulti scores a claimed full name against one candidate record per
// directory source and aggregates the outcomes. Sources with no usable
// name data are excluded rather than scored as zero; zero usable sources
// yields a defined zero-confidence result. The config is snapshotted once
// so a concurrent config update can never tear a single call.
func (e *Engine) ScoreMulti(ctx context.Context, claimedFullName string, cands []CandidateRecord) (*ScoreBreakdown, error) {
	cfg, err := e.config.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}

	claimed := SplitClaimedName(claimedFullName)

	var perSource []*ScoreBreakdown
	for _, cand := range cands {
		if cand.Empty() {
			continue
		}
		perSource = append(perSource, e.scoreWith(ctx, &cfg, claimedFullName, cand))
	}

	if len(perSource) == 0 {
		return &ScoreBreakdown{
			LastNameResult:  MatchResult{Strategy: StrategyNoMatch, Detail: "no directory data"},
			FirstNameResult: MatchResult{Strategy: StrategyNoMatch, Detail: "no directory data"},
			Adjustments:     []Adjustment{},
			FinalScore:      0,
			RiskTier:        cfg.ClassifyScore(0),
			Explanation:     NoDataExplanation,
		}, nil
	}

	best := perSource[0]
	agreeing := 0
	outcomes := make([]SourceOutcome, 0, len(perSource))
	for _, b := range perSource {
		if b.FinalScore > best.FinalScore {
			best = b
		}
		if b.FinalScore >= agreementThreshold {
			agreeing++
		}
		outcomes = append(outcomes, SourceOutcome{
			Source:     b.Source,
			FinalScore: b.FinalScore,
			RiskTier:   b.RiskTier,
		})
	}

	// The aggregation rule is the maximum of the per-source final scores,
	// plus the agreement bonus exactly once when at least two sources
	// independently cleared the agreement threshold before aggregation.
	agreement := Adjustment{Label: AdjustCrossSourceAgreement}
	if agreeing >= 2 {
		agreement.Delta = cfg.Bonuses.CrossSourceAgreement
	}
	final := clampScore(int(math.Round(float64(best.FinalScore) + float64(agreement.Delta))))
	tier := cfg.ClassifyScore(final)

	return &ScoreBreakdown{
		Source:          best.Source,
		LastNameResult:  best.LastNameResult,
		FirstNameResult: best.FirstNameResult,
		BaseScore:       float64(best.FinalScore),
		Adjustments:     []Adjustment{agreement},
		FinalScore:      final,
		RiskTier:        tier,
		Explanation:     buildMultiExplanation(claimed, outcomes, best.Source, agreement, final, tier),
		PerSource:       outcomes,
	}, nil
}

// scoreWith runs the single-candidate pipeline against an already
// snapshotted config.
func (e *Engine) scoreWith(ctx context.Context, cfg *Config, claimedFullName string, cand CandidateRecord) *ScoreBreakdown {
	claimed := SplitClaimedName(claimedFullName)
	candGiven, candSurname := normalizeCandidate(cand)

	last := e.matchComponent(ctx, cfg, claimed.Surname, candSurname, false)
	first := e.matchComponent(ctx, cfg, claimed.GivenName, candGiven, true)

	base, adjustments, final := combine(cfg, last, first)

	b := &ScoreBreakdown{
		Source:          cand.Source,
		LastNameResult:  last,
		FirstNameResult: first,
		BaseScore:       base,
		Adjustments:     adjustments,
		FinalScore:      final,
		RiskTier:        cfg.ClassifyScore(final),
	}
	b.Explanation = buildExplanation(cfg, claimed, cand, b)
	return b
}
