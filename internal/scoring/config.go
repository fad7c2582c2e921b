package scoring

import (
	"fmt"
	"math"
	"sort"
)

// weightTolerance bounds how far the two component weights may drift from
// summing to exactly 1.0 before the config is rejected.
const weightTolerance = 0.01

// Weights splits scoring influence between the two name components.
type Weights struct {
	LastName  float64 `json:"last_name" yaml:"last_name"`
	FirstName float64 `json:"first_name" yaml:"first_name"`
}

// FuzzyThresholds are the similarity cutoffs, in percent, that separate the
// fuzzy cascade rungs. High > Medium > Low, all in (0,100].
type FuzzyThresholds struct {
	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Bonuses are score increases applied after the weighted base.
type Bonuses struct {
	BothExact            int `json:"both_exact" yaml:"both_exact"`
	CrossSourceAgreement int `json:"cross_source_agreement" yaml:"cross_source_agreement"`
}

// Penalties are score decreases applied after the weighted base. Values are
// magnitudes; a negative value is treated the same as its absolute value.
type Penalties struct {
	FirstOnlyMatch int `json:"first_only_match" yaml:"first_only_match"`
}

// Config is the externally supplied scoring configuration. It is a plain
// value: snapshot once per call, never mutated by the engine, so operators
// can tune it without restarting the host process.
type Config struct {
	Weights         Weights          `json:"weights" yaml:"weights"`
	MatchScores     map[Strategy]int `json:"match_scores" yaml:"match_scores"`
	FuzzyThresholds FuzzyThresholds  `json:"fuzzy_thresholds" yaml:"fuzzy_thresholds"`
	TierBoundaries  map[Tier]int     `json:"tier_boundaries" yaml:"tier_boundaries"`
	Bonuses         Bonuses          `json:"bonuses" yaml:"bonuses"`
	Penalties       Penalties        `json:"penalties" yaml:"penalties"`
}

// DefaultConfig returns the calibrated production defaults.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{LastName: 0.65, FirstName: 0.35},
		MatchScores: map[Strategy]int{
			StrategyExact:         100,
			StrategyNickname:      90,
			StrategyTranslitExact: 95,
			StrategyTranslitFuzzy: 80,
			StrategyDirectFuzzy:   75,
			StrategyMediumFuzzy:   50,
			StrategyLowFuzzy:      25,
			StrategyNoMatch:       0,
		},
		FuzzyThresholds: FuzzyThresholds{High: 85, Medium: 65, Low: 45},
		TierBoundaries: map[Tier]int{
			TierHigh:    85,
			TierMedium:  60,
			TierLow:     35,
			TierVeryLow: 0,
		},
		Bonuses:   Bonuses{BothExact: 5, CrossSourceAgreement: 5},
		Penalties: Penalties{FirstOnlyMatch: 10},
	}
}

// Validate checks structural and numeric soundness. An invalid config is a
// hard failure: scoring with silently-wrong weights would produce
// misleading risk decisions, so the engine refuses to run on one.
func (c Config) Validate() error {
	if sum := c.Weights.LastName + c.Weights.FirstName; math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.4f", sum)
	}
	if c.Weights.LastName < 0 || c.Weights.FirstName < 0 {
		return fmt.Errorf("weights must be non-negative")
	}

	if len(c.MatchScores) == 0 {
		return fmt.Errorf("match_scores is required")
	}
	for _, s := range Strategies {
		score, ok := c.MatchScores[s]
		if !ok {
			return fmt.Errorf("match_scores missing strategy %q", s)
		}
		if score < 0 || score > 100 {
			return fmt.Errorf("match_scores[%s] out of range [0,100]: %d", s, score)
		}
	}

	ft := c.FuzzyThresholds
	if !(ft.High > ft.Medium && ft.Medium > ft.Low) {
		return fmt.Errorf("fuzzy_thresholds must satisfy high > medium > low, got %d/%d/%d",
			ft.High, ft.Medium, ft.Low)
	}
	if ft.Low <= 0 || ft.High > 100 {
		return fmt.Errorf("fuzzy_thresholds must lie in (0,100], got %d/%d/%d",
			ft.High, ft.Medium, ft.Low)
	}

	if len(c.TierBoundaries) == 0 {
		return fmt.Errorf("tier_boundaries is required")
	}
	seenZero := false
	seenMin := map[int]Tier{}
	for tier, min := range c.TierBoundaries {
		if min < 0 || min > 100 {
			return fmt.Errorf("tier_boundaries[%s] out of range [0,100]: %d", tier, min)
		}
		if prev, dup := seenMin[min]; dup {
			return fmt.Errorf("tier_boundaries not monotonic: %s and %s share minimum %d", prev, tier, min)
		}
		seenMin[min] = tier
		if min == 0 {
			seenZero = true
		}
	}
	if !seenZero {
		return fmt.Errorf("tier_boundaries not exhaustive: no tier with minimum 0")
	}

	if c.Bonuses.BothExact < 0 || c.Bonuses.CrossSourceAgreement < 0 {
		return fmt.Errorf("bonuses must be non-negative")
	}

	return nil
}

// tiersDescending returns the configured tiers ordered by minimum score,
// highest first, for classification.
func (c Config) tiersDescending() []Tier {
	tiers := make([]Tier, 0, len(c.TierBoundaries))
	for t := range c.TierBoundaries {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool {
		return c.TierBoundaries[tiers[i]] > c.TierBoundaries[tiers[j]]
	})
	return tiers
}

// ClassifyScore maps a final score to the first tier, in descending
// boundary order, whose minimum it meets. Validation guarantees a tier
// with minimum 0, so classification never fails.
func (c Config) ClassifyScore(score int) Tier {
	for _, t := range c.tiersDescending() {
		if score >= c.TierBoundaries[t] {
			return t
		}
	}
	// Unreachable for validated configs; VERY_LOW keeps the zero value sane.
	return TierVeryLow
}

// penaltyMagnitude normalizes a configured penalty to its absolute value so
// both "-10" and "10" subtract ten points.
func penaltyMagnitude(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
