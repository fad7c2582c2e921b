package scoring

import "math"

// Adjustment labels, in the fixed order the combiner applies them.
const (
	AdjustBothExact            = "both_exact"
	AdjustFirstOnlyMatch       = "first_only_match"
	AdjustCrossSourceAgreement = "cross_source_agreement"
)

// combine weights the two component results into a base score, applies the
// bonus/penalty rules in fixed order, and clamps to [0,100]. Every rule is
// recorded as an adjustment even at zero delta so the audit trail shows
// what was considered.
func combine(cfg *Config, last, first MatchResult) (base float64, adjustments []Adjustment, final int) {
	base = float64(last.Score)*cfg.Weights.LastName + float64(first.Score)*cfg.Weights.FirstName

	bothExact := Adjustment{Label: AdjustBothExact}
	if last.Strategy == StrategyExact && first.Strategy == StrategyExact {
		bothExact.Delta = cfg.Bonuses.BothExact
	}

	firstOnly := Adjustment{Label: AdjustFirstOnlyMatch}
	if first.Strategy != StrategyNoMatch && last.Strategy == StrategyNoMatch {
		firstOnly.Delta = -penaltyMagnitude(cfg.Penalties.FirstOnlyMatch)
	}

	adjustments = []Adjustment{bothExact, firstOnly}

	total := base
	for _, a := range adjustments {
		total += float64(a.Delta)
	}
	final = clampScore(int(math.Round(total)))
	return base, adjustments, final
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
