package scoring

import (
	"fmt"
	"strings"
)

// NoDataExplanation is the explanation attached to a multi-source result
// when not a single directory source returned usable name data.
const NoDataExplanation = "no directory data available"

// buildExplanation renders the deterministic, human-readable audit trail
// for one single-source scoring call. The same inputs and config always
// produce byte-identical output.
func buildExplanation(cfg *Config, claimed ClaimedIdentity, cand CandidateRecord, b *ScoreBreakdown) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Customer: %s\n", claimed.Raw)
	display := strings.TrimSpace(cand.GivenName + " " + cand.Surname)
	if display == "" {
		display = cand.DisplayName
	}
	fmt.Fprintf(&sb, "Directory %s returned: %s\n", strings.ToUpper(string(cand.Source)), display)

	writeComponent(&sb, "Last name", b.LastNameResult, cfg.Weights.LastName)
	writeComponent(&sb, "First name", b.FirstNameResult, cfg.Weights.FirstName)

	fmt.Fprintf(&sb, "Base score: %.2f\n", b.BaseScore)
	for _, a := range b.Adjustments {
		fmt.Fprintf(&sb, "Adjustment: %s %+d\n", a.Label, a.Delta)
	}
	fmt.Fprintf(&sb, "Final score: %d -> %s", b.FinalScore, b.RiskTier)

	return sb.String()
}

func writeComponent(sb *strings.Builder, label string, r MatchResult, weight float64) {
	fmt.Fprintf(sb, "%s: %q vs %q (%s)\n", label, r.Claimed, r.Candidate, r.Detail)
	fmt.Fprintf(sb, "  %s -> score %d x weight %.2f = %.2f\n",
		r.Strategy, r.Score, weight, float64(r.Score)*weight)
}

// buildMultiExplanation renders the audit trail for an aggregated
// multi-source result: per-source outcomes, the winning source, the
// agreement adjustment, and the final classification.
func buildMultiExplanation(claimed ClaimedIdentity, outcomes []SourceOutcome, best SourceID, agreement Adjustment, final int, tier Tier) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Customer: %s\n", claimed.Raw)
	fmt.Fprintf(&sb, "Sources scored: %d\n", len(outcomes))
	for _, o := range outcomes {
		fmt.Fprintf(&sb, "  %s: %d (%s)\n", strings.ToUpper(string(o.Source)), o.FinalScore, o.RiskTier)
	}
	fmt.Fprintf(&sb, "Best source: %s\n", strings.ToUpper(string(best)))
	fmt.Fprintf(&sb, "Adjustment: %s %+d\n", agreement.Label, agreement.Delta)
	fmt.Fprintf(&sb, "Final score: %d -> %s", final, tier)

	return sb.String()
}
