package scoring

import "context"

// Strategy identifies which rung of the match cascade produced a result.
// The set is closed: matching semantics are fixed by the domain, not meant
// to be extended by callers.
type Strategy string

const (
	StrategyExact         Strategy = "exact"
	StrategyNickname      Strategy = "nickname"
	StrategyTranslitExact Strategy = "transliteration_exact"
	StrategyTranslitFuzzy Strategy = "transliteration_fuzzy"
	StrategyDirectFuzzy   Strategy = "direct_fuzzy"
	StrategyMediumFuzzy   Strategy = "medium_fuzzy"
	StrategyLowFuzzy      Strategy = "low_fuzzy"
	StrategyNoMatch       Strategy = "no_match"
)

// Strategies lists every cascade strategy in priority order.
var Strategies = []Strategy{
	StrategyExact,
	StrategyNickname,
	StrategyTranslitExact,
	StrategyTranslitFuzzy,
	StrategyDirectFuzzy,
	StrategyMediumFuzzy,
	StrategyLowFuzzy,
	StrategyNoMatch,
}

// Tier is the named confidence bucket derived from the final score.
type Tier string

const (
	TierHigh    Tier = "HIGH"
	TierMedium  Tier = "MEDIUM"
	TierLow     Tier = "LOW"
	TierVeryLow Tier = "VERY_LOW"
)

// SourceID identifies a phone-directory data source.
type SourceID string

const (
	SourceME   SourceID = "me"
	SourceSync SourceID = "sync"
)

// ClaimedIdentity is the applicant-provided name split into components.
// Given and Surname are comparison-folded; Raw preserves the original
// string for display and audit output.
type ClaimedIdentity struct {
	GivenName string
	Surname   string
	Raw       string
}

// CandidateRecord is a name tied to a phone number by one directory source.
// Empty fields mean the source had no data for that field, not an error.
type CandidateRecord struct {
	Source      SourceID `json:"source"`
	GivenName   string   `json:"given_name"`
	Surname     string   `json:"surname"`
	DisplayName string   `json:"display_name"`
}

// Empty reports whether the record carries no usable name data.
func (c CandidateRecord) Empty() bool {
	return c.GivenName == "" && c.Surname == "" && c.DisplayName == ""
}

// MatchResult is the outcome of running the cascade for one name component.
type MatchResult struct {
	Strategy  Strategy `json:"strategy"`
	Score     int      `json:"score"`
	Claimed   string   `json:"claimed"`
	Candidate string   `json:"candidate"`
	Detail    string   `json:"detail"`
}

// Adjustment is one bonus or penalty applied after the weighted base score.
// Zero-delta adjustments are recorded too so the audit trail always shows
// which rules were considered.
type Adjustment struct {
	Label string `json:"label"`
	Delta int    `json:"delta"`
}

// ScoreBreakdown is the full, auditable result of one scoring call.
type ScoreBreakdown struct {
	Source          SourceID        `json:"source,omitempty"`
	LastNameResult  MatchResult     `json:"last_name_result"`
	FirstNameResult MatchResult     `json:"first_name_result"`
	BaseScore       float64         `json:"base_score"`
	Adjustments     []Adjustment    `json:"adjustments"`
	FinalScore      int             `json:"final_score"`
	RiskTier        Tier            `json:"risk_tier"`
	Explanation     string          `json:"explanation"`
	PerSource       []SourceOutcome `json:"per_source,omitempty"`
}

// SourceOutcome summarizes one source's contribution to a multi-source score.
type SourceOutcome struct {
	Source     SourceID `json:"source"`
	FinalScore int      `json:"final_score"`
	RiskTier   Tier     `json:"risk_tier"`
}

// NicknameResolver is the capability the engine needs from the nickname
// store: the equivalence class a given name belongs to, always including
// the name itself. Implementations must be safe for concurrent use.
type NicknameResolver interface {
	Variants(ctx context.Context, name string) ([]string, error)
}

// Transliterator renders a name written in a foreign script into Hebrew for
// comparison purposes. Unrecognized scripts come back unchanged; the
// cascade then degrades to direct fuzzy matching on the originals.
type Transliterator interface {
	Transliterate(name string) string
}
