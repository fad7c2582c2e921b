package scoring

import (
	"context"
	"fmt"
)

// matchComponent runs the strategy cascade for one name component. Inputs
// arrive comparison-folded. Strategies are tried in fixed priority order
// and the first success wins; nothing below it is evaluated.
//
// Cascade: exact -> nickname (given name only) -> transliteration exact ->
// transliteration fuzzy -> direct fuzzy -> medium fuzzy -> low fuzzy ->
// no match.
func (e *Engine) matchComponent(ctx context.Context, cfg *Config, claimed, candidate string, givenName bool) MatchResult {
	res := MatchResult{
		Strategy:  StrategyNoMatch,
		Claimed:   claimed,
		Candidate: candidate,
	}

	if claimed == "" || candidate == "" {
		res.Detail = "missing name"
		return res
	}

	// 1. Exact.
	if claimed == candidate {
		res.Strategy = StrategyExact
		res.Score = cfg.MatchScores[StrategyExact]
		res.Detail = "strings equal"
		return res
	}

	translitClaimed := e.transliterate(claimed)
	translitCandidate := e.transliterate(candidate)

	// 2. Nickname, given-name component only.
	if givenName {
		if via, ok := e.nicknameMatch(ctx, claimed, candidate, translitCandidate); ok {
			res.Strategy = StrategyNickname
			res.Score = cfg.MatchScores[StrategyNickname]
			res.Detail = fmt.Sprintf("nickname equivalence via %q", via)
			return res
		}
	}

	// 3. Transliteration exact, both directions.
	if translitCandidate != candidate && translitCandidate == claimed {
		res.Strategy = StrategyTranslitExact
		res.Score = cfg.MatchScores[StrategyTranslitExact]
		res.Detail = fmt.Sprintf("%q transliterates to %q", candidate, translitCandidate)
		return res
	}
	if translitClaimed != claimed && translitClaimed == candidate {
		res.Strategy = StrategyTranslitExact
		res.Score = cfg.MatchScores[StrategyTranslitExact]
		res.Detail = fmt.Sprintf("%q transliterates to %q", claimed, translitClaimed)
		return res
	}

	// 4. Transliteration fuzzy: best similarity over the transliterated
	// pairings. Skipped entirely when neither side transliterates, which is
	// how unknown scripts degrade to direct fuzzy comparison.
	bestTranslit := 0
	bestTranslitDetail := ""
	if translitCandidate != candidate {
		if s := Similarity(claimed, translitCandidate); s > bestTranslit {
			bestTranslit = s
			bestTranslitDetail = fmt.Sprintf("%q ~ %q (from %q) = %d%%", claimed, translitCandidate, candidate, s)
		}
	}
	if translitClaimed != claimed {
		if s := Similarity(translitClaimed, candidate); s > bestTranslit {
			bestTranslit = s
			bestTranslitDetail = fmt.Sprintf("%q (from %q) ~ %q = %d%%", translitClaimed, claimed, candidate, s)
		}
	}
	if translitClaimed != claimed && translitCandidate != candidate {
		if s := Similarity(translitClaimed, translitCandidate); s > bestTranslit {
			bestTranslit = s
			bestTranslitDetail = fmt.Sprintf("%q ~ %q (both transliterated) = %d%%", translitClaimed, translitCandidate, s)
		}
	}
	if bestTranslit >= cfg.FuzzyThresholds.High {
		res.Strategy = StrategyTranslitFuzzy
		res.Score = cfg.MatchScores[StrategyTranslitFuzzy]
		res.Detail = bestTranslitDetail
		return res
	}

	// 5. Direct fuzzy on the original strings.
	direct := Similarity(claimed, candidate)
	if direct >= cfg.FuzzyThresholds.High {
		res.Strategy = StrategyDirectFuzzy
		res.Score = cfg.MatchScores[StrategyDirectFuzzy]
		res.Detail = fmt.Sprintf("similarity %d%%", direct)
		return res
	}

	// 6/7. Medium and low bands use the best of direct and transliterated
	// similarity.
	best := direct
	detail := fmt.Sprintf("similarity %d%%", direct)
	if bestTranslit > best {
		best = bestTranslit
		detail = bestTranslitDetail
	}
	switch {
	case best >= cfg.FuzzyThresholds.Medium:
		res.Strategy = StrategyMediumFuzzy
		res.Score = cfg.MatchScores[StrategyMediumFuzzy]
	case best >= cfg.FuzzyThresholds.Low:
		res.Strategy = StrategyLowFuzzy
		res.Score = cfg.MatchScores[StrategyLowFuzzy]
	default:
		res.Strategy = StrategyNoMatch
		res.Score = cfg.MatchScores[StrategyNoMatch]
	}
	res.Detail = detail
	return res
}

// nicknameMatch tests whether claimed and candidate belong to the same
// nickname equivalence class: claimed in variants(candidate), or candidate
// in variants(claimed), or - for foreign-script candidates - the
// transliterated candidate linked to claimed through the store. The
// transliterated form is only consulted when it differs from both inputs,
// so a perfect transliteration falls through to the higher-scoring
// transliteration-exact strategy instead.
func (e *Engine) nicknameMatch(ctx context.Context, claimed, candidate, translitCandidate string) (string, bool) {
	if e.nicknames == nil {
		return "", false
	}

	claimedVariants := e.variants(ctx, claimed)
	if _, ok := claimedVariants[candidate]; ok {
		return candidate, true
	}
	candidateVariants := e.variants(ctx, candidate)
	if _, ok := candidateVariants[claimed]; ok {
		return claimed, true
	}

	if translitCandidate != "" && translitCandidate != candidate && translitCandidate != claimed {
		if _, ok := claimedVariants[translitCandidate]; ok {
			return translitCandidate, true
		}
		if _, ok := e.variants(ctx, translitCandidate)[claimed]; ok {
			return translitCandidate, true
		}
	}

	return "", false
}

// variants fetches the nickname equivalence class as a set. Lookup errors
// degrade to the trivial class {name}: a flaky nickname table must not
// fail the whole scoring call, it just loses the nickname strategy.
func (e *Engine) variants(ctx context.Context, name string) map[string]struct{} {
	set := map[string]struct{}{name: {}}
	names, err := e.nicknames.Variants(ctx, name)
	if err != nil {
		return set
	}
	for _, n := range names {
		set[Fold(n)] = struct{}{}
	}
	return set
}

// transliterate renders name into Hebrew when a transliterator is wired,
// otherwise returns it unchanged.
func (e *Engine) transliterate(name string) string {
	if e.translit == nil {
		return name
	}
	return Fold(e.translit.Transliterate(name))
}
