package scoring

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransform strips combining marks (Latin diacritics, Hebrew niqqud,
// Arabic harakat) so "José" and "Jose" compare equal. Base letters and
// script are left intact; transliteration still sees the original script.
var foldTransform = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold normalizes a name for comparison: trim, collapse internal
// whitespace, lower-case, drop combining marks. The original string is
// kept separately for display, so folding is never destructive.
func Fold(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ToLower(s)
	if folded, _, err := transform.String(foldTransform, s); err == nil {
		s = folded
	}
	return s
}

// SplitClaimedName splits a raw full-name string into given name and
// surname: the last whitespace-delimited token is the surname, everything
// before it is the given name (a multi-word given name stays one token).
// A single token is a given name with no surname; empty input yields empty
// components, which downstream strategies score as no_match.
func SplitClaimedName(raw string) ClaimedIdentity {
	id := ClaimedIdentity{Raw: strings.TrimSpace(raw)}
	parts := strings.Fields(raw)
	switch {
	case len(parts) >= 2:
		id.GivenName = Fold(strings.Join(parts[:len(parts)-1], " "))
		id.Surname = Fold(parts[len(parts)-1])
	case len(parts) == 1:
		id.GivenName = Fold(parts[0])
	}
	return id
}

// normalizeCandidate folds a candidate's name fields, falling back to the
// display name when the structured fields are empty: its first token
// becomes the given name and the remainder the surname, the word order
// directory sources use.
func normalizeCandidate(c CandidateRecord) (given, surname string) {
	given = Fold(c.GivenName)
	surname = Fold(c.Surname)

	display := strings.Fields(c.DisplayName)
	if given == "" && len(display) > 0 {
		given = Fold(display[0])
	}
	if surname == "" && len(display) >= 2 {
		surname = Fold(strings.Join(display[1:], " "))
	}
	return given, surname
}
