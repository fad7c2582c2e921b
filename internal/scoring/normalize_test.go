package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitClaimedName(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		given   string
		surname string
	}{
		{"two tokens", "דוד לוי", "דוד", "לוי"},
		{"multi-word given name stays one token", "מרי חביבה פראס", "מרי חביבה", "פראס"},
		{"single token is given name only", "דוד", "דוד", ""},
		{"empty", "", "", ""},
		{"whitespace only", "   ", "", ""},
		{"extra whitespace collapsed", "  דוד   לוי  ", "דוד", "לוי"},
		{"latin case folded", "John Smith", "john", "smith"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := SplitClaimedName(tt.raw)
			assert.Equal(t, tt.given, id.GivenName)
			assert.Equal(t, tt.surname, id.Surname)
		})
	}
}

func TestSplitClaimedNamePreservesRaw(t *testing.T) {
	id := SplitClaimedName("  Дмитрий Иванов ")
	assert.Equal(t, "Дмитрий Иванов", id.Raw)
}

func TestFold(t *testing.T) {
	assert.Equal(t, "jose", Fold("José"))
	assert.Equal(t, "francois", Fold("  François "))
	assert.Equal(t, "דוד לוי", Fold("דוד   לוי"))
	// Hebrew with niqqud loses the points, not the letters.
	assert.Equal(t, "שלום", Fold("שָׁלוֹם"))
}

func TestNormalizeCandidate(t *testing.T) {
	t.Run("structured fields preferred", func(t *testing.T) {
		given, surname := normalizeCandidate(CandidateRecord{
			GivenName:   "Dana",
			Surname:     "Cohen",
			DisplayName: "Somebody Else",
		})
		assert.Equal(t, "dana", given)
		assert.Equal(t, "cohen", surname)
	})

	t.Run("display name fallback splits first token as given", func(t *testing.T) {
		given, surname := normalizeCandidate(CandidateRecord{DisplayName: "דוד לוי הכהן"})
		assert.Equal(t, "דוד", given)
		assert.Equal(t, "לוי הכהן", surname)
	})

	t.Run("single-token display name has no surname", func(t *testing.T) {
		given, surname := normalizeCandidate(CandidateRecord{DisplayName: "דוד"})
		assert.Equal(t, "דוד", given)
		assert.Equal(t, "", surname)
	})

	t.Run("empty record yields empty components", func(t *testing.T) {
		given, surname := normalizeCandidate(CandidateRecord{})
		assert.Empty(t, given)
		assert.Empty(t, surname)
	})
}
