package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0541234567", "972541234567"},
		{"054-123-4567", "972541234567"},
		{"+972 54 123 4567", "972541234567"},
		{"(054) 123.4567", "972541234567"},
		{"972541234567", "972541234567"},
	}
	for _, tt := range tests {
		got, err := Normalize(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"054-123-456",    // too short
		"05412345678",    // eleven digits, no 0-prefix rewrite applies
		"15551234567",    // not an Israeli number
		"054123456a",     // stray letter
		"97254123456789", // too long
	}
	for _, in := range tests {
		_, err := Normalize(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("972541234567"))
	assert.Error(t, Validate("0541234567"))
	assert.Error(t, Validate("97254123456"))
	assert.Error(t, Validate("9725412345a7"))
}
