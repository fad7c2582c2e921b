// Package phone normalizes Israeli phone numbers into the international
// digits-only form (972XXXXXXXXX) used as the directory lookup key.
package phone

import (
	"fmt"
	"strings"
)

// Normalize converts a phone number to international form: strips
// formatting characters, converts a local leading 0 to the 972 country
// code, and validates the resulting shape.
func Normalize(raw string) (string, error) {
	digits := digitsOf(raw)
	if digits == "" {
		return "", fmt.Errorf("phone number is empty")
	}

	if len(digits) == 10 && strings.HasPrefix(digits, "0") {
		digits = "972" + digits[1:]
	}

	if err := Validate(digits); err != nil {
		return "", err
	}
	return digits, nil
}

// Validate checks that a number is in international form: all digits,
// 972 prefix, twelve digits total.
func Validate(phone string) error {
	for _, r := range phone {
		if r < '0' || r > '9' {
			return fmt.Errorf("phone number %q contains non-digits", phone)
		}
	}
	if !strings.HasPrefix(phone, "972") {
		return fmt.Errorf("phone number %q is not in international 972 format", phone)
	}
	if len(phone) != 12 {
		return fmt.Errorf("phone number %q must be 12 digits, got %d", phone, len(phone))
	}
	return nil
}

func digitsOf(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' || r == '.':
			// formatting noise
		default:
			sb.WriteRune(r) // left in place so validation reports it
		}
	}
	return sb.String()
}
