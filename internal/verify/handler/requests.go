package handler

import (
	"fmt"
	"strings"

	"veriname/internal/scoring"
)

// LookupRequest asks for a phone-driven multi-source verification.
type LookupRequest struct {
	Phone       string `json:"phone"`
	ClaimedName string `json:"claimed_name"`
}

// Validate checks required fields.
func (r LookupRequest) Validate() error {
	if strings.TrimSpace(r.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if strings.TrimSpace(r.ClaimedName) == "" {
		return fmt.Errorf("claimed_name is required")
	}
	return nil
}

// ScoreRequest asks for scoring against a caller-supplied candidate.
type ScoreRequest struct {
	ClaimedName string                  `json:"claimed_name"`
	Candidate   scoring.CandidateRecord `json:"candidate"`
}

// Validate checks required fields. An empty candidate is allowed: it
// scores as no_match, which is a defined outcome, not an error.
func (r ScoreRequest) Validate() error {
	if strings.TrimSpace(r.ClaimedName) == "" {
		return fmt.Errorf("claimed_name is required")
	}
	return nil
}
