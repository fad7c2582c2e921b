// Package directory gathers candidate name records for a phone number from
// the configured crowd-sourced directory sources, with a shared cache and
// parallel fan-out. The real HTTP clients live behind the Provider
// interface; the scoring engine only ever sees the resulting records.
package directory

import (
	"context"

	"veriname/internal/scoring"
)

// Provider looks up one directory source. A number the source does not
// know is a nil record, not an error; errors are reserved for transport
// and protocol failures.
type Provider interface {
	ID() scoring.SourceID
	Lookup(ctx context.Context, phone string) (*scoring.CandidateRecord, error)
}

// Static is a fixture-backed provider for tests and local development.
type Static struct {
	id      scoring.SourceID
	records map[string]scoring.CandidateRecord
}

// NewStatic builds a fixture provider. The source ID is stamped onto every
// returned record.
func NewStatic(id scoring.SourceID, records map[string]scoring.CandidateRecord) *Static {
	return &Static{id: id, records: records}
}

func (s *Static) ID() scoring.SourceID {
	return s.id
}

func (s *Static) Lookup(_ context.Context, phone string) (*scoring.CandidateRecord, error) {
	rec, ok := s.records[phone]
	if !ok {
		return nil, nil
	}
	rec.Source = s.id
	return &rec, nil
}
