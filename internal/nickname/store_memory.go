// Package nickname implements the given-name equivalence store consumed by
// the scoring engine. A row ties a formal name to its informal variants;
// Variants returns the whole equivalence class for any member, always
// including the queried name itself.
package nickname

import (
	"context"
	"strings"
	"sync"
)

type row struct {
	formal   string
	variants []string
}

// InMemory is an in-memory nickname store, used in tests and as the
// default when no database is configured.
type InMemory struct {
	mu   sync.RWMutex
	rows []row
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Add registers a formal name with its variants.
func (s *InMemory) Add(formal string, variants ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := row{formal: clean(formal)}
	for _, v := range variants {
		if v = clean(v); v != "" {
			r.variants = append(r.variants, v)
		}
	}
	s.rows = append(s.rows, r)
}

// Variants returns every name related to the queried one: the name itself,
// plus - for each row the name belongs to - the formal name and all its
// variants. Safe for concurrent use.
func (s *InMemory) Variants(_ context.Context, name string) ([]string, error) {
	name = clean(name)
	set := map[string]struct{}{}
	if name != "" {
		set[name] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rows {
		if !memberOf(r, name) {
			continue
		}
		set[r.formal] = struct{}{}
		for _, v := range r.variants {
			set[v] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out, nil
}

func memberOf(r row, name string) bool {
	if name == "" {
		return false
	}
	if r.formal == name {
		return true
	}
	for _, v := range r.variants {
		if v == name {
			return true
		}
	}
	return false
}

func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Seed fills the store with a starter set of Hebrew formal/informal pairs.
func Seed(s *InMemory) {
	s.Add("אברהם", "אבי", "אברם")
	s.Add("אלכסנדר", "אלכס", "סשה")
	s.Add("בנימין", "בני", "בן")
	s.Add("דניאל", "דני", "דן")
	s.Add("חביבה", "חבי", "ביבה")
	s.Add("יהונתן", "יוני", "יונתן")
	s.Add("יוסף", "יוסי", "סף")
	s.Add("יצחק", "איציק", "צחי")
	s.Add("מיכאל", "מיקי", "מיכה")
	s.Add("משה", "מוישה", "מוש")
	s.Add("רחל", "רחלי", "חלי")
	s.Add("שרה", "שרי", "שרהלה")
}
