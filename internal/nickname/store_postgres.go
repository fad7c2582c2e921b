package nickname

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Postgres serves nickname equivalence classes from a nicknames table. The
// table is owned and mutated by the nickname-admin tooling; this store only
// reads it.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed nickname store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the nicknames table if it does not exist yet.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS nicknames (
			formal_name TEXT PRIMARY KEY,
			all_names   TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure nicknames schema: %w", err)
	}
	return nil
}

// Upsert writes a formal name with its comma-joined variant list.
func (s *Postgres) Upsert(ctx context.Context, formal string, variants ...string) error {
	cleaned := make([]string, 0, len(variants))
	for _, v := range variants {
		if v = clean(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO nicknames (formal_name, all_names) VALUES ($1, $2)
		ON CONFLICT (formal_name) DO UPDATE SET all_names = EXCLUDED.all_names`,
		clean(formal), strings.Join(cleaned, ","))
	if err != nil {
		return fmt.Errorf("upsert nickname %q: %w", formal, err)
	}
	return nil
}

// Variants returns the equivalence class for name, always including name
// itself. Membership in any row's variant list pulls in that row's formal
// name and every variant.
func (s *Postgres) Variants(ctx context.Context, name string) ([]string, error) {
	name = clean(name)
	set := map[string]struct{}{}
	if name != "" {
		set[name] = struct{}{}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT formal_name, all_names FROM nicknames`)
	if err != nil {
		return nil, fmt.Errorf("query nicknames: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var formal, allNames string
		if err := rows.Scan(&formal, &allNames); err != nil {
			return nil, fmt.Errorf("scan nickname row: %w", err)
		}
		variants := splitVariants(allNames)
		if !contains(formal, variants, name) {
			continue
		}
		set[formal] = struct{}{}
		for _, v := range variants {
			set[v] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nicknames: %w", err)
	}

	out := make([]string, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	return out, nil
}

func splitVariants(allNames string) []string {
	parts := strings.Split(allNames, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = clean(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func contains(formal string, variants []string, name string) bool {
	if name == "" {
		return false
	}
	if clean(formal) == name {
		return true
	}
	for _, v := range variants {
		if v == name {
			return true
		}
	}
	return false
}
