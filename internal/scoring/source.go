package scoring

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigSource supplies an immutable config snapshot per scoring call.
// Snapshot must be safe for concurrent use; updates to the underlying
// source are picked up by subsequent calls, never torn within one.
type ConfigSource interface {
	Snapshot() (Config, error)
}

// StaticSource serves a fixed, pre-validated config. Handy for tests and
// for hosts that manage reloading themselves.
type StaticSource struct {
	cfg Config
}

// NewStaticSource validates cfg once and serves it forever.
func NewStaticSource(cfg Config) (*StaticSource, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return &StaticSource{cfg: cfg}, nil
}

func (s *StaticSource) Snapshot() (Config, error) {
	return s.cfg, nil
}

// FileSource loads scoring config from a JSON or YAML file and reloads it
// when the file changes, so weights can be tuned with zero downtime. Once a
// valid config has been served, a broken edit does not propagate: the last
// known-valid snapshot keeps being served and the parse error is retained
// for observability.
type FileSource struct {
	path string

	mu       sync.Mutex
	loaded   bool
	cfg      Config
	modTime  time.Time
	size     int64
	lastErr  error
	reloadAt time.Time
}

// NewFileSource creates a file-backed config source. The file is read
// lazily on the first Snapshot call.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Snapshot stats the file and reparses only when it changed. The returned
// Config is a deep copy so callers can never observe a torn update.
func (s *FileSource) Snapshot() (Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := os.Stat(s.path)
	if err != nil {
		if s.loaded {
			s.lastErr = err
			return s.cfg.clone(), nil
		}
		return Config{}, fmt.Errorf("stat scoring config: %w", err)
	}

	if !s.loaded || !info.ModTime().Equal(s.modTime) || info.Size() != s.size {
		cfg, err := loadConfigFile(s.path)
		if err != nil {
			if s.loaded {
				// Keep serving the last known-valid config; refuse to swap
				// in a broken one.
				s.lastErr = err
				return s.cfg.clone(), nil
			}
			return Config{}, err
		}
		s.cfg = cfg
		s.loaded = true
		s.modTime = info.ModTime()
		s.size = info.Size()
		s.lastErr = nil
		s.reloadAt = time.Now()
	}

	return s.cfg.clone(), nil
}

// LastError reports the most recent reload failure, or nil when the served
// snapshot matches the file on disk.
func (s *FileSource) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scoring config: %w", err)
	}

	var cfg Config
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse scoring config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse scoring config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("scoring config %s: %w", path, err)
	}
	return cfg, nil
}

// clone deep-copies the map fields so a served snapshot is immune to later
// reloads mutating the cached value.
func (c Config) clone() Config {
	out := c
	out.MatchScores = make(map[Strategy]int, len(c.MatchScores))
	for k, v := range c.MatchScores {
		out.MatchScores[k] = v
	}
	out.TierBoundaries = make(map[Tier]int, len(c.TierBoundaries))
	for k, v := range c.TierBoundaries {
		out.TierBoundaries[k] = v
	}
	return out
}
