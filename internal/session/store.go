// pattern: Imperative Shell

package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"gitship/internal/logging"
)

// Store persists a Session as flat YAML key-value pairs. Saves are
// atomic from a reader's perspective: the file is written to a
// temporary sibling and renamed into place.
type Store struct {
	path     string
	logger   *logging.ScopedLogger
	degraded bool
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string, logger *logging.ScopedLogger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the session file. A missing or unreadable store yields an
// empty Session, never an error: a fresh run is always possible.
func (s *Store) Load() Session {
	sess := Empty()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("session file unreadable, starting fresh", "path", s.path, "error", err)
		}
		return sess
	}

	if err := yaml.Unmarshal(data, &sess); err != nil {
		s.logger.Warn("session file corrupt, starting fresh", "path", s.path, "error", err)
		return Empty()
	}

	sess.applyDefaults()
	return sess
}

// Save persists the session. If the backend is unavailable the store
// degrades to a no-op with a warning and the run continues
// non-resumable; persistence failure is never fatal.
func (s *Store) Save(sess Session) {
	if s.degraded {
		return
	}

	if err := s.save(sess); err != nil {
		s.logger.Warn("session save failed, continuing non-resumable", "path", s.path, "error", err)
		s.degraded = true
	}
}

// Degraded reports whether a previous Save failed and persistence is
// disabled for the rest of the run.
func (s *Store) Degraded() bool {
	return s.degraded
}

func (s *Store) save(sess Session) error {
	data, err := yaml.Marshal(&sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}
