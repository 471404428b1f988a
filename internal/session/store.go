package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Store persists a session to a JSON state file.
type Store struct {
	path string
}

// NewStore creates a store backed by the given state file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the state file path.
func (st *Store) Path() string {
	return st.path
}

// Load reads the persisted session. A missing state file yields a fresh
// session, not an error; a corrupt one is logged and replaced the same way
// rather than blocking every subsequent command.
func (st *Store) Load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading session state: %w", err)
	}

	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		log.Warn().Err(err).Str("path", st.path).Msg("Corrupt session state, starting fresh")
		return New(), nil
	}
	return s, nil
}

// Save writes the session atomically via a temp file and rename, so a
// command interrupted mid-write cannot leave a truncated state file.
func (st *Store) Save(s *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o755); err != nil {
		return fmt.Errorf("creating session state directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(st.path), ".session-*")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing session state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing session state: %w", err)
	}

	if err := os.Rename(tmp.Name(), st.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing session state: %w", err)
	}
	return nil
}

// Reset deletes the state file if present.
func (st *Store) Reset() error {
	if err := os.Remove(st.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session state: %w", err)
	}
	return nil
}
