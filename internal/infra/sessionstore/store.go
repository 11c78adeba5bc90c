// Package sessionstore persists the authenticated session as a JSON file
// so a sign-in survives process restarts.
package sessionstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"minitodo/internal/domain"
)

// SessionFileName is the session file name inside the config dir.
const SessionFileName = "session.json"

// Ensure Store implements domain.SessionStore.
var _ domain.SessionStore = (*Store)(nil)

// Store reads and writes the session file.
type Store struct {
	path string
}

// New creates a Store rooted at the given config directory.
func New(confDir string) *Store {
	return &Store{path: filepath.Join(confDir, SessionFileName)}
}

// Load returns the stored session, or nil if none is stored.
func (s *Store) Load() (*domain.Session, error) {
	data, err := os.ReadFile(s.path) // #nosec G304 - path is derived from the config dir
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	return &sess, nil
}

// Save stores the session. The file holds bearer tokens, so it is written
// with owner-only permissions.
func (s *Store) Save(sess *domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is not an
// error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
