package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/forma/server/internal/model"
)

// AuthState is the profile and token pair cached on the device between
// runs, the CLI equivalent of the mobile app's local storage.
type AuthState struct {
	User   model.User       `json:"user"`
	Tokens model.AuthTokens `json:"tokens"`
}

// Storage persists AuthState as JSON in a single file. Logout clears the
// whole file; there is no partial update.
type Storage struct {
	path string
}

// NewStorage creates storage rooted at dir (created on first save).
func NewStorage(dir string) *Storage {
	return &Storage{path: filepath.Join(dir, "auth.json")}
}

// DefaultDir returns ~/.forma.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".forma"), nil
}

// Load reads the cached state. Returns nil when nothing is cached.
func (s *Storage) Load() (*AuthState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read auth state: %w", err)
	}
	var state AuthState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse auth state: %w", err)
	}
	return &state, nil
}

// Save writes the state, creating the directory if needed. The file is
// user-only: it holds live tokens.
func (s *Storage) Save(state AuthState) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode auth state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write auth state: %w", err)
	}
	return nil
}

// Clear removes the cached state wholesale.
func (s *Storage) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear auth state: %w", err)
	}
	return nil
}
