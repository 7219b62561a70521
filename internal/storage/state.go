package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WatchState is the persisted scheduler watermark: the latest instant the
// watch loop has already accounted for. Persisting it lets a restart
// reconcile the quit gap the same way a wake-from-sleep does.
type WatchState struct {
	Version   int       `json:"version"`
	LastCheck time.Time `json:"lastCheck"`
}

// StateStore persists the watermark next to the settings file.
type StateStore struct {
	path string
}

func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

func (s *StateStore) Path() string {
	return s.path
}

// Load returns a fresh zero-watermark state when the file is missing or
// corrupt; a bad state file must never be fatal.
func (s *StateStore) Load() WatchState {
	state := WatchState{Version: 1}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return WatchState{Version: 1}
	}
	return state
}

// Save writes the state atomically via a temp file rename so a crash
// mid-write can't leave a torn watermark behind.
func (s *StateStore) Save(state WatchState) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
