package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStateStore_FreshOnMissing(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "state.json"))

	state := store.Load()
	if !state.LastCheck.IsZero() {
		t.Errorf("expected zero watermark for missing file, got %v", state.LastCheck)
	}
}

func TestStateStore_FreshOnCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("%%%"), 0600); err != nil {
		t.Fatal(err)
	}

	state := NewStateStore(path).Load()
	if !state.LastCheck.IsZero() {
		t.Errorf("expected zero watermark for corrupt file, got %v", state.LastCheck)
	}
}

func TestStateStore_RoundTrip(t *testing.T) {
	store := NewStateStore(filepath.Join(t.TempDir(), "state.json"))

	mark := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	if err := store.Save(WatchState{Version: 1, LastCheck: mark}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	state := store.Load()
	if !state.LastCheck.Equal(mark) {
		t.Errorf("watermark round trip mismatch: got %v, want %v", state.LastCheck, mark)
	}
}
