package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hourlog/hourlog/internal/constants"
	"github.com/hourlog/hourlog/internal/schedule"
)

// Settings is the persisted schedule configuration. Field names match the
// settings file the original menu bar app wrote, so an existing
// ~/.hourly_notes_settings.json is picked up as-is.
type Settings struct {
	WorkStartHour    int    `json:"workStartHour"`
	WorkEndHour      int    `json:"workEndHour"`
	FrequencyMinutes int    `json:"frequencyMinutes"`
	LaunchAtLogin    bool   `json:"launchAtLogin"`
	EODDate          string `json:"eodDate,omitempty"` // ISO-8601, set while end-of-day suppression is active
}

func DefaultSettings() Settings {
	return Settings{
		WorkStartHour:    constants.DefaultWorkStartHour,
		WorkEndHour:      constants.DefaultWorkEndHour,
		FrequencyMinutes: constants.DefaultFrequencyMin,
		LaunchAtLogin:    constants.DefaultLaunchAtLogin,
	}
}

// SettingsStore reads and writes the settings JSON file. Load never fails:
// a missing, unreadable, or malformed file falls back to defaults so a
// broken settings file can't keep the app from starting.
type SettingsStore struct {
	path string
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

func (s *SettingsStore) Path() string {
	return s.path
}

func (s *SettingsStore) Load() Settings {
	settings := DefaultSettings()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return settings
	}
	// Unmarshal over the defaults: absent fields keep their default value
	// rather than collapsing to zero.
	if err := json.Unmarshal(data, &settings); err != nil {
		return DefaultSettings()
	}
	return settings
}

func (s *SettingsStore) Save(settings Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// ScheduleConfig derives the runtime schedule from the settings, resolving
// end-of-day suppression against the given instant. Suppression set on an
// earlier calendar day has expired and is ignored.
func (s Settings) ScheduleConfig(now time.Time, loc *time.Location) schedule.Config {
	if loc == nil {
		loc = time.Local
	}
	cfg := schedule.Config{
		StartHour: s.WorkStartHour,
		EndHour:   s.WorkEndHour,
		Frequency: time.Duration(s.FrequencyMinutes) * time.Minute,
		Location:  loc,
	}

	if s.EODDate != "" {
		if set, err := time.Parse(time.RFC3339, s.EODDate); err == nil {
			day := set.In(loc).Format(constants.DateFormat)
			if day == now.In(loc).Format(constants.DateFormat) {
				cfg.Suppressed = true
				cfg.SuppressedOn = day
			}
		}
	}
	return cfg
}
