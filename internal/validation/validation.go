package validation

import (
	"fmt"

	"github.com/hourlog/hourlog/internal/storage"
)

// ValidateSettings rejects out-of-range schedule values at the update
// boundary. Callers keep the prior valid configuration when this fails.
func ValidateSettings(s storage.Settings) error {
	if s.WorkStartHour < 0 || s.WorkStartHour > 23 {
		return fmt.Errorf("start hour must be between 0 and 23, got %d", s.WorkStartHour)
	}
	if s.WorkEndHour < 0 || s.WorkEndHour > 23 {
		return fmt.Errorf("end hour must be between 0 and 23, got %d", s.WorkEndHour)
	}
	if s.FrequencyMinutes <= 0 {
		return fmt.Errorf("frequency must be a positive number of minutes, got %d", s.FrequencyMinutes)
	}
	return nil
}

// Warnings reports accepted-but-suspect settings. A zero-length window is
// valid input, it just never prompts.
func Warnings(s storage.Settings) []string {
	var warnings []string
	if s.WorkStartHour == s.WorkEndHour {
		warnings = append(warnings,
			fmt.Sprintf("start and end hour are both %d; this window never prompts", s.WorkStartHour))
	}
	if s.WorkStartHour > s.WorkEndHour {
		warnings = append(warnings,
			fmt.Sprintf("work window %d:00-%d:00 wraps midnight", s.WorkStartHour, s.WorkEndHour))
	}
	return warnings
}
