package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time-of-day format used for display (HH:MM)
	TimeFormat = "15:04"

	// Default work schedule
	DefaultWorkStartHour = 9
	DefaultWorkEndHour   = 17
	DefaultFrequencyMin  = 60
	DefaultLaunchAtLogin = false

	// Default file locations, relative to the user's home directory.
	// These match the paths the original menu bar version of hourlog used,
	// so existing note files keep working.
	DefaultNotesFileName    = ".notes.txt"
	DefaultSettingsFileName = ".hourly_notes_settings.json"
	DefaultStateFileName    = ".hourly_notes_state.json"

	// LockfileName is written next to the state file while a watcher runs.
	LockfileName = "hourlog-watch.lock"

	// NotePreviewLen is how much note text is echoed back in confirmations.
	NotePreviewLen = 50
)
