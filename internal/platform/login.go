package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const launchAgentLabel = "dev.hourlog.watch"

// SetLaunchAtLogin registers or removes the watcher as a login item. Only
// ever invoked on an explicit user toggle; failures are surfaced to the
// caller and never retried automatically.
func SetLaunchAtLogin(enabled bool) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to resolve executable path: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return setLaunchAgent(enabled, exe)
	case "linux":
		return setAutostartEntry(enabled, exe)
	default:
		return fmt.Errorf("launch at login is not supported on %s", runtime.GOOS)
	}
}

func setLaunchAgent(enabled bool, exe string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to resolve home directory: %w", err)
	}
	path := filepath.Join(home, "Library", "LaunchAgents", launchAgentLabel+".plist")

	if !enabled {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove launch agent: %w", err)
		}
		return nil
	}

	plist := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>%s</string>
	<key>ProgramArguments</key>
	<array>
		<string>%s</string>
		<string>watch</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, launchAgentLabel, exe)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create LaunchAgents directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(plist), 0644); err != nil {
		return fmt.Errorf("failed to write launch agent: %w", err)
	}
	return nil
}

func setAutostartEntry(enabled bool, exe string) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return fmt.Errorf("failed to resolve config directory: %w", err)
	}
	path := filepath.Join(configDir, "autostart", "hourlog.desktop")

	if !enabled {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove autostart entry: %w", err)
		}
		return nil
	}

	entry := fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=hourlog
Exec=%s watch
X-GNOME-Autostart-enabled=true
`, exe)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create autostart directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(entry), 0644); err != nil {
		return fmt.Errorf("failed to write autostart entry: %w", err)
	}
	return nil
}
