package session

import (
	"os"
	"path/filepath"
)

// BaseDir returns ~/.tgrab.
func BaseDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".tgrab")
}

// Dir returns the session-specific directory.
func Dir(name string) string {
	return filepath.Join(BaseDir(), "sessions", name)
}

// TelegramSessionPath returns the MTProto session file path for a session.
func TelegramSessionPath(name string) string {
	return filepath.Join(Dir(name), "session.json")
}

// LockPath returns the run lock file path for a session.
func LockPath(name string) string {
	return filepath.Join(Dir(name), "LOCK")
}

// DefaultDBPath returns the default tracking database path. The database is
// shared between sessions (and, on a network mount, between machines), so it
// lives at the base dir rather than under a session.
func DefaultDBPath() string {
	return filepath.Join(BaseDir(), "tgrab.db")
}

// LogDir returns the log directory for a session.
func LogDir(name string) string {
	return filepath.Join(Dir(name), "logs")
}

// LogPath returns the run log file path.
func LogPath(name string) string {
	return filepath.Join(LogDir(name), "tgrab.log")
}

// ConfigPath returns the global config file path.
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.toml")
}

// EnsureDir creates the session directory tree with proper permissions.
func EnsureDir(name string) error {
	dirs := []string{
		Dir(name),
		LogDir(name),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0700); err != nil {
			return err
		}
	}
	return nil
}
