package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDir(t *testing.T) {
	home, _ := os.UserHomeDir()
	got := Dir("main")
	want := filepath.Join(home, ".tgrab", "sessions", "main")
	if got != want {
		t.Errorf("Dir(main) = %q, want %q", got, want)
	}
}

func TestTelegramSessionPath(t *testing.T) {
	got := TelegramSessionPath("test")
	if !strings.HasSuffix(got, filepath.Join("sessions", "test", "session.json")) {
		t.Errorf("TelegramSessionPath(test) = %q, want suffix sessions/test/session.json", got)
	}
}

func TestLockPath(t *testing.T) {
	got := LockPath("test")
	if !strings.HasSuffix(got, filepath.Join("sessions", "test", "LOCK")) {
		t.Errorf("LockPath(test) = %q, want suffix sessions/test/LOCK", got)
	}
}

func TestDefaultDBPathIsShared(t *testing.T) {
	got := DefaultDBPath()
	if strings.Contains(got, "sessions") {
		t.Errorf("DefaultDBPath() = %q, must not be session-scoped", got)
	}
	if !strings.HasSuffix(got, filepath.Join(".tgrab", "tgrab.db")) {
		t.Errorf("DefaultDBPath() = %q, want suffix .tgrab/tgrab.db", got)
	}
}
