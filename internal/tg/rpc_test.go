package tg

import (
	"errors"
	"testing"

	"github.com/gotd/td/tgerr"
	"github.com/matheus3301/tgrab/internal/downloader"
)

func TestClassifyRPC(t *testing.T) {
	tests := []struct {
		name string
		code int
		typ  string
		want string
	}{
		{"flood wait", 420, "FLOOD_WAIT_30", "transient"},
		{"internal", 500, "INTERDC_2_CALL_ERROR", "transient"},
		{"timeout", 408, "TIMEOUT", "transient"},
		{"stale file reference", 400, "FILE_REFERENCE_EXPIRED", "unavailable"},
		{"private channel", 400, "CHANNEL_PRIVATE", "unavailable"},
		{"forbidden chat", 400, "CHAT_FORBIDDEN", "unavailable"},
		{"unauthorized", 401, "AUTH_KEY_UNREGISTERED", "permanent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyRPC(tgerr.New(tt.code, tt.typ))
			var (
				tr *downloader.TransientError
				pe *downloader.PermanentError
				su *downloader.SourceUnavailableError
			)
			switch tt.want {
			case "transient":
				if !errors.As(got, &tr) {
					t.Errorf("got %v, want TransientError", got)
				}
			case "permanent":
				if !errors.As(got, &pe) {
					t.Errorf("got %v, want PermanentError", got)
				}
			case "unavailable":
				if !errors.As(got, &su) {
					t.Errorf("got %v, want SourceUnavailableError", got)
				}
			}
		})
	}
}

func TestClassifyRPCPassthrough(t *testing.T) {
	plain := errors.New("broken pipe")
	if got := classifyRPC(plain); got != plain {
		t.Errorf("non-RPC error should pass through, got %v", got)
	}
	if classifyRPC(nil) != nil {
		t.Error("nil should stay nil")
	}
}
