package media

import (
	"fmt"
	"path"
	"strings"
)

const timestampLayout = "20060102_150405"

// Filename derives the deterministic local filename for an item:
// <YYYYMMDD>_<HHMMSS>_<suffix>, where the suffix is the sanitized original
// filename when one exists, or msg<id> plus a derived extension otherwise.
// Timestamps are formatted in UTC so re-runs on differently configured
// machines produce identical names.
func Filename(it Item) string {
	ts := it.Date.UTC().Format(timestampLayout)

	if it.Kind == KindPhoto {
		return fmt.Sprintf("%s_msg%d.jpg", ts, it.MessageID)
	}

	if it.FileName != "" {
		return fmt.Sprintf("%s_%s", ts, SanitizeName(it.FileName))
	}
	return fmt.Sprintf("%s_msg%d.%s", ts, it.MessageID, extFromMime(it.MimeType, it.Kind))
}

// ChatDir returns the per-chat directory name: <sanitized title>_<chat id>.
// The chat id keeps two chats with the same display name apart.
func ChatDir(title string, chatID int64) string {
	if title == "" {
		return fmt.Sprintf("chat_%d", chatID)
	}
	return fmt.Sprintf("%s_%d", SanitizeName(title), chatID)
}

// SanitizeName strips path separators and control characters from a remote
// supplied name so it can never escape the chat directory.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == 0:
			b.WriteByte('_')
		case r < 0x20:
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		return "_"
	}
	return cleaned
}

func extFromMime(mime string, kind Kind) string {
	sub := mime
	if i := strings.IndexByte(mime, '/'); i >= 0 {
		sub = mime[i+1:]
	}
	switch sub {
	case "quicktime":
		return "mov"
	case "x-matroska":
		return "mkv"
	case "mpeg":
		if kind == KindAudio {
			return "mp3"
		}
		return "mpeg"
	case "":
		if kind == KindVideo || kind == KindAnimation {
			return "mp4"
		}
		return "bin"
	}
	// Subtypes like "ogg" or "mp4" map straight to an extension.
	return path.Base(sub)
}
