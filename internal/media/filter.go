package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FilterError reports an invalid filter configuration supplied by the caller.
// It is fatal and surfaced before any scan begins.
type FilterError struct {
	Msg string
}

func (e *FilterError) Error() string {
	return "invalid filter: " + e.Msg
}

// Filter decides which scanned messages are eligible for download.
type Filter struct {
	Kinds      map[Kind]bool
	Start, End time.Time       // zero value = unbounded; both inclusive, UTC
	Extensions map[string]bool // nil = any; applies to documents only
}

// NewFilter builds a validated filter from the CLI-level selector
// (photo|video|document|both|all), a comma-separated extension list and an
// inclusive date range.
func NewFilter(selector, extensions string, start, end time.Time) (*Filter, error) {
	kinds, err := kindsFor(selector)
	if err != nil {
		return nil, err
	}

	var exts map[string]bool
	if extensions != "" {
		exts = make(map[string]bool)
		for _, raw := range strings.Split(extensions, ",") {
			ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(raw), "."))
			if ext == "" {
				return nil, &FilterError{Msg: fmt.Sprintf("empty extension in list %q", extensions)}
			}
			exts[ext] = true
		}
	}

	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, &FilterError{
			Msg: fmt.Sprintf("end date %s before start date %s",
				end.Format(time.DateOnly), start.Format(time.DateOnly)),
		}
	}

	return &Filter{Kinds: kinds, Start: start, End: end, Extensions: exts}, nil
}

func kindsFor(selector string) (map[Kind]bool, error) {
	switch selector {
	case "photo", "document":
		return map[Kind]bool{Kind(selector): true}, nil
	case "video":
		// GIFs travel as animated video documents; the video selector
		// covers them.
		return map[Kind]bool{KindVideo: true, KindAnimation: true}, nil
	case "both":
		return map[Kind]bool{KindPhoto: true, KindVideo: true, KindAnimation: true}, nil
	case "all":
		return map[Kind]bool{
			KindPhoto: true, KindVideo: true, KindAnimation: true,
			KindDocument: true, KindAudio: true, KindVoice: true, KindSticker: true,
		}, nil
	default:
		return nil, &FilterError{Msg: fmt.Sprintf("unknown media type %q", selector)}
	}
}

// InRange reports whether a message timestamp falls inside the date range.
func (f *Filter) InRange(t time.Time) bool {
	if !f.Start.IsZero() && t.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.After(f.End) {
		return false
	}
	return true
}

// Allows reports whether the item passes the kind, date and extension rules.
func (f *Filter) Allows(it *Item) bool {
	if it == nil || !it.Kind.Downloadable() {
		return false
	}
	if !f.Kinds[it.Kind] {
		return false
	}
	if !f.InRange(it.Date) {
		return false
	}
	if it.Kind == KindDocument {
		// Documents without an original filename carry no usable extension
		// and cannot be matched; they are skipped.
		if it.FileName == "" {
			return false
		}
		if f.Extensions != nil {
			ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(it.FileName), "."))
			if !f.Extensions[ext] {
				return false
			}
		}
	}
	return true
}

// ParseDate parses YYYY-MM-DD or "YYYY-MM-DD HH:MM:SS" as UTC. Date-only end
// bounds expand to the last second of that day so the range stays inclusive.
func ParseDate(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.UTC)
	if err != nil {
		return time.Time{}, &FilterError{Msg: fmt.Sprintf("invalid date %q: use YYYY-MM-DD or 'YYYY-MM-DD HH:MM:SS'", s)}
	}
	if endOfDay {
		t = t.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
	}
	return t, nil
}
