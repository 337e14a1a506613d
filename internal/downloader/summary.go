package downloader

import (
	"fmt"
	"strings"
	"sync"

	"github.com/matheus3301/tgrab/internal/media"
)

// Failure keeps one item's final error for the run report.
type Failure struct {
	Item *media.Item
	Err  error
}

// Summary tallies a whole run. It is written by concurrent workers and is
// sourced from in-memory results, so it stays correct even when the tracking
// store is unreachable.
type Summary struct {
	mu sync.Mutex

	Scanned    int // messages seen during Phase 1
	Skipped    int // messages without media or rejected by the filter
	Matched    int // items enqueued for transfer
	Downloaded int
	Failed     int
	Bytes      int64

	ByKind   map[media.Kind]int // downloaded counts per kind
	Failures []Failure

	TrackingErrors int // best-effort tracking writes that failed
	Dir            string
}

func newSummary(dir string) *Summary {
	return &Summary{ByKind: make(map[media.Kind]int), Dir: dir}
}

func (s *Summary) addDownload(kind media.Kind, bytes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Downloaded++
	s.ByKind[kind]++
	s.Bytes += bytes
}

func (s *Summary) addFailure(item *media.Item, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Failed++
	s.Failures = append(s.Failures, Failure{Item: item, Err: err})
}

func (s *Summary) trackingError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.TrackingErrors++
}

// String renders the end-of-run report.
func (s *Summary) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	line := strings.Repeat("=", 50)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "Download Summary:")
	fmt.Fprintf(&b, "Messages scanned:     %d\n", s.Scanned)
	fmt.Fprintf(&b, "Skipped by filter:    %d\n", s.Skipped)
	kindLabels := []struct {
		kind  media.Kind
		label string
	}{
		{media.KindPhoto, "Photos downloaded:"},
		{media.KindVideo, "Videos downloaded:"},
		{media.KindDocument, "Documents downloaded:"},
	}
	for _, kl := range kindLabels {
		if n, ok := s.ByKind[kl.kind]; ok {
			fmt.Fprintf(&b, "%-21s %d\n", kl.label, n)
		}
	}
	fmt.Fprintf(&b, "Downloaded:           %d (%s)\n", s.Downloaded, formatBytes(s.Bytes))
	fmt.Fprintf(&b, "Failed:               %d\n", s.Failed)
	for _, f := range s.Failures {
		fmt.Fprintf(&b, "  msg %d: %v\n", f.Item.MessageID, f.Err)
	}
	if s.TrackingErrors > 0 {
		fmt.Fprintf(&b, "Tracking store writes failed: %d (run continued without tracking)\n", s.TrackingErrors)
	}
	fmt.Fprintf(&b, "Saved to: %s\n", s.Dir)
	fmt.Fprint(&b, line)
	return b.String()
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/float64(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
