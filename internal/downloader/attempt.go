package downloader

import "time"

// Outcome is the result of one transfer attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeRetry   Outcome = "retry" // non-final failed attempt, another follows
)

// Attempt is one execution of a download for an item. Attempts form an
// append-only history; only the last one decides the item's final status.
type Attempt struct {
	Number  int // 1-based
	Outcome Outcome
	Err     error // set iff Outcome != success
	Bytes   int64 // set iff Outcome == success
	At      time.Time
}

// Succeeded reports whether the attempt history ends in a successful
// transfer.
func Succeeded(attempts []Attempt) bool {
	return len(attempts) > 0 && attempts[len(attempts)-1].Outcome == OutcomeSuccess
}
