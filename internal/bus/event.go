package bus

import "time"

// Event represents a domain event published on the bus. Payload types are
// owned by the publishing package (see downloader.ScanProgress and friends).
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}
