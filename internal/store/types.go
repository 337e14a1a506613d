package store

// MediaItem statuses. A failed item is not permanently terminal: a later
// re-scan and re-download may move it back to downloaded.
const (
	StatusRetrieved  = "retrieved"
	StatusDownloaded = "downloaded"
	StatusFailed     = "failed"
)

// Download log outcomes, one row per transfer attempt.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeRetry   = "retry"
)

// MessageRecord is the tracked state of one scanned message, keyed by
// (chat_id, message_id).
type MessageRecord struct {
	ChatID            int64
	MessageID         int
	ChatTitle         string
	SenderID          int64
	SenderName        string
	MessageDate       int64 // unix millis, UTC
	MessageText       string
	MediaType         string
	MediaFileName     string
	MediaFileSize     int64
	MediaMimeType     string
	HasMedia          bool
	Status            string
	LocalFilePath     string
	RetrievedHostname string
	Notes             string
}

// DownloadLogEntry is one immutable transfer attempt record.
type DownloadLogEntry struct {
	ID           int64
	ChatID       int64
	MessageID    int
	Attempt      int
	Outcome      string
	FilePath     string
	FileSize     int64
	ErrorMessage string
	Hostname     string
	LoggedAt     int64
}

// ActionLogEntry records coarse run-level bookkeeping (start/complete/fail
// of a whole scan-and-download run).
type ActionLogEntry struct {
	ID       int64
	RunID    string
	Action   string
	ChatID   int64
	Status   string
	Detail   string
	Hostname string
	LoggedAt int64
}
