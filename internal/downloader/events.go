package downloader

import "github.com/matheus3301/tgrab/internal/media"

// Bus event kinds published by the pipeline.
const (
	EventScanProgress     = "scan.progress"
	EventTransferStarted  = "transfer.started"
	EventTransferProgress = "transfer.progress"
	EventTransferDone     = "transfer.done"
	EventTransferFailed   = "transfer.failed"
)

// ScanProgress is the payload of scan.progress events.
type ScanProgress struct {
	Scanned int
	Matched int
}

// TransferStarted is the payload of transfer.started events.
type TransferStarted struct {
	Item  *media.Item
	Index int // 1-based position in the queue
	Total int
}

// TransferProgress is the payload of transfer.progress events.
type TransferProgress struct {
	Item    *media.Item
	Index   int
	Total   int
	Percent int
}

// TransferDone is the payload of transfer.done events.
type TransferDone struct {
	Item  *media.Item
	Index int
	Total int
	Bytes int64
	Path  string
}

// TransferFailed is the payload of transfer.failed events.
type TransferFailed struct {
	Item     *media.Item
	Index    int
	Total    int
	Attempts int
	Err      error
}
