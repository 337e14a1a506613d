// Package track adapts the SQLite store to the pipeline's best-effort
// tracking interface. Every write carries hostname provenance and the
// run id, so histories from multiple machines sharing one database stay
// attributable.
package track

import (
	"errors"

	"github.com/google/uuid"
	"github.com/matheus3301/tgrab/internal/downloader"
	"github.com/matheus3301/tgrab/internal/media"
	"github.com/matheus3301/tgrab/internal/store"
)

// ErrUnavailable is returned by every method of a disabled tracker. The
// pipeline treats it like any other tracking failure: log, count, continue.
var ErrUnavailable = errors.New("tracking store unavailable")

// Tracker implements downloader.TrackingSink on top of the shared store.
// A Tracker with no database (see Disabled) satisfies the interface but
// refuses every write, which keeps the pipeline usable when the store
// cannot be opened.
type Tracker struct {
	db       *store.DB
	hostname string
	runID    string
}

// New creates a tracker bound to db. Each Tracker gets a fresh run id;
// all action log rows written through it share that id.
func New(db *store.DB, hostname string) *Tracker {
	return &Tracker{db: db, hostname: hostname, runID: uuid.NewString()}
}

// Disabled creates a tracker whose writes all fail with ErrUnavailable.
func Disabled(hostname string) *Tracker {
	return &Tracker{hostname: hostname, runID: uuid.NewString()}
}

// Enabled reports whether the tracker has a backing store.
func (t *Tracker) Enabled() bool { return t.db != nil }

// RunID returns the identifier shared by this run's action log rows.
func (t *Tracker) RunID() string { return t.runID }

// RecordSeen upserts the scanned item. Re-recording an already tracked
// message refreshes its metadata and provenance without touching its
// download status.
func (t *Tracker) RecordSeen(item *media.Item) error {
	if t.db == nil {
		return ErrUnavailable
	}
	return t.db.UpsertMessage(&store.MessageRecord{
		ChatID:            item.ChatID,
		MessageID:         item.MessageID,
		ChatTitle:         item.ChatTitle,
		MessageDate:       item.Date.UTC().UnixMilli(),
		MediaType:         string(item.Kind),
		MediaFileName:     item.FileName,
		MediaFileSize:     item.Size,
		MediaMimeType:     item.MimeType,
		HasMedia:          true,
		Status:            store.StatusRetrieved,
		RetrievedHostname: t.hostname,
	})
}

// RecordOutcome appends one download log row per attempt and moves the
// message to its terminal status. localPath is empty for failed items.
func (t *Tracker) RecordOutcome(item *media.Item, attempts []downloader.Attempt, localPath string) error {
	if t.db == nil {
		return ErrUnavailable
	}

	var firstErr error
	for _, a := range attempts {
		entry := &store.DownloadLogEntry{
			ChatID:    item.ChatID,
			MessageID: item.MessageID,
			Attempt:   a.Number,
			Outcome:   string(a.Outcome),
			Hostname:  t.hostname,
		}
		if a.Outcome == downloader.OutcomeSuccess {
			entry.FilePath = localPath
			entry.FileSize = a.Bytes
		} else if a.Err != nil {
			entry.ErrorMessage = a.Err.Error()
		}
		if err := t.db.AppendDownloadLog(entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	status := store.StatusFailed
	if downloader.Succeeded(attempts) {
		status = store.StatusDownloaded
	}
	if err := t.db.MarkOutcome(item.ChatID, item.MessageID, status, localPath, t.hostname); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// RecordRun appends a run-level action log row.
func (t *Tracker) RecordRun(chatID int64, status, detail string) error {
	if t.db == nil {
		return ErrUnavailable
	}
	return t.db.AppendActionLog(&store.ActionLogEntry{
		RunID:    t.runID,
		Action:   "download",
		ChatID:   chatID,
		Status:   status,
		Detail:   detail,
		Hostname: t.hostname,
	})
}
