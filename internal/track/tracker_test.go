package track

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/tgrab/internal/downloader"
	"github.com/matheus3301/tgrab/internal/media"
	"github.com/matheus3301/tgrab/internal/store"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "track.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	return db
}

func testItem() *media.Item {
	return &media.Item{
		ChatID:    -100123,
		ChatTitle: "Family",
		MessageID: 42,
		Kind:      media.KindPhoto,
		Size:      2048,
		MimeType:  "image/jpeg",
		Date:      time.Date(2024, 3, 15, 12, 30, 45, 0, time.UTC),
	}
}

func TestRecordSeenUpserts(t *testing.T) {
	db := testDB(t)
	tr := New(db, "laptop")
	item := testItem()

	if err := tr.RecordSeen(item); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordSeen(item); err != nil {
		t.Fatal(err)
	}

	rec, err := db.GetMessage(item.ChatID, item.MessageID)
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil {
		t.Fatal("record not found after RecordSeen")
	}
	if rec.Status != store.StatusRetrieved {
		t.Errorf("status = %q, want %q", rec.Status, store.StatusRetrieved)
	}
	if rec.MediaType != string(media.KindPhoto) {
		t.Errorf("media type = %q, want photo", rec.MediaType)
	}
	if rec.RetrievedHostname != "laptop" {
		t.Errorf("hostname = %q, want laptop", rec.RetrievedHostname)
	}
	if n, _ := db.CountByStatus(item.ChatID, store.StatusRetrieved); n != 1 {
		t.Errorf("retrieved count = %d, want 1 after double RecordSeen", n)
	}
}

func TestRecordOutcomeSuccess(t *testing.T) {
	db := testDB(t)
	tr := New(db, "laptop")
	item := testItem()

	if err := tr.RecordSeen(item); err != nil {
		t.Fatal(err)
	}
	attempts := []downloader.Attempt{
		{Number: 1, Outcome: downloader.OutcomeRetry, Err: errors.New("timeout"), At: time.Now()},
		{Number: 2, Outcome: downloader.OutcomeSuccess, Bytes: 2048, At: time.Now()},
	}
	if err := tr.RecordOutcome(item, attempts, "/tmp/out/photo.jpg"); err != nil {
		t.Fatal(err)
	}

	rec, err := db.GetMessage(item.ChatID, item.MessageID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != store.StatusDownloaded {
		t.Errorf("status = %q, want downloaded", rec.Status)
	}
	if rec.LocalFilePath != "/tmp/out/photo.jpg" {
		t.Errorf("local path = %q", rec.LocalFilePath)
	}

	log, err := db.ListDownloadLog(item.ChatID, item.MessageID)
	if err != nil {
		t.Fatal(err)
	}
	if len(log) != 2 {
		t.Fatalf("log rows = %d, want one per attempt", len(log))
	}
	if log[0].Outcome != store.OutcomeRetry || log[0].ErrorMessage != "timeout" {
		t.Errorf("first row = %+v, want retry with error message", log[0])
	}
	if log[1].Outcome != store.OutcomeSuccess || log[1].FileSize != 2048 || log[1].FilePath == "" {
		t.Errorf("second row = %+v, want success with size and path", log[1])
	}
}

func TestRecordOutcomeFailure(t *testing.T) {
	db := testDB(t)
	tr := New(db, "laptop")
	item := testItem()

	if err := tr.RecordSeen(item); err != nil {
		t.Fatal(err)
	}
	attempts := []downloader.Attempt{
		{Number: 1, Outcome: downloader.OutcomeRetry, Err: errors.New("timeout"), At: time.Now()},
		{Number: 2, Outcome: downloader.OutcomeRetry, Err: errors.New("timeout"), At: time.Now()},
		{Number: 3, Outcome: downloader.OutcomeFailed, Err: errors.New("timeout"), At: time.Now()},
	}
	if err := tr.RecordOutcome(item, attempts, ""); err != nil {
		t.Fatal(err)
	}

	rec, err := db.GetMessage(item.ChatID, item.MessageID)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Status != store.StatusFailed {
		t.Errorf("status = %q, want failed", rec.Status)
	}
	if log, _ := db.ListDownloadLog(item.ChatID, item.MessageID); len(log) != 3 {
		t.Errorf("log rows = %d, want 3", len(log))
	}
}

func TestRecordRunSharesRunID(t *testing.T) {
	db := testDB(t)
	tr := New(db, "laptop")

	if err := tr.RecordRun(-100123, "started", ""); err != nil {
		t.Fatal(err)
	}
	if err := tr.RecordRun(-100123, "completed", "3 downloaded, 0 failed, 6144 bytes"); err != nil {
		t.Fatal(err)
	}

	rows, err := db.ListActionLog(tr.RunID())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("action rows = %d, want 2", len(rows))
	}
	if rows[0].Status != "started" || rows[1].Status != "completed" {
		t.Errorf("statuses = %q, %q", rows[0].Status, rows[1].Status)
	}
	if rows[0].Action != "download" {
		t.Errorf("action = %q, want download", rows[0].Action)
	}
}

func TestDisabledTracker(t *testing.T) {
	tr := Disabled("laptop")
	if tr.Enabled() {
		t.Error("disabled tracker reports enabled")
	}
	if err := tr.RecordSeen(testItem()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("RecordSeen err = %v, want ErrUnavailable", err)
	}
	if err := tr.RecordOutcome(testItem(), nil, ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("RecordOutcome err = %v, want ErrUnavailable", err)
	}
	if err := tr.RecordRun(1, "started", ""); !errors.Is(err, ErrUnavailable) {
		t.Errorf("RecordRun err = %v, want ErrUnavailable", err)
	}
}
