package store

import "time"

// AppendDownloadLog appends one immutable transfer attempt row. History rows
// are never updated or deleted.
func (db *DB) AppendDownloadLog(e *DownloadLogEntry) error {
	_, err := db.Exec(`
		INSERT INTO download_log (chat_id, message_id, attempt, outcome, file_path, file_size, error_message, hostname, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ChatID, e.MessageID, e.Attempt, e.Outcome, e.FilePath, e.FileSize,
		e.ErrorMessage, e.Hostname, time.Now().UnixMilli())
	return err
}

// ListDownloadLog returns the attempt history for one message, oldest first.
func (db *DB) ListDownloadLog(chatID int64, messageID int) ([]DownloadLogEntry, error) {
	rows, err := db.Query(`
		SELECT id, chat_id, message_id, attempt, outcome, file_path, file_size, error_message, hostname, logged_at
		FROM download_log
		WHERE chat_id = ? AND message_id = ?
		ORDER BY id`, chatID, messageID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []DownloadLogEntry
	for rows.Next() {
		var e DownloadLogEntry
		if err := rows.Scan(&e.ID, &e.ChatID, &e.MessageID, &e.Attempt, &e.Outcome,
			&e.FilePath, &e.FileSize, &e.ErrorMessage, &e.Hostname, &e.LoggedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// AppendActionLog records one run-level bookkeeping row.
func (db *DB) AppendActionLog(e *ActionLogEntry) error {
	_, err := db.Exec(`
		INSERT INTO action_log (run_id, action, chat_id, status, detail, hostname, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Action, e.ChatID, e.Status, e.Detail, e.Hostname, time.Now().UnixMilli())
	return err
}

// ListActionLog returns the rows for one run, oldest first.
func (db *DB) ListActionLog(runID string) ([]ActionLogEntry, error) {
	rows, err := db.Query(`
		SELECT id, run_id, action, chat_id, status, detail, hostname, logged_at
		FROM action_log
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []ActionLogEntry
	for rows.Next() {
		var e ActionLogEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.Action, &e.ChatID, &e.Status,
			&e.Detail, &e.Hostname, &e.LoggedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
