package store

import (
	"database/sql"
	"time"
)

// UpsertMessage inserts or updates a message record (idempotent on
// chat_id + message_id). A conflicting insert refreshes the mutable metadata
// and appends a re-scan note; it never touches the download status, so a row
// already marked downloaded stays downloaded across re-scans.
func (db *DB) UpsertMessage(m *MessageRecord) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO messages (
			chat_id, message_id, chat_title, sender_id, sender_name,
			message_date, message_text, media_type, media_file_name,
			media_file_size, media_mime_type, has_media, status,
			local_file_path, retrieved_hostname, retrieved_at, updated_at, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, '', ?, ?, ?, ?)
		ON CONFLICT(chat_id, message_id) DO UPDATE SET
			chat_title = excluded.chat_title,
			sender_name = excluded.sender_name,
			media_file_name = excluded.media_file_name,
			media_file_size = excluded.media_file_size,
			media_mime_type = excluded.media_mime_type,
			retrieved_hostname = excluded.retrieved_hostname,
			retrieved_at = excluded.retrieved_at,
			updated_at = excluded.updated_at,
			notes = messages.notes || ' | re-scanned from ' || excluded.retrieved_hostname`,
		m.ChatID, m.MessageID, m.ChatTitle, m.SenderID, m.SenderName,
		m.MessageDate, m.MessageText, m.MediaType, m.MediaFileName,
		m.MediaFileSize, m.MediaMimeType, m.HasMedia, StatusRetrieved,
		m.RetrievedHostname, now, now, m.Notes)
	return err
}

// MarkOutcome sets the current download status of a message record and, on
// success, the local file path.
func (db *DB) MarkOutcome(chatID int64, messageID int, status, localPath, hostname string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE messages
		SET status = ?,
			local_file_path = ?,
			updated_at = ?,
			notes = notes || ' | ' || ? || ' on ' || ?
		WHERE chat_id = ? AND message_id = ?`,
		status, localPath, now, status, hostname, chatID, messageID)
	return err
}

// GetMessage returns the record for (chatID, messageID), or nil if absent.
func (db *DB) GetMessage(chatID int64, messageID int) (*MessageRecord, error) {
	row := db.QueryRow(`
		SELECT chat_id, message_id, chat_title, sender_id, sender_name,
			message_date, message_text, media_type, media_file_name,
			media_file_size, media_mime_type, has_media, status,
			local_file_path, retrieved_hostname, notes
		FROM messages
		WHERE chat_id = ? AND message_id = ?`, chatID, messageID)

	var m MessageRecord
	err := row.Scan(&m.ChatID, &m.MessageID, &m.ChatTitle, &m.SenderID, &m.SenderName,
		&m.MessageDate, &m.MessageText, &m.MediaType, &m.MediaFileName,
		&m.MediaFileSize, &m.MediaMimeType, &m.HasMedia, &m.Status,
		&m.LocalFilePath, &m.RetrievedHostname, &m.Notes)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CountByStatus returns how many records a chat has in the given status.
func (db *DB) CountByStatus(chatID int64, status string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM messages WHERE chat_id = ? AND status = ?`,
		chatID, status).Scan(&n)
	return n, err
}
