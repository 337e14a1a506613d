package media

import "time"

// Remote holds the Telegram file location of an item. Photos and documents
// use disjoint field sets; exactly one of PhotoID/DocID is non-zero for a
// downloadable item.
type Remote struct {
	PhotoID         int64
	PhotoAccessHash int64
	PhotoFileRef    []byte
	PhotoThumbSize  string

	DocID         int64
	DocAccessHash int64
	DocFileRef    []byte
}

// Item is one downloadable unit extracted from a message. Its identity is
// (ChatID, MessageID); the tracking store keys rows by that pair.
type Item struct {
	ChatID    int64
	ChatTitle string
	MessageID int

	Kind     Kind
	FileName string // original filename from document attributes, may be empty
	Size     int64  // 0 = unknown until the transfer starts
	MimeType string
	Date     time.Time // message timestamp, always UTC

	Remote Remote
}

// Message is a scanned chat message. Item is nil when the message carries no
// media the downloader understands.
type Message struct {
	ChatID     int64
	ID         int
	SenderID   int64
	SenderName string
	Text       string
	Date       time.Time

	Item *Item
}
