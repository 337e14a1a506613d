package tg

import (
	"time"

	tgproto "github.com/gotd/td/tg"
	"github.com/matheus3301/tgrab/internal/media"
)

// buildMessage converts one wire message into the domain message, with a
// nil Item when the message carries nothing downloadable.
func buildMessage(chat Chat, msg *tgproto.Message, userMap map[int64]*tgproto.User) *media.Message {
	senderID := int64(0)
	senderName := ""
	if msg.FromID != nil {
		if peer, ok := msg.FromID.(*tgproto.PeerUser); ok {
			senderID = peer.UserID
			if u, exists := userMap[peer.UserID]; exists {
				senderName = displayName(u.FirstName, u.LastName)
			}
		}
	}

	return &media.Message{
		ChatID:     chat.ID,
		ID:         msg.ID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       msg.Message,
		Date:       time.Unix(int64(msg.Date), 0).UTC(),
		Item:       extractItem(chat, msg),
	}
}

// extractItem classifies the message's media and captures the remote file
// location needed to download it later.
func extractItem(chat Chat, msg *tgproto.Message) *media.Item {
	if msg.Media == nil {
		return nil
	}

	base := media.Item{
		ChatID:    chat.ID,
		ChatTitle: chat.Title,
		MessageID: msg.ID,
		Date:      time.Unix(int64(msg.Date), 0).UTC(),
	}

	switch m := msg.Media.(type) {
	case *tgproto.MessageMediaPhoto:
		photo, ok := m.Photo.(*tgproto.Photo)
		if !ok {
			return nil
		}
		thumb, size := largestPhotoSize(photo.Sizes)
		if thumb == "" {
			return nil
		}
		item := base
		item.Kind = media.KindPhoto
		item.Size = size
		item.MimeType = "image/jpeg"
		item.Remote = media.Remote{
			PhotoID:         photo.ID,
			PhotoAccessHash: photo.AccessHash,
			PhotoFileRef:    photo.FileReference,
			PhotoThumbSize:  thumb,
		}
		return &item

	case *tgproto.MessageMediaDocument:
		doc, ok := m.Document.(*tgproto.Document)
		if !ok {
			return nil
		}
		item := base
		item.Kind = classifyDocument(doc)
		item.FileName = documentFileName(doc)
		item.Size = doc.Size
		item.MimeType = doc.MimeType
		item.Remote = media.Remote{
			DocID:         doc.ID,
			DocAccessHash: doc.AccessHash,
			DocFileRef:    doc.FileReference,
		}
		return &item

	case *tgproto.MessageMediaWebPage, *tgproto.MessageMediaEmpty, *tgproto.MessageMediaUnsupported:
		return nil
	}

	// Contacts, locations, polls and the like are media without a file
	// behind them. They are classified so the scan can count them, but no
	// selector ever enqueues them.
	item := base
	item.Kind = media.KindOther
	return &item
}

func classifyDocument(doc *tgproto.Document) media.Kind {
	var isAnimated, isVideo bool
	for _, attr := range doc.Attributes {
		switch a := attr.(type) {
		case *tgproto.DocumentAttributeSticker:
			return media.KindSticker
		case *tgproto.DocumentAttributeAnimated:
			isAnimated = true
		case *tgproto.DocumentAttributeAudio:
			if a.Voice {
				return media.KindVoice
			}
			return media.KindAudio
		case *tgproto.DocumentAttributeVideo:
			isVideo = true
		}
	}
	switch {
	case isAnimated:
		return media.KindAnimation
	case isVideo:
		return media.KindVideo
	default:
		return media.KindDocument
	}
}

func documentFileName(doc *tgproto.Document) string {
	for _, attr := range doc.Attributes {
		if a, ok := attr.(*tgproto.DocumentAttributeFilename); ok {
			return a.FileName
		}
	}
	return ""
}

// largestPhotoSize picks the biggest available size for full quality.
func largestPhotoSize(sizes []tgproto.PhotoSizeClass) (thumbType string, size int64) {
	var best *tgproto.PhotoSize
	for _, s := range sizes {
		if sz, ok := s.(*tgproto.PhotoSize); ok {
			if best == nil || sz.W*sz.H > best.W*best.H {
				best = sz
			}
		}
	}
	if best != nil {
		return best.Type, int64(best.Size)
	}
	for _, s := range sizes {
		switch sz := s.(type) {
		case *tgproto.PhotoCachedSize:
			return sz.Type, int64(len(sz.Bytes))
		case *tgproto.PhotoStrippedSize:
			return sz.Type, 0
		}
	}
	return "", 0
}
