package media

// Kind classifies a message attachment.
type Kind string

const (
	KindPhoto     Kind = "photo"
	KindVideo     Kind = "video"
	KindDocument  Kind = "document"
	KindAudio     Kind = "audio"
	KindVoice     Kind = "voice"
	KindSticker   Kind = "sticker"
	KindAnimation Kind = "animation"
	KindOther     Kind = "other"
	KindNone      Kind = "none"
)

// Downloadable reports whether items of this kind can be transferred at all.
// KindNone items are never enqueued.
func (k Kind) Downloadable() bool {
	return k != KindNone && k != ""
}
