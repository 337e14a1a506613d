package tg

import tgproto "github.com/gotd/td/tg"

// ChatType distinguishes the three peer flavors with different input peers.
type ChatType int

const (
	ChatTypePrivate ChatType = iota
	ChatTypeGroup
	ChatTypeChannel
)

func (t ChatType) String() string {
	switch t {
	case ChatTypePrivate:
		return "private"
	case ChatTypeGroup:
		return "group"
	case ChatTypeChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// Chat is a resolved conversation the account can read.
type Chat struct {
	ID         int64
	AccessHash int64
	Title      string
	Username   string
	Type       ChatType
}

// InputPeer builds the wire peer for API calls against this chat.
func (c Chat) InputPeer() tgproto.InputPeerClass {
	switch c.Type {
	case ChatTypePrivate:
		return &tgproto.InputPeerUser{UserID: c.ID, AccessHash: c.AccessHash}
	case ChatTypeGroup:
		if c.AccessHash != 0 {
			return &tgproto.InputPeerChannel{ChannelID: c.ID, AccessHash: c.AccessHash}
		}
		return &tgproto.InputPeerChat{ChatID: c.ID}
	case ChatTypeChannel:
		return &tgproto.InputPeerChannel{ChannelID: c.ID, AccessHash: c.AccessHash}
	default:
		return &tgproto.InputPeerEmpty{}
	}
}
