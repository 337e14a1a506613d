package tg

import (
	"context"

	tgproto "github.com/gotd/td/tg"
	"github.com/matheus3301/tgrab/internal/media"
)

const historyPageSize = 100

// HistorySource streams one chat's full message history, newest first, a
// page at a time. It implements the download pipeline's message source.
type HistorySource struct {
	api  *tgproto.Client
	chat Chat
}

// NewHistorySource creates a source over chat's history.
func NewHistorySource(api *tgproto.Client, chat Chat) *HistorySource {
	return &HistorySource{api: api, chat: chat}
}

// Messages walks the history until it is exhausted or fn returns an error.
func (h *HistorySource) Messages(ctx context.Context, fn func(*media.Message) error) error {
	offsetID := 0
	for {
		res, err := h.api.MessagesGetHistory(ctx, &tgproto.MessagesGetHistoryRequest{
			Peer:     h.chat.InputPeer(),
			OffsetID: offsetID,
			Limit:    historyPageSize,
		})
		if err != nil {
			return classifyRPC(err)
		}

		var batch []tgproto.MessageClass
		var users []tgproto.UserClass
		switch r := res.(type) {
		case *tgproto.MessagesMessages:
			batch, users = r.Messages, r.Users
		case *tgproto.MessagesMessagesSlice:
			batch, users = r.Messages, r.Users
		case *tgproto.MessagesChannelMessages:
			batch, users = r.Messages, r.Users
		default:
			return nil
		}
		if len(batch) == 0 {
			return nil
		}

		userMap := make(map[int64]*tgproto.User)
		for _, u := range users {
			if user, ok := u.(*tgproto.User); ok {
				userMap[user.ID] = user
			}
		}

		for _, mc := range batch {
			id := mc.GetID()
			if offsetID == 0 || id < offsetID {
				offsetID = id
			}
			msg, ok := mc.(*tgproto.Message)
			if !ok {
				// Service messages and holes still advance the offset.
				continue
			}
			if err := fn(buildMessage(h.chat, msg, userMap)); err != nil {
				return err
			}
		}

		if len(batch) < historyPageSize {
			return nil
		}
	}
}
