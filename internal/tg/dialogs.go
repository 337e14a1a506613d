package tg

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gotd/td/tgerr"
	tgproto "github.com/gotd/td/tg"
)

const dialogPageSize = 100

// ChatNotFoundError means the reference matched none of the account's chats.
type ChatNotFoundError struct {
	Ref string
}

func (e *ChatNotFoundError) Error() string {
	return fmt.Sprintf("chat %q not found in this account's dialogs", e.Ref)
}

// ListDialogs pages through the full dialog list and returns every chat the
// account can read.
func (c *Client) ListDialogs(ctx context.Context) ([]Chat, error) {
	var out []Chat
	req := &tgproto.MessagesGetDialogsRequest{
		OffsetPeer: &tgproto.InputPeerEmpty{},
		Limit:      dialogPageSize,
	}

	for {
		res, err := c.api.MessagesGetDialogs(ctx, req)
		if err != nil {
			return nil, classifyRPC(err)
		}

		switch r := res.(type) {
		case *tgproto.MessagesDialogs:
			page := extractDialogPage(r.Dialogs, r.Users, r.Chats, r.Messages)
			return append(out, page.chats...), nil
		case *tgproto.MessagesDialogsSlice:
			page := extractDialogPage(r.Dialogs, r.Users, r.Chats, r.Messages)
			out = append(out, page.chats...)
			if len(r.Dialogs) < dialogPageSize || page.offsetPeer == nil {
				return out, nil
			}
			req.OffsetDate = page.offsetDate
			req.OffsetID = page.offsetID
			req.OffsetPeer = page.offsetPeer
		default:
			return out, nil
		}
	}
}

// ResolveChat turns a chat reference into a Chat. A reference is either an
// @username (resolved server-side) or a numeric id as printed by the chat
// listing; ids in the -100-prefixed convention are accepted too.
func (c *Client) ResolveChat(ctx context.Context, ref string) (Chat, error) {
	if strings.HasPrefix(ref, "@") {
		return c.resolveUsername(ctx, strings.TrimPrefix(ref, "@"))
	}

	id, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return c.resolveUsername(ctx, ref)
	}
	want := normalizeChatID(id)

	chats, err := c.ListDialogs(ctx)
	if err != nil {
		return Chat{}, err
	}
	for _, chat := range chats {
		if chat.ID == want {
			return chat, nil
		}
	}
	return Chat{}, &ChatNotFoundError{Ref: ref}
}

func (c *Client) resolveUsername(ctx context.Context, username string) (Chat, error) {
	res, err := c.api.ContactsResolveUsername(ctx, &tgproto.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		if tgerr.Is(err, "USERNAME_NOT_OCCUPIED", "USERNAME_INVALID") {
			return Chat{}, &ChatNotFoundError{Ref: "@" + username}
		}
		return Chat{}, classifyRPC(err)
	}

	switch peer := res.Peer.(type) {
	case *tgproto.PeerUser:
		for _, u := range res.Users {
			if user, ok := u.(*tgproto.User); ok && user.ID == peer.UserID {
				return Chat{
					ID:         user.ID,
					AccessHash: user.AccessHash,
					Title:      displayName(user.FirstName, user.LastName),
					Username:   username,
					Type:       ChatTypePrivate,
				}, nil
			}
		}
	case *tgproto.PeerChannel:
		for _, ch := range res.Chats {
			if channel, ok := ch.(*tgproto.Channel); ok && channel.ID == peer.ChannelID {
				t := ChatTypeGroup
				if channel.Broadcast {
					t = ChatTypeChannel
				}
				return Chat{
					ID:         channel.ID,
					AccessHash: channel.AccessHash,
					Title:      channel.Title,
					Username:   username,
					Type:       t,
				}, nil
			}
		}
	case *tgproto.PeerChat:
		for _, ch := range res.Chats {
			if group, ok := ch.(*tgproto.Chat); ok && group.ID == peer.ChatID {
				return Chat{ID: group.ID, Title: group.Title, Username: username, Type: ChatTypeGroup}, nil
			}
		}
	}
	return Chat{}, &ChatNotFoundError{Ref: "@" + username}
}

// normalizeChatID maps ids from the -100-prefixed channel convention and
// plain negative group ids onto the raw ids the API uses.
func normalizeChatID(id int64) int64 {
	if id >= 0 {
		return id
	}
	s := strconv.FormatInt(-id, 10)
	if strings.HasPrefix(s, "100") && len(s) > 3 {
		if raw, err := strconv.ParseInt(s[3:], 10, 64); err == nil {
			return raw
		}
	}
	return -id
}

type dialogPage struct {
	chats      []Chat
	offsetDate int
	offsetID   int
	offsetPeer tgproto.InputPeerClass
}

func extractDialogPage(dialogs []tgproto.DialogClass, users []tgproto.UserClass, chatClasses []tgproto.ChatClass, messages []tgproto.MessageClass) dialogPage {
	userMap := make(map[int64]*tgproto.User)
	for _, u := range users {
		if user, ok := u.(*tgproto.User); ok {
			userMap[user.ID] = user
		}
	}

	chatMap := make(map[int64]*tgproto.Chat)
	channelMap := make(map[int64]*tgproto.Channel)
	for _, ch := range chatClasses {
		switch v := ch.(type) {
		case *tgproto.Chat:
			chatMap[v.ID] = v
		case *tgproto.Channel:
			channelMap[v.ID] = v
		}
	}

	msgDates := make(map[int]int)
	for _, m := range messages {
		switch v := m.(type) {
		case *tgproto.Message:
			msgDates[v.ID] = v.Date
		case *tgproto.MessageService:
			msgDates[v.ID] = v.Date
		}
	}

	var page dialogPage
	for _, d := range dialogs {
		dialog, ok := d.(*tgproto.Dialog)
		if !ok {
			continue
		}

		var chat Chat
		switch peer := dialog.Peer.(type) {
		case *tgproto.PeerUser:
			user, exists := userMap[peer.UserID]
			if !exists {
				continue
			}
			chat = Chat{
				ID:         user.ID,
				AccessHash: user.AccessHash,
				Title:      displayName(user.FirstName, user.LastName),
				Username:   user.Username,
				Type:       ChatTypePrivate,
			}
		case *tgproto.PeerChat:
			group, exists := chatMap[peer.ChatID]
			if !exists {
				continue
			}
			chat = Chat{ID: group.ID, Title: group.Title, Type: ChatTypeGroup}
		case *tgproto.PeerChannel:
			channel, exists := channelMap[peer.ChannelID]
			if !exists {
				continue
			}
			chat = Chat{
				ID:         channel.ID,
				AccessHash: channel.AccessHash,
				Title:      channel.Title,
				Username:   channel.Username,
				Type:       ChatTypeGroup,
			}
			if channel.Broadcast {
				chat.Type = ChatTypeChannel
			}
		default:
			continue
		}

		page.chats = append(page.chats, chat)
		page.offsetPeer = chat.InputPeer()
		page.offsetID = dialog.TopMessage
		page.offsetDate = msgDates[dialog.TopMessage]
	}
	return page
}

func displayName(first, last string) string {
	if last == "" {
		return first
	}
	return strings.TrimSpace(first + " " + last)
}
