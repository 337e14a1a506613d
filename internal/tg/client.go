// Package tg wraps the MTProto client: connection lifecycle, terminal
// authentication, chat resolution, history paging and file download. It is
// the only package that speaks the Telegram wire types; everything above it
// works with the media package's domain types.
package tg

import (
	"context"

	"github.com/gotd/td/telegram"
	tgproto "github.com/gotd/td/tg"
	"go.uber.org/zap"
)

// Client owns one MTProto connection bound to a session file.
type Client struct {
	tc    *telegram.Client
	api   *tgproto.Client
	phone string
}

// NewClient creates a client for the given API credentials. sessionPath is
// where the MTProto session is persisted between runs; phone seeds the auth
// flow when the session is not yet authorized.
func NewClient(apiID int, apiHash, sessionPath, phone string, logger *zap.Logger) *Client {
	tc := telegram.NewClient(apiID, apiHash, telegram.Options{
		SessionStorage: &FileSessionStorage{Path: sessionPath},
		Logger:         logger.Named("mtproto"),
	})
	return &Client{tc: tc, phone: phone}
}

// Run connects, authorizes if necessary, and invokes fn with a live client.
// The connection is torn down when fn returns.
func (c *Client) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.tc.Run(ctx, func(ctx context.Context) error {
		if err := c.authorize(ctx); err != nil {
			return err
		}
		c.api = c.tc.API()
		return fn(ctx)
	})
}

// API returns the raw MTProto API. Valid only inside Run.
func (c *Client) API() *tgproto.Client {
	return c.api
}
