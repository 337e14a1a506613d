package tg

import (
	"strings"

	"github.com/gotd/td/tgerr"
	"github.com/matheus3301/tgrab/internal/downloader"
)

// classifyRPC maps Telegram RPC failures onto the transfer error taxonomy.
// Errors that are not RPC errors pass through for the generic classifier.
func classifyRPC(err error) error {
	if err == nil {
		return nil
	}
	rpcErr, ok := tgerr.As(err)
	if !ok {
		return err
	}

	switch {
	case rpcErr.Type == "FLOOD_WAIT" || rpcErr.Code == 420:
		return &downloader.TransientError{Err: err}
	case rpcErr.Code >= 500:
		return &downloader.TransientError{Err: err}
	case rpcErr.Code == 408 || rpcErr.Type == "TIMEOUT":
		return &downloader.TransientError{Err: err}
	case strings.HasPrefix(rpcErr.Type, "FILE_REFERENCE_"):
		// The stored file reference went stale; a plain retry resends the
		// same reference, so retrying cannot help within one run.
		return &downloader.SourceUnavailableError{Err: err}
	case rpcErr.IsOneOf("CHANNEL_PRIVATE", "CHAT_FORBIDDEN", "CHANNEL_INVALID",
		"MSG_ID_INVALID", "FILE_ID_INVALID", "LOCATION_INVALID", "MEDIA_EMPTY"):
		return &downloader.SourceUnavailableError{Err: err}
	case rpcErr.Code == 401 || rpcErr.Code == 403:
		return &downloader.PermanentError{Err: err}
	default:
		return err
	}
}
