package tg

import (
	"context"
	"fmt"
	"io"

	tgproto "github.com/gotd/td/tg"
	"github.com/matheus3301/tgrab/internal/downloader"
	"github.com/matheus3301/tgrab/internal/media"
)

// chunkSize is the upload.getFile page size. Telegram requires a power of
// two and serves at most 1 MiB per call.
const chunkSize = 1024 * 1024

// Fetcher streams media bytes over MTProto. It implements the transfer
// executor's fetcher interface.
type Fetcher struct {
	api *tgproto.Client
}

// NewFetcher creates a fetcher over a live API.
func NewFetcher(api *tgproto.Client) *Fetcher {
	return &Fetcher{api: api}
}

// Fetch downloads item into w in 1 MiB chunks, reporting progress after each
// chunk. RPC failures come back classified for the retry policy.
func (f *Fetcher) Fetch(ctx context.Context, item *media.Item, w io.Writer, progress func(written, total int64)) error {
	loc, err := location(item)
	if err != nil {
		return err
	}

	var written int64
	offset := int64(0)
	for {
		res, err := f.api.UploadGetFile(ctx, &tgproto.UploadGetFileRequest{
			Location: loc,
			Offset:   offset,
			Limit:    chunkSize,
		})
		if err != nil {
			return classifyRPC(err)
		}

		file, ok := res.(*tgproto.UploadFile)
		if !ok {
			return &downloader.TransientError{Err: fmt.Errorf("unexpected upload.getFile response %T", res)}
		}
		if len(file.Bytes) == 0 {
			break
		}

		n, err := w.Write(file.Bytes)
		written += int64(n)
		if err != nil {
			return err
		}
		if progress != nil {
			progress(written, item.Size)
		}

		if len(file.Bytes) < chunkSize {
			break
		}
		offset += int64(len(file.Bytes))
	}
	return nil
}

func location(item *media.Item) (tgproto.InputFileLocationClass, error) {
	r := item.Remote
	switch {
	case r.PhotoID != 0:
		if r.PhotoThumbSize == "" {
			return nil, &downloader.SourceUnavailableError{Err: fmt.Errorf("photo %d has no downloadable size", r.PhotoID)}
		}
		return &tgproto.InputPhotoFileLocation{
			ID:            r.PhotoID,
			AccessHash:    r.PhotoAccessHash,
			FileReference: r.PhotoFileRef,
			ThumbSize:     r.PhotoThumbSize,
		}, nil
	case r.DocID != 0:
		return &tgproto.InputDocumentFileLocation{
			ID:            r.DocID,
			AccessHash:    r.DocAccessHash,
			FileReference: r.DocFileRef,
			ThumbSize:     "", // full file
		}, nil
	default:
		return nil, &downloader.SourceUnavailableError{Err: fmt.Errorf("message %d carries no remote file location", item.MessageID)}
	}
}
