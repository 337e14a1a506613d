package app

import (
	"fmt"
	"io"
	"os"

	"github.com/matheus3301/tgrab/internal/bus"
	"github.com/matheus3301/tgrab/internal/downloader"
	"github.com/matheus3301/tgrab/internal/media"
)

// reporter subscribes to pipeline events and narrates the run on stdout.
type reporter struct {
	bus  *bus.Bus
	out  io.Writer
	done chan struct{}
}

func newReporter(b *bus.Bus) *reporter {
	return &reporter{bus: b, out: os.Stdout, done: make(chan struct{})}
}

func (r *reporter) start() {
	ch, unsub := r.bus.Subscribe("", 256)
	go func() {
		defer unsub()
		for {
			select {
			case evt := <-ch:
				r.render(evt)
			case <-r.done:
				return
			}
		}
	}()
}

func (r *reporter) stop() {
	close(r.done)
}

func (r *reporter) render(evt bus.Event) {
	switch p := evt.Payload.(type) {
	case downloader.ScanProgress:
		fmt.Fprintf(r.out, "Scanned %d messages, %d matched...\n", p.Scanned, p.Matched)
	case downloader.TransferStarted:
		fmt.Fprintf(r.out, "[%d/%d] %s %s\n", p.Index, p.Total, p.Item.Kind, itemLabel(p.Item))
	case downloader.TransferProgress:
		fmt.Fprintf(r.out, "[%d/%d] %s %d%%\n", p.Index, p.Total, itemLabel(p.Item), p.Percent)
	case downloader.TransferDone:
		fmt.Fprintf(r.out, "[%d/%d] saved %s\n", p.Index, p.Total, p.Path)
	case downloader.TransferFailed:
		fmt.Fprintf(r.out, "[%d/%d] failed %s after %d attempts: %v\n", p.Index, p.Total, itemLabel(p.Item), p.Attempts, p.Err)
	}
}

func itemLabel(it *media.Item) string {
	if it.FileName != "" {
		return it.FileName
	}
	return fmt.Sprintf("message %d", it.MessageID)
}
