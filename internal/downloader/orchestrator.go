package downloader

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/matheus3301/tgrab/internal/bus"
	"github.com/matheus3301/tgrab/internal/media"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of simultaneous in-flight transfers.
const DefaultConcurrency = 5

// MessageSource supplies the ordered message stream of one chat. fn is
// called once per message, newest first; returning an error stops the scan.
type MessageSource interface {
	Messages(ctx context.Context, fn func(*media.Message) error) error
}

// TrackingSink is the capability interface to the shared tracking store.
// Every call is best-effort: implementations report failures but the
// pipeline log-and-continues on them, it never aborts.
type TrackingSink interface {
	RecordSeen(item *media.Item) error
	RecordOutcome(item *media.Item, attempts []Attempt, localPath string) error
	RecordRun(chatID int64, status, detail string) error
}

// Request describes one scan-and-download run.
type Request struct {
	ChatID      int64
	Filter      *media.Filter
	ChatDir     string // destination directory, created by the caller
	Concurrency int    // 0 = DefaultConcurrency
}

// Orchestrator drives the two-phase pipeline: a sequential scan of the
// message stream, then a bounded worker pool draining the matched items.
type Orchestrator struct {
	exec   *Executor
	sink   TrackingSink
	bus    *bus.Bus
	logger *zap.Logger
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(exec *Executor, sink TrackingSink, b *bus.Bus, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{exec: exec, sink: sink, bus: b, logger: logger}
}

// Run executes a full run against source. Per-item failures are contained
// in the Summary; the returned error is non-nil only for configuration
// errors, a failed scan, or cancellation. The queue is drained to exhaustion
// before the run completes.
func (o *Orchestrator) Run(ctx context.Context, source MessageSource, req Request) (*Summary, error) {
	if req.Filter == nil {
		return nil, &media.FilterError{Msg: "no filter supplied"}
	}
	concurrency := req.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	summary := newSummary(req.ChatDir)
	o.track(summary, func() error {
		return o.sink.RecordRun(req.ChatID, "started", "")
	})

	queue, err := o.scan(ctx, source, req, summary)
	if err != nil {
		o.track(summary, func() error {
			return o.sink.RecordRun(req.ChatID, "failed", fmt.Sprintf("scan: %v", err))
		})
		return summary, fmt.Errorf("scan: %w", err)
	}

	runErr := o.transfer(ctx, queue, req, concurrency, summary)

	status := "completed"
	if runErr != nil {
		status = "failed"
	}
	o.track(summary, func() error {
		return o.sink.RecordRun(req.ChatID, status,
			fmt.Sprintf("%d downloaded, %d failed, %d bytes", summary.Downloaded, summary.Failed, summary.Bytes))
	})
	return summary, runErr
}

// scan is Phase 1: iterate, classify, filter, record-seen, enqueue. Items
// are recorded in the tracking store before they are enqueued.
func (o *Orchestrator) scan(ctx context.Context, source MessageSource, req Request, summary *Summary) ([]*media.Item, error) {
	var queue []*media.Item

	err := source.Messages(ctx, func(m *media.Message) error {
		summary.Scanned++
		if summary.Scanned%500 == 0 {
			o.publish(EventScanProgress, ScanProgress{Scanned: summary.Scanned, Matched: summary.Matched})
		}

		if m.Item == nil || !req.Filter.Allows(m.Item) {
			summary.Skipped++
			return nil
		}

		o.track(summary, func() error { return o.sink.RecordSeen(m.Item) })
		queue = append(queue, m.Item)
		summary.Matched++
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.publish(EventScanProgress, ScanProgress{Scanned: summary.Scanned, Matched: summary.Matched})
	return queue, nil
}

// transfer is Phase 2: drain the queue through a pool bounded at exactly
// concurrency in-flight transfers. Workers complete out of enqueue order;
// an item's failure never affects its siblings.
func (o *Orchestrator) transfer(ctx context.Context, queue []*media.Item, req Request, concurrency int, summary *Summary) error {
	total := len(queue)
	g := new(errgroup.Group)
	g.SetLimit(concurrency)

	var cancelled bool
	for i, item := range queue {
		// Cancellation is honored between dequeues: in-flight transfers
		// finish their current attempt, the rest of the queue is abandoned.
		if ctx.Err() != nil {
			cancelled = true
			break
		}
		index := i + 1
		item := item
		g.Go(func() error {
			o.process(ctx, item, index, total, req, summary)
			return nil
		})
	}
	_ = g.Wait()

	if cancelled {
		o.logger.Info("run cancelled, queue abandoned",
			zap.Int("remaining", total-summary.Downloaded-summary.Failed))
		return ctx.Err()
	}
	return nil
}

func (o *Orchestrator) process(ctx context.Context, item *media.Item, index, total int, req Request, summary *Summary) {
	destPath := filepath.Join(req.ChatDir, media.Filename(*item))
	o.publish(EventTransferStarted, TransferStarted{Item: item, Index: index, Total: total})

	attempts := o.exec.Transfer(ctx, item, destPath, func(pct int) {
		o.publish(EventTransferProgress, TransferProgress{Item: item, Index: index, Total: total, Percent: pct})
	})

	if Succeeded(attempts) {
		last := attempts[len(attempts)-1]
		summary.addDownload(item.Kind, last.Bytes)
		o.track(summary, func() error { return o.sink.RecordOutcome(item, attempts, destPath) })
		o.publish(EventTransferDone, TransferDone{Item: item, Index: index, Total: total, Bytes: last.Bytes, Path: destPath})
		return
	}

	last := attempts[len(attempts)-1]
	summary.addFailure(item, last.Err)
	o.logger.Error("transfer failed",
		zap.Int64("chat_id", item.ChatID),
		zap.Int("message_id", item.MessageID),
		zap.Int("attempts", len(attempts)),
		zap.Error(last.Err))
	o.track(summary, func() error { return o.sink.RecordOutcome(item, attempts, "") })
	o.publish(EventTransferFailed, TransferFailed{Item: item, Index: index, Total: total, Attempts: len(attempts), Err: last.Err})
}

// track runs a best-effort tracking-store write. A failure degrades
// observability only; it is logged and counted, never propagated.
func (o *Orchestrator) track(summary *Summary, fn func() error) {
	if err := fn(); err != nil {
		summary.trackingError()
		o.logger.Warn("tracking store write failed, continuing", zap.Error(err))
	}
}

func (o *Orchestrator) publish(kind string, payload any) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(bus.Event{Kind: kind, Timestamp: time.Now(), Payload: payload})
}
