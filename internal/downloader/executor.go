package downloader

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/matheus3301/tgrab/internal/media"
	"go.uber.org/zap"
)

const (
	// DefaultMaxAttempts is the total attempt budget per item, including
	// the first try.
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the fixed pause between attempts.
	DefaultRetryDelay = 2 * time.Second
)

// Fetcher resolves an item's remote reference and streams its bytes into w.
// progress may be called with (written, total); total is 0 when the remote
// size is unknown. Implemented by the Telegram client, faked in tests.
type Fetcher interface {
	Fetch(ctx context.Context, item *media.Item, w io.Writer, progress func(written, total int64)) error
}

// Executor performs a single item's transfer with retry-with-backoff.
type Executor struct {
	fetcher     Fetcher
	logger      *zap.Logger
	maxAttempts int
	retryDelay  time.Duration
}

// NewExecutor creates an executor with the default retry policy.
func NewExecutor(fetcher Fetcher, logger *zap.Logger) *Executor {
	return &Executor{
		fetcher:     fetcher,
		logger:      logger,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
}

// Transfer downloads one item to destPath and returns the full attempt
// history. The last attempt's outcome decides the item's final status.
// Bytes land in destPath only on success; a failed attempt writes to a
// temporary path that is removed, so no partial file ever sits at destPath.
// progress receives monotonically non-decreasing milestones, 100 last on
// success.
func (e *Executor) Transfer(ctx context.Context, item *media.Item, destPath string, progress func(pct int)) []Attempt {
	ms := newMilestones(progress)
	var attempts []Attempt

	for n := 1; n <= e.maxAttempts; n++ {
		if n > 1 {
			select {
			case <-time.After(e.retryDelay):
			case <-ctx.Done():
				// Attempt n never ran; the last entry already carries
				// its retry outcome.
				return attempts
			}
		}

		written, err := e.attempt(ctx, item, destPath, ms)
		if err == nil {
			attempts = append(attempts, Attempt{Number: n, Outcome: OutcomeSuccess, Bytes: written, At: time.Now()})
			ms.finish()
			return attempts
		}

		err = Classify(err)
		if isTransient(err) && n < e.maxAttempts {
			attempts = append(attempts, Attempt{Number: n, Outcome: OutcomeRetry, Err: err, At: time.Now()})
			e.logger.Warn("transfer attempt failed, retrying",
				zap.Int64("chat_id", item.ChatID),
				zap.Int("message_id", item.MessageID),
				zap.Int("attempt", n),
				zap.Error(err))
			continue
		}

		attempts = append(attempts, Attempt{Number: n, Outcome: OutcomeFailed, Err: err, At: time.Now()})
		return attempts
	}
	return attempts
}

func (e *Executor) attempt(ctx context.Context, item *media.Item, destPath string, ms *milestones) (int64, error) {
	tmpPath := destPath + ".part"
	f, err := os.Create(tmpPath)
	if err != nil {
		return 0, &PermanentError{Err: err}
	}

	ms.start()
	cw := &countingWriter{w: f}
	fetchErr := e.fetcher.Fetch(ctx, item, cw, ms.update)

	closeErr := f.Close()
	if fetchErr == nil {
		fetchErr = closeErr
	}
	if fetchErr != nil {
		_ = os.Remove(tmpPath)
		return 0, fetchErr
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return 0, &PermanentError{Err: err}
	}
	return cw.written, nil
}

type countingWriter struct {
	w       io.Writer
	written int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.written += int64(n)
	return n, err
}
