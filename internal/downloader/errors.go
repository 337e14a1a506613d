package downloader

import (
	"context"
	"errors"
	"io/fs"
	"net"
	"syscall"
)

// TransientError marks a retryable transfer failure (network, timeout,
// rate limiting). The executor retries these up to its attempt budget.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return "transient: " + e.Err.Error() }
func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks a failure retrying cannot fix (permissions, disk
// space). Recorded as failed on the first attempt.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return "permanent: " + e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

// SourceUnavailableError marks a remote item that is gone or restricted
// (deleted message, revoked access, expired file reference). Not retried.
type SourceUnavailableError struct {
	Err error
}

func (e *SourceUnavailableError) Error() string { return "source unavailable: " + e.Err.Error() }
func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Classify buckets an error into the transfer taxonomy. Errors already
// classified by the transport pass through unchanged. Unknown failures are
// treated as transient: for a remote service the worst outcome of a spurious
// retry is two seconds, while skipping a recoverable item loses data.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var tr *TransientError
	var pe *PermanentError
	var su *SourceUnavailableError
	if errors.As(err, &tr) || errors.As(err, &pe) || errors.As(err, &su) {
		return err
	}

	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EACCES) ||
		errors.Is(err, syscall.EROFS) || errors.Is(err, fs.ErrPermission) {
		return &PermanentError{Err: err}
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return &PermanentError{Err: err}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &TransientError{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransientError{Err: err}
	}

	return &TransientError{Err: err}
}

func isTransient(err error) bool {
	var tr *TransientError
	return errors.As(err, &tr)
}
