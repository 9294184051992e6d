package flock

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
)

// RetryInterval is how often Acquire retries a held lock.
const RetryInterval = 50 * time.Millisecond

// Lock is an acquired exclusive lock on a file.
type Lock struct {
	f *os.File
}

// Acquire creates path if needed and takes an exclusive lock on it. A held
// lock is retried until timeout elapses, after which ErrLockHeld is returned.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o600) //#nosec G302,G304 -- lock file needs write access
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			_ = f.Close()
			return nil, err
		}

		if err := Exclusive(f.Fd()); err == nil {
			return &Lock{f: f}, nil
		}

		if !time.Now().Before(deadline) {
			_ = f.Close()
			return nil, fmt.Errorf("%s: %w", path, gserrors.ErrLockHeld)
		}

		select {
		case <-ctx.Done():
		case <-time.After(RetryInterval):
		}
	}
}

// Release unlocks and closes the lock file. It is safe to call on nil.
func (l *Lock) Release() error {
	if l == nil || l.f == nil {
		return nil
	}
	f := l.f
	l.f = nil
	if err := Unlock(f.Fd()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}
