// Package ctxutil provides context utility functions.
package ctxutil

import (
	"context"
	"errors"
)

// Canceled returns the context error once ctx is done (Canceled or
// DeadlineExceeded) and nil otherwise. Call it before starting a mutation.
func Canceled(ctx context.Context) error {
	return ctx.Err()
}

// IsCancellation reports whether err stems from a canceled or expired context.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
