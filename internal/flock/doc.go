// Package flock guards gitsync's state directory with an advisory file lock.
//
// Exclusive and Unlock are the non-blocking platform primitives. Acquire
// wraps them in a bounded retry loop so two gitsync processes working on
// the same repository serialize their state writes:
//
//	lock, err := flock.Acquire(ctx, filepath.Join(dir, ".lock"), 5*time.Second)
//	if err != nil {
//	    return err
//	}
//	defer lock.Release()
package flock
