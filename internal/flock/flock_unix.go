//go:build unix

package flock

import "golang.org/x/sys/unix"

// Exclusive takes an exclusive lock on fd without blocking.
func Exclusive(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_EX|unix.LOCK_NB) //nolint:gosec // fd fits in int
}

// Unlock releases a lock taken by Exclusive.
func Unlock(fd uintptr) error {
	return unix.Flock(int(fd), unix.LOCK_UN) //nolint:gosec // fd fits in int
}
