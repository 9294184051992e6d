// Package testutil provides fixtures shared by gitsync's package tests:
// scripted git runners, throwaway repositories, and mock errors.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for simulating failures in tests.
var (
	// ErrMockSpawn stands in for a git binary that could not be started.
	ErrMockSpawn = errors.New("exec: \"git\": executable file not found in $PATH")

	// ErrMockNetwork stands in for an unreachable remote.
	ErrMockNetwork = errors.New("network error")

	// ErrMockStore stands in for an unavailable session store.
	ErrMockStore = errors.New("session store unavailable")
)
