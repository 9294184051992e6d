// Package errors provides centralized error handling for gitsync.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrGitOperation indicates that a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrNotGitRepo indicates that the working directory is not inside a git work tree.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrSpawnFailed indicates that the git binary could not be started
	// (missing from PATH, not executable, or the working directory is unusable).
	ErrSpawnFailed = errors.New("failed to start command")

	// ErrCommandTimeout indicates that a command exceeded its time bound and was killed.
	ErrCommandTimeout = errors.New("command timed out")

	// ErrCommandFailed indicates that a command ran but exited with a non-zero status.
	ErrCommandFailed = errors.New("command failed")

	// ErrRemoteAhead indicates that a push was refused because the upstream
	// has commits the local branch does not.
	ErrRemoteAhead = errors.New("remote has new commits")

	// ErrInvalidBranchName indicates that a branch name would be rejected by git
	// or could be mistaken for a command-line option.
	ErrInvalidBranchName = errors.New("invalid branch name")

	// ErrInvalidRemoteURL indicates that a remote URL is malformed or could be read as an option.
	ErrInvalidRemoteURL = errors.New("invalid remote url")

	// ErrInvalidLocation indicates that a sync location is not one of the configured locations.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidOutputFormat indicates that an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigNil indicates that a nil configuration was passed.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalid indicates that a configuration value failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrConfigExists indicates that a config file already exists and would be overwritten.
	ErrConfigExists = errors.New("config file already exists")

	// ErrLockHeld indicates that another gitsync process holds the state lock.
	ErrLockHeld = errors.New("state is locked by another process")

	// ErrStateCorrupt indicates that a persisted session file could not be decoded.
	ErrStateCorrupt = errors.New("session state is corrupt")

	// ErrInteractiveRequired indicates that an interactive prompt is required but not available.
	ErrInteractiveRequired = errors.New("interactive prompt required")

	// ErrPromptCanceled indicates that the user dismissed an interactive prompt.
	ErrPromptCanceled = errors.New("prompt canceled")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}
