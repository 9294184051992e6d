// Package git provides the version-control layer for gitsync.
// This file implements the command executor every other git operation goes through.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/gitsync/internal/constants"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/logging"
)

// CommandResult is the captured outcome of one git invocation that ran to completion.
// A non-zero exit status is data, not an error.
type CommandResult struct {
	Args     []string      // Arguments passed to git (without the binary)
	ExitCode int           // Process exit status
	Stdout   string        // Captured standard output, decoded as UTF-8
	Stderr   string        // Captured standard error, decoded as UTF-8
	TimedOut bool          // True when the process was killed for exceeding its bound
	Duration time.Duration // Wall time spent waiting on the process
}

// Success reports whether the command exited with status zero.
func (r *CommandResult) Success() bool {
	return r != nil && !r.TimedOut && r.ExitCode == 0
}

// CommandLine renders the invocation for display, e.g. "git push -u origin main".
func (r *CommandResult) CommandLine() string {
	return FormatCommandLine(r.Args)
}

// ExecErrorKind classifies why a command produced no usable result.
type ExecErrorKind int

const (
	// KindSpawn means the process could not be started.
	KindSpawn ExecErrorKind = iota
	// KindTimeout means the process exceeded its time bound and was killed.
	KindTimeout
	// KindInterrupted means the caller's context was canceled (Ctrl+C).
	KindInterrupted
)

// String returns the kind name.
func (k ExecErrorKind) String() string {
	switch k {
	case KindSpawn:
		return "spawn_error"
	case KindTimeout:
		return "timeout"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// ExecError is returned when a command produced no usable result.
// It unwraps to ErrSpawnFailed, ErrCommandTimeout, or the context error.
type ExecError struct {
	Kind    ExecErrorKind
	Args    []string
	Timeout time.Duration
	Err     error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	line := FormatCommandLine(e.Args)
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("%s: %s after %s", line, gserrors.ErrCommandTimeout, e.Timeout)
	case KindInterrupted:
		return fmt.Sprintf("%s: interrupted", line)
	default:
		return fmt.Sprintf("%s: %s: %v", line, gserrors.ErrSpawnFailed, e.Err)
	}
}

// Unwrap exposes both the category sentinel and the underlying cause.
func (e *ExecError) Unwrap() []error {
	switch e.Kind {
	case KindTimeout:
		return []error{gserrors.ErrCommandTimeout, e.Err}
	case KindInterrupted:
		return []error{e.Err}
	default:
		return []error{gserrors.ErrSpawnFailed, e.Err}
	}
}

// Runner runs git with structured arguments against one working directory.
type Runner interface {
	// Run executes git with args. The returned error is nil or an *ExecError;
	// a command that exits non-zero still returns a result and a nil error.
	Run(ctx context.Context, args ...string) (*CommandResult, error)

	// Dir returns the working directory commands run in.
	Dir() string
}

// Executor is the Runner backed by the git binary.
type Executor struct {
	binary  string
	dir     string
	timeout time.Duration
	logger  zerolog.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithBinary overrides the git binary (default "git" resolved on PATH).
func WithBinary(binary string) ExecutorOption {
	return func(e *Executor) {
		if binary != "" {
			e.binary = binary
		}
	}
}

// WithTimeout overrides the per-command time bound (default 60s).
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithLogger attaches a logger for debug tracing of each invocation.
func WithLogger(logger zerolog.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = logger
	}
}

// NewExecutor creates an Executor rooted at dir.
func NewExecutor(dir string, opts ...ExecutorOption) *Executor {
	e := &Executor{
		binary:  constants.DefaultGitBinary,
		dir:     dir,
		timeout: constants.DefaultCommandTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the working directory commands run in.
func (e *Executor) Dir() string {
	return e.dir
}

// Timeout returns the per-command time bound.
func (e *Executor) Timeout() time.Duration {
	return e.timeout
}

// Run executes git with args in the executor's directory.
// On timeout the whole process group is killed before Run returns.
func (e *Executor) Run(ctx context.Context, args ...string) (*CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExecError{Kind: KindInterrupted, Args: args, Err: err}
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.binary, args...) //#nosec G204 -- argv is passed without a shell
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = constants.ProcessWaitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	result := &CommandResult{
		Args:     args,
		Stdout:   decodeOutput(stdout.Bytes()),
		Stderr:   decodeOutput(stderr.Bytes()),
		Duration: elapsed,
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, &ExecError{Kind: KindInterrupted, Args: args, Err: ctx.Err()}
		}
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			result.TimedOut = true
			result.ExitCode = -1
			e.logger.Warn().
				Str("command", logging.FilterSensitiveValue(result.CommandLine())).
				Dur("timeout", e.timeout).
				Msg("git command timed out")
			return result, &ExecError{Kind: KindTimeout, Args: args, Timeout: e.timeout, Err: runCtx.Err()}
		}
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, &ExecError{Kind: KindSpawn, Args: args, Err: err}
		}
		result.ExitCode = exitErr.ExitCode()
	}

	e.logger.Debug().
		Str("command", logging.FilterSensitiveValue(result.CommandLine())).
		Int("exit_code", result.ExitCode).
		Dur("duration", elapsed).
		Msg("git command finished")

	return result, nil
}

// FormatCommandLine renders args as a copy-pasteable git command.
// Arguments containing whitespace or quotes are double-quoted.
func FormatCommandLine(args []string) string {
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, "git")
	for _, arg := range args {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'") {
			parts = append(parts, fmt.Sprintf("%q", arg))
			continue
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Ensure Executor implements Runner.
var _ Runner = (*Executor)(nil)
