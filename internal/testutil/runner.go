package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/mrz1836/gitsync/internal/git"
)

// RecordingRunner is a git.Runner that returns scripted results and records
// every invocation. Unscripted commands exit 1 with stderr "unscripted".
type RecordingRunner struct {
	mu      sync.Mutex
	dir     string
	calls   [][]string
	results map[string]*git.CommandResult
	errs    map[string]error
}

// NewRecordingRunner returns a runner that reports dir as its working directory.
func NewRecordingRunner(dir string) *RecordingRunner {
	return &RecordingRunner{
		dir:     dir,
		results: make(map[string]*git.CommandResult),
		errs:    make(map[string]error),
	}
}

func key(args []string) string {
	return strings.Join(args, " ")
}

// On scripts a result for an exact argument list.
func (r *RecordingRunner) On(result *git.CommandResult, args ...string) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	result.Args = args
	r.results[key(args)] = result
	return r
}

// OK scripts a successful run with the given stdout.
func (r *RecordingRunner) OK(stdout string, args ...string) *RecordingRunner {
	return r.On(&git.CommandResult{Stdout: stdout}, args...)
}

// Fail scripts a non-zero exit with the given stderr.
func (r *RecordingRunner) Fail(stderr string, args ...string) *RecordingRunner {
	return r.On(&git.CommandResult{ExitCode: 1, Stderr: stderr}, args...)
}

// Error scripts an execution error (spawn or timeout) for an argument list.
func (r *RecordingRunner) Error(err error, args ...string) *RecordingRunner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs[key(args)] = err
	return r
}

// Run implements git.Runner.
func (r *RecordingRunner) Run(_ context.Context, args ...string) (*git.CommandResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, args)
	k := key(args)
	if err, ok := r.errs[k]; ok {
		return nil, err
	}
	if res, ok := r.results[k]; ok {
		copied := *res
		return &copied, nil
	}
	return &git.CommandResult{Args: args, ExitCode: 1, Stderr: "unscripted"}, nil
}

// Dir implements git.Runner.
func (r *RecordingRunner) Dir() string {
	return r.dir
}

// Calls returns every invocation as a space-joined argument string.
func (r *RecordingRunner) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		out = append(out, key(c))
	}
	return out
}

// Called reports whether any invocation started with the given arguments.
func (r *RecordingRunner) Called(prefix ...string) bool {
	p := key(prefix)
	for _, c := range r.Calls() {
		if c == p || strings.HasPrefix(c, p+" ") {
			return true
		}
	}
	return false
}

// CountPrefix counts invocations starting with the given arguments.
func (r *RecordingRunner) CountPrefix(prefix ...string) int {
	p := key(prefix)
	n := 0
	for _, c := range r.Calls() {
		if c == p || strings.HasPrefix(c, p+" ") {
			n++
		}
	}
	return n
}

// Reset forgets recorded calls but keeps the script.
func (r *RecordingRunner) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

var _ git.Runner = (*RecordingRunner)(nil)
