package engine

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/gitsync/internal/action"
	"github.com/mrz1836/gitsync/internal/clock"
	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/session"
)

// BranchManager creates, switches, and deletes branches. Each call resets the
// session log, records what it ran, and reports success as a bool; the
// session's Outcome and Message carry the details.
type BranchManager struct {
	rec   recorder
	clock clock.Clock
}

// NewBranchManager creates a BranchManager issuing commands through runner.
func NewBranchManager(runner git.Runner, c clock.Clock, logger zerolog.Logger) *BranchManager {
	if c == nil {
		c = clock.RealClock{}
	}
	return &BranchManager{
		rec:   recorder{runner: runner, logger: logger.With().Str("component", "branches").Logger()},
		clock: c,
	}
}

// Create creates branch name from HEAD and switches to it.
func (b *BranchManager) Create(ctx context.Context, s *session.Session, name string) bool {
	return b.CreateAndCheckout(ctx, s, name, "")
}

// Switch checks out an existing branch. The trailing "--" makes git treat
// name as a revision only, so a name matching a file never restores it.
func (b *BranchManager) Switch(ctx context.Context, s *session.Session, name string) bool {
	check := func() error { return git.ValidateBranchName(name) }
	return b.do(ctx, s, action.Switch, check, "Switched to "+name+".", "checkout", name, "--")
}

// CreateAndCheckout creates branch name at startPoint (HEAD when empty) and
// switches to it.
func (b *BranchManager) CreateAndCheckout(ctx context.Context, s *session.Session, name, startPoint string) bool {
	kind := action.Create
	args := []string{"checkout", "-b", name}
	if startPoint != "" {
		kind = action.Checkout
		args = append(args, startPoint)
	}
	check := func() error {
		if err := git.ValidateBranchName(name); err != nil {
			return err
		}
		if startPoint == "" {
			return nil
		}
		return git.ValidateRevision(startPoint)
	}
	return b.do(ctx, s, kind, check, "Created and switched to "+name+".", args...)
}

// Delete removes a local branch. Without force, git refuses unmerged branches.
func (b *BranchManager) Delete(ctx context.Context, s *session.Session, name string, force bool) bool {
	flag := "-d"
	if force {
		flag = "-D"
	}
	check := func() error { return git.ValidateBranchName(name) }
	return b.do(ctx, s, action.Delete, check, "Deleted "+name+".", "branch", flag, name)
}

// do runs check, then one command, and finishes the session.
func (b *BranchManager) do(ctx context.Context, s *session.Session, kind action.Kind, check func() error, okMsg string, args ...string) bool {
	s.Begin(string(kind), b.clock.Now())

	if err := check(); err != nil {
		s.Log.Error(string(kind), err.Error())
		s.Finish(string(action.StatusFailure), action.FailureInfo(kind), b.clock.Now())
		return false
	}

	st := b.rec.run(ctx, s, string(kind), args...)
	if !st.ok() {
		s.Finish(string(action.StatusFailure), action.FailureInfo(kind), b.clock.Now())
		return false
	}
	s.Finish(string(action.StatusSuccess), okMsg, b.clock.Now())
	return true
}
