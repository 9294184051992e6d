// Package engine sequences gitsync's mutating git actions: guarded push,
// fetch-then-pull, remote updates, and branch operations. Every action
// resets the caller's session log, appends each issued command and its
// output, and reports one terminal outcome.
package engine

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/session"
)

// CommandPrefix marks command lines in the operation log.
const CommandPrefix = ">>> "

// step is the result of one logged command.
type step struct {
	result *git.CommandResult
	err    error
}

func (s step) ok() bool {
	return s.err == nil && s.result.Success()
}

// detail returns the raw output worth showing next to a failure message.
func (s step) detail() string {
	if s.err != nil {
		return s.err.Error()
	}
	if s.result == nil {
		return ""
	}
	if out := strings.TrimSpace(s.result.Stderr); out != "" {
		return out
	}
	return strings.TrimSpace(s.result.Stdout)
}

// recorder runs commands and mirrors them into a session log.
type recorder struct {
	runner git.Runner
	logger zerolog.Logger
}

// run issues one git command under label. Stdout is logged as output; stderr
// is logged as output on success and as an error on failure.
func (r recorder) run(ctx context.Context, s *session.Session, label string, args ...string) step {
	s.Log.Command(label, CommandPrefix+git.FormatCommandLine(args))

	res, err := r.runner.Run(ctx, args...)
	if err != nil {
		s.Log.Error(label, err.Error())
		r.logger.Warn().Err(err).Str("step", label).Msg("git command did not complete")
		return step{result: res, err: err}
	}

	s.Log.Output(label, res.Stdout)
	if res.Success() {
		s.Log.Output(label, res.Stderr)
	} else {
		s.Log.Error(label, res.Stderr)
		r.logger.Debug().
			Str("step", label).
			Int("exit_code", res.ExitCode).
			Msg("git command failed")
	}
	return step{result: res}
}
