package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/gitsync/internal/action"
	"github.com/mrz1836/gitsync/internal/clock"
	"github.com/mrz1836/gitsync/internal/config"
	"github.com/mrz1836/gitsync/internal/engine"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/session"
	"github.com/mrz1836/gitsync/internal/tui"
)

// Location sources reported by 'gitsync location get'.
const (
	sourceFlag   = "flag"
	sourceStored = "repository"
	sourceConfig = "config"
)

// app bundles everything a repository command needs.
type app struct {
	root           string
	cfg            *config.Config
	logger         zerolog.Logger
	format         string
	w              io.Writer
	out            tui.Output
	orch           *engine.Orchestrator
	branches       *engine.BranchManager
	store          session.Store
	state          *session.State
	session        *session.Session
	locationSource string
}

// resolveRoot returns the work tree root for --dir, or the current directory.
func resolveRoot(cmd *cobra.Command) (string, error) {
	dir := flagString(cmd, "dir")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
		dir = wd
	}
	return git.FindRoot(dir)
}

// loadConfig loads configuration for the repository around --dir, falling
// back to global configuration outside a repository.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, string, error) {
	root, err := resolveRoot(cmd)
	if err != nil {
		if !errors.Is(err, gserrors.ErrNotGitRepo) {
			return nil, "", err
		}
		root = ""
	}
	cfg, err := config.Load(ctx, root)
	if err != nil {
		return nil, "", err
	}
	applyLogFileSetting(cmd, cfg)
	return cfg, root, nil
}

// newApp wires the sync engine for the repository around --dir.
func newApp(ctx context.Context, cmd *cobra.Command, overrides *config.Overrides) (*app, error) {
	root, err := resolveRoot(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadWithOverrides(ctx, root, overrides)
	if err != nil {
		return nil, err
	}
	applyLogFileSetting(cmd, cfg)
	logger := GetLogger().With().Str("repo", root).Logger()

	stateDir, err := config.StateDir()
	if err != nil {
		return nil, err
	}
	store := session.NewFileStore(stateDir)
	state, err := store.Load(ctx, root)
	switch {
	case errors.Is(err, gserrors.ErrStateCorrupt):
		logger.Warn().Err(err).Msg("ignoring unreadable session state")
		state = &session.State{RepoPath: root}
	case err != nil:
		return nil, err
	}

	location, source := effectiveLocation(cfg, state, overrides, logger)

	tmpl, err := engine.ParseCommitTemplate(cfg.Sync.CommitTemplate)
	if err != nil {
		return nil, err
	}

	runner := git.NewExecutor(root,
		git.WithBinary(cfg.Git.Binary),
		git.WithTimeout(cfg.Sync.CommandTimeout),
		git.WithLogger(logger),
	)

	format := flagString(cmd, "output")
	w := cmd.OutOrStdout()

	return &app{
		root:   root,
		cfg:    cfg,
		logger: logger,
		format: format,
		w:      w,
		out:    tui.NewOutput(w, format),
		orch: engine.NewOrchestrator(runner,
			engine.WithRemote(cfg.Sync.Remote),
			engine.WithWatchedFiles(cfg.Sync.WatchedFiles),
			engine.WithCommitTemplate(tmpl),
			engine.WithLogger(logger),
		),
		branches:       engine.NewBranchManager(runner, clock.RealClock{}, logger),
		store:          store,
		state:          state,
		session:        session.New(location),
		locationSource: source,
	}, nil
}

// effectiveLocation picks the --location flag, then the location stored for
// this repository, then sync.location.
func effectiveLocation(cfg *config.Config, state *session.State, overrides *config.Overrides, logger zerolog.Logger) (string, string) {
	if overrides != nil && overrides.Location != "" {
		return cfg.Sync.Location, sourceFlag
	}
	if state != nil && state.Location != "" {
		loc, err := config.ResolveLocation(state.Location, cfg.Sync.Locations)
		if err == nil {
			return loc, sourceStored
		}
		logger.Warn().Str("location", state.Location).Msg("stored location is no longer configured")
	}
	return cfg.Sync.Location, sourceConfig
}

// applyLogFileSetting drops the log file when log.file_enabled is false.
func applyLogFileSetting(cmd *cobra.Command, cfg *config.Config) {
	if cfg.Log.FileEnabled || logFileWriter == nil {
		return
	}
	setLogger(InitConsoleLogger(flagBool(cmd, "verbose"), flagBool(cmd, "quiet")))
}

// report prints an outcome with the session log, saves the session as the
// repository's latest action, and returns the outcome's error.
func (a *app) report(ctx context.Context, out *action.Outcome) error {
	a.out.Outcome(out, a.session.Log.Entries())
	a.saveSession(ctx)
	return reported(out.AsError())
}

// saveSession records the session for 'gitsync log'. Failing to save never
// fails the action that already ran.
func (a *app) saveSession(ctx context.Context) {
	last := *a.session
	err := a.store.Update(context.WithoutCancel(ctx), a.root, func(st *session.State) {
		st.Last = &last
	})
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to save session")
	}
}

// branchOutcome converts a BranchManager result into an outcome.
func (a *app) branchOutcome(kind action.Kind, ok bool) *action.Outcome {
	if ok {
		return action.Success(kind, a.session.Message)
	}
	return action.Failure(kind, kind, lastErrorBody(a.session.Log), nil)
}

// spin shows a spinner on a text terminal while fn runs.
func (a *app) spin(ctx context.Context, message string, fn func() *action.Outcome) *action.Outcome {
	sp := tui.StartSpinner(ctx, a.w, a.format, message)
	defer sp.Stop()
	return fn()
}

func lastErrorBody(log *session.Log) string {
	entries := log.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Kind == session.KindError {
			return entries[i].Body
		}
	}
	return ""
}

func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flag(name); f != nil {
		return f.Value.String()
	}
	return ""
}

func flagBool(cmd *cobra.Command, name string) bool {
	return flagString(cmd, name) == "true"
}

// output returns the Output for commands that do not need a repository.
func output(cmd *cobra.Command) tui.Output {
	return tui.NewOutput(cmd.OutOrStdout(), flagString(cmd, "output"))
}
