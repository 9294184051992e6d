// Package cli provides the command-line interface for gitsync.
package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the logger initialized in PersistentPreRunE.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the logger initialized by the root command.
// Before PersistentPreRunE runs it returns a zero-value logger that discards output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

func setLogger(logger zerolog.Logger) {
	globalLoggerMu.Lock()
	globalLogger = logger
	globalLoggerMu.Unlock()
}

// reportedError marks an error whose outcome the command already printed,
// so Execute only has to turn it into an exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

// newRootCmd creates the root command for the gitsync CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "gitsync",
		Short: "Keep a git repository in sync between the machines you work on",
		Long: `gitsync wraps the everyday git round trip behind a few guarded commands.

  • pull fetches and pulls, then warns when a dependency manifest changed
  • push stages everything, commits "Sync from <location> - <time>", and pushes,
    but refuses first when the remote has commits you do not
  • status shows branch, upstream divergence, and pending changes at a glance

Every command records the git invocations it made; 'gitsync log' replays them.`,
		Version: formatVersion(info),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			flags.Output = v.GetString("output")

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", gserrors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			logger := InitLogger(flags.Verbose, flags.Quiet)
			setLogger(logger)
			cmd.SetContext(logger.WithContext(cmd.Context()))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	AddStatusCommand(cmd)
	AddFetchCommand(cmd)
	AddPullCommand(cmd)
	AddPushCommand(cmd)
	AddBranchCommand(cmd)
	AddRemoteCommand(cmd)
	AddLocationCommand(cmd)
	AddLogCommand(cmd)
	AddConfigCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command and prints any error not already reported.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{Output: OutputText}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	printError(cmd, flags, err)
	return err
}

// printError renders err on stderr in the selected output format.
func printError(cmd *cobra.Command, flags *GlobalFlags, err error) {
	if err == nil {
		return
	}
	var done *reportedError
	if errors.As(err, &done) {
		return
	}
	format := flags.Output
	if !IsValidOutputFormat(format) {
		format = OutputText
	}
	tui.NewOutput(cmd.ErrOrStderr(), format).Error(err)
}
