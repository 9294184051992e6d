package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitsync/internal/clock"
	"github.com/mrz1836/gitsync/internal/tui"
)

// AddLogCommand adds the log command to the root command.
func AddLogCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the git commands the last action ran",
		Long: `Replay the operation log of the most recent gitsync action in this
repository: every git command it issued and the output it captured, with
credentials hidden.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLog(cmd.Context(), cmd)
		},
	}
	parent.AddCommand(cmd)
}

func runLog(ctx context.Context, cmd *cobra.Command) error {
	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}

	last := a.state.Last
	if a.format == OutputJSON {
		return a.out.JSON(last)
	}
	if last == nil {
		a.out.Info("No actions recorded for this repository yet.")
		return nil
	}

	a.out.Info(last.Action + " · " + last.Outcome + " · " + tui.RelativeTime(last.FinishedAt, clock.RealClock{}) + " · " + last.Location)
	if last.Message != "" {
		a.out.Info(last.Message)
	}
	if last.Log != nil {
		a.out.Log(last.Log.Entries())
	}
	return nil
}
