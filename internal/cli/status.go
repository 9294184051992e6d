package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/tui"
)

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show branch, remote, divergence, and pending changes",
		Long: `Display a card summarizing the repository:

  • Branch and sync location
  • Remote address (credentials hidden)
  • Commits ahead of and behind the upstream, or "no upstream"
  • Every changed file, tagged by kind
  • A warning for each changed dependency manifest

Examples:
  gitsync status
  gitsync status -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), cmd)
		},
	}
	parent.AddCommand(cmd)
}

func runStatus(ctx context.Context, cmd *cobra.Command) error {
	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}

	st := a.orch.Inspector().Snapshot(ctx)
	paths := make([]string, 0, len(st.DirtyEntries))
	for _, c := range st.DirtyEntries {
		paths = append(paths, c.Path)
	}
	manifests := git.MatchWatched(paths, a.cfg.Sync.WatchedFiles)

	a.out.Status(tui.NewStatusView(a.root, a.session.Location, a.orch.Remote(), st, manifests))
	return nil
}
