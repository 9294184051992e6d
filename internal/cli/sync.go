package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitsync/internal/action"
	"github.com/mrz1836/gitsync/internal/config"
	"github.com/mrz1836/gitsync/internal/engine"
)

// AddFetchCommand adds the fetch command to the root command.
func AddFetchCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Refresh remote-tracking branches without touching your files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), cmd, nil)
			if err != nil {
				return err
			}
			out := a.spin(cmd.Context(), "Fetching "+a.orch.Remote(), func() *action.Outcome {
				return a.orch.Fetch(cmd.Context(), a.session)
			})
			return a.report(cmd.Context(), out)
		},
	}
	parent.AddCommand(cmd)
}

// AddPullCommand adds the pull command to the root command.
func AddPullCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Fetch and pull the current branch",
		Long: `Fetch from the configured remote, then pull into the current branch.

A failed fetch is recorded but does not stop the pull. When the pull changes
a watched dependency manifest (package.json, requirements.txt, ...), gitsync
warns that dependencies may need to be installed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPull(cmd.Context(), cmd)
		},
	}
	parent.AddCommand(cmd)
}

func runPull(ctx context.Context, cmd *cobra.Command) error {
	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}
	out := a.spin(ctx, "Pulling from "+a.orch.Remote(), func() *action.Outcome {
		return a.orch.Pull(ctx, a.session)
	})
	return a.report(ctx, out)
}

// pushOptions holds the flags of the push command.
type pushOptions struct {
	force           bool
	noSetUpstream   bool
	location        string
	setUpstreamFlag bool
}

// AddPushCommand adds the push command to the root command.
func AddPushCommand(parent *cobra.Command) {
	opts := &pushOptions{}
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Stage, commit, and push all local changes",
		Long: `Stage every change, commit it as "Sync from <location> - <YYYY-MM-DD HH:MM>",
and push the current branch.

gitsync refuses to push, before touching anything, when the upstream has
commits you do not have; run 'gitsync pull' first. With a clean work tree
there is nothing to push and no git command runs.

A branch without an upstream is pushed with -u <remote> <branch> unless
--no-set-upstream is given.

Examples:
  gitsync push
  gitsync push --location Home
  gitsync push --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.setUpstreamFlag = cmd.Flags().Changed("no-set-upstream")
			return runPush(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "append --force to the push")
	cmd.Flags().BoolVar(&opts.noSetUpstream, "no-set-upstream", false, "never add -u when the branch has no upstream")
	cmd.Flags().StringVarP(&opts.location, "location", "l", "", "location recorded in the commit message")
	parent.AddCommand(cmd)
}

func runPush(ctx context.Context, cmd *cobra.Command, opts *pushOptions) error {
	overrides := &config.Overrides{Location: opts.location}
	if opts.setUpstreamFlag {
		setUpstream := !opts.noSetUpstream
		overrides.SetUpstream = &setUpstream
	}

	a, err := newApp(ctx, cmd, overrides)
	if err != nil {
		return err
	}

	pushOpts := engine.PushOptions{Force: opts.force, SetUpstream: a.cfg.Sync.SetUpstream}
	out := a.spin(ctx, "Pushing to "+a.orch.Remote(), func() *action.Outcome {
		return a.orch.Push(ctx, a.session, pushOpts)
	})
	return a.report(ctx, out)
}
