package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitsync/internal/action"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/git"
)

// AddBranchCommand adds the branch command group to the root command.
func AddBranchCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "branch",
		Short: "List, create, switch, and delete branches",
	}

	addBranchListCommand(cmd)
	addBranchCreateCommand(cmd)
	addBranchSwitchCommand(cmd)
	addBranchCheckoutCommand(cmd)
	addBranchDeleteCommand(cmd)

	parent.AddCommand(cmd)
}

func addBranchListCommand(parent *cobra.Command) {
	var remote, all bool
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List local branches",
		Long: `List local branches. With --remote, list the remote's branches with the
remote prefix removed. With --all, list local branches followed by remote
branches that have no local counterpart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBranchList(cmd.Context(), cmd, remote, all)
		},
	}
	cmd.Flags().BoolVarP(&remote, "remote", "r", false, "list remote branches")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "list local and remote branches")
	cmd.MarkFlagsMutuallyExclusive("remote", "all")
	parent.AddCommand(cmd)
}

func runBranchList(ctx context.Context, cmd *cobra.Command, remote, all bool) error {
	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}

	insp := a.orch.Inspector()
	var branches []git.Branch
	switch {
	case all:
		branches = insp.AllBranches(ctx)
	case remote:
		branches = insp.RemoteBranches(ctx)
	default:
		branches = insp.LocalBranches(ctx)
	}

	if a.format == OutputJSON {
		return a.out.JSON(branches)
	}
	if len(branches) == 0 {
		a.out.Info("No branches.")
		return nil
	}

	rows := make([][]string, 0, len(branches))
	for _, b := range branches {
		marker := ""
		if b.IsCurrent {
			marker = "*"
		}
		rows = append(rows, []string{marker, b.Name, strconv.FormatBool(b.IsRemote)})
	}
	a.out.Table([]string{"", "BRANCH", "REMOTE"}, rows)
	return nil
}

func addBranchCreateCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a branch from HEAD and switch to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranchAction(cmd.Context(), cmd, action.Create, args[0], func(a *app) bool {
				return a.branches.Create(cmd.Context(), a.session, args[0])
			})
		},
	}
	parent.AddCommand(cmd)
}

func addBranchSwitchCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "switch <name>",
		Short: "Switch to an existing local branch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranchAction(cmd.Context(), cmd, action.Switch, args[0], func(a *app) bool {
				return a.branches.Switch(cmd.Context(), a.session, args[0])
			})
		},
	}
	parent.AddCommand(cmd)
}

func addBranchCheckoutCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "checkout <name>",
		Short: "Create a local branch from <remote>/<name> and switch to it",
		Long: `Create a local branch tracking the remote branch of the same name and
switch to it. Run 'gitsync fetch' first if the branch is new on the remote.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranchAction(cmd.Context(), cmd, action.Checkout, args[0], func(a *app) bool {
				return a.branches.CreateAndCheckout(cmd.Context(), a.session, args[0], a.orch.Remote()+"/"+args[0])
			})
		},
	}
	parent.AddCommand(cmd)
}

func addBranchDeleteCommand(parent *cobra.Command) {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a local branch",
		Long: `Delete a local branch. Git refuses to delete a branch with unmerged
commits unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBranchAction(cmd.Context(), cmd, action.Delete, args[0], func(a *app) bool {
				return a.branches.Delete(cmd.Context(), a.session, args[0], force)
			})
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete even if the branch is not merged")
	parent.AddCommand(cmd)
}

// runBranchAction validates name up front so a bad name exits with code 2
// before any repository work, then runs fn and reports its outcome.
func runBranchAction(ctx context.Context, cmd *cobra.Command, kind action.Kind, name string, fn func(a *app) bool) error {
	if err := git.ValidateBranchName(name); err != nil {
		return gserrors.NewExitCode2Error(err)
	}

	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}
	return a.report(ctx, a.branchOutcome(kind, fn(a)))
}
