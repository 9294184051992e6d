package cli

import (
	"context"

	"github.com/spf13/cobra"

	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/git"
	"github.com/mrz1836/gitsync/internal/logging"
)

// remoteView is the JSON shape of 'gitsync remote show'.
type remoteView struct {
	Remote     string `json:"remote"`
	URL        string `json:"url,omitempty"`
	Configured bool   `json:"configured"`
}

// AddRemoteCommand adds the remote command group to the root command.
func AddRemoteCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Show or change the remote address",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the remote address with credentials hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRemoteShow(cmd.Context(), cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <url>",
		Short: "Point the remote at a new address, adding it if missing",
		Long: `Point the configured remote (sync.remote, default origin) at url.
The remote is added when it does not exist yet. Setting the address it
already has does nothing.

Examples:
  gitsync remote set https://github.com/user/notes.git
  gitsync remote set git@github.com:user/notes.git`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemoteSet(cmd.Context(), cmd, args[0])
		},
	})

	parent.AddCommand(cmd)
}

func runRemoteShow(ctx context.Context, cmd *cobra.Command) error {
	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}

	url, ok := a.orch.Inspector().RemoteURL(ctx, "")
	view := remoteView{Remote: a.orch.Remote(), URL: logging.RedactURLCredentials(url), Configured: ok}

	if a.format == OutputJSON {
		return a.out.JSON(view)
	}
	if !ok {
		a.out.Warning("Remote '" + view.Remote + "' is not configured. Run 'gitsync remote set <url>'.")
		return nil
	}
	a.out.Table([]string{"REMOTE", "URL"}, [][]string{{view.Remote, view.URL}})
	return nil
}

func runRemoteSet(ctx context.Context, cmd *cobra.Command, url string) error {
	if err := git.ValidateRemoteURL(url); err != nil {
		return gserrors.NewExitCode2Error(err)
	}

	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}
	return a.report(ctx, a.orch.SetRemoteURL(ctx, a.session, url, a.orch.Remote()))
}
