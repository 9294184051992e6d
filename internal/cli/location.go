package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitsync/internal/config"
	gserrors "github.com/mrz1836/gitsync/internal/errors"
	"github.com/mrz1836/gitsync/internal/session"
	"github.com/mrz1836/gitsync/internal/tui"
)

// locationView is the JSON shape of 'gitsync location get'.
type locationView struct {
	Location  string   `json:"location"`
	Source    string   `json:"source"`
	Locations []string `json:"locations"`
}

// AddLocationCommand adds the location command group to the root command.
func AddLocationCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "location",
		Short: "Show or choose where you are syncing from",
		Long: `The location tags every sync commit ("Sync from Home - ...").

It is chosen, highest first, from the --location flag of push, the location
saved for this repository with 'gitsync location set', and sync.location
from configuration.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the location used for this repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocationGet(cmd.Context(), cmd)
		},
	})

	var global bool
	set := &cobra.Command{
		Use:   "set [name]",
		Short: "Save the location for this repository",
		Long: `Save the location for this repository. Without a name, pick one
interactively from sync.locations. With --global, write sync.location to
~/.gitsync/config.yaml instead.

Names match case-insensitively: 'gitsync location set home' saves "Home".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runLocationSet(cmd.Context(), cmd, name, global)
		},
	}
	set.Flags().BoolVarP(&global, "global", "g", false, "write the global config instead of this repository's state")
	cmd.AddCommand(set)

	parent.AddCommand(cmd)
}

func runLocationGet(ctx context.Context, cmd *cobra.Command) error {
	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}

	view := locationView{Location: a.session.Location, Source: a.locationSource, Locations: a.cfg.Sync.Locations}
	if a.format == OutputJSON {
		return a.out.JSON(view)
	}
	a.out.Info(view.Location + " (from " + view.Source + ")")
	return nil
}

func runLocationSet(ctx context.Context, cmd *cobra.Command, name string, global bool) error {
	if global {
		return runLocationSetGlobal(ctx, cmd, name)
	}

	a, err := newApp(ctx, cmd, nil)
	if err != nil {
		return err
	}

	loc, err := chooseLocation(name, a.cfg.Sync.Locations, a.session.Location)
	if err != nil {
		return err
	}

	if err := a.store.Update(ctx, a.root, func(st *session.State) {
		st.Location = loc
	}); err != nil {
		return err
	}
	a.out.Success("Location set to " + loc + " for " + a.root + ".")
	return nil
}

func runLocationSetGlobal(ctx context.Context, cmd *cobra.Command, name string) error {
	cfg, _, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	loc, err := chooseLocation(name, cfg.Sync.Locations, cfg.Sync.Location)
	if err != nil {
		return err
	}

	path, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}
	if err := config.SetLocationInFile(path, loc); err != nil {
		return err
	}
	output(cmd).Success("Default location set to " + loc + " in " + path + ".")
	return nil
}

// chooseLocation resolves name against allowed, prompting when name is empty.
func chooseLocation(name string, allowed []string, current string) (string, error) {
	if name == "" {
		picked, err := tui.SelectLocation(allowed, current)
		if err != nil {
			return "", err
		}
		name = picked
	}
	loc, err := config.ResolveLocation(name, allowed)
	if err != nil {
		return "", gserrors.NewExitCode2Error(err)
	}
	return loc, nil
}
