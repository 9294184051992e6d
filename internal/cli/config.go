package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/gitsync/internal/config"
)

// AddConfigCommand adds the config command group to the root command.
func AddConfigCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create gitsync configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after merging defaults, ~/.gitsync/config.yaml,
the repository's .gitsync/config.yaml, and GITSYNC_* environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.Context(), cmd)
		},
	})

	var global, force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Long: `Write .gitsync/config.yaml at the repository root, or with --global,
~/.gitsync/config.yaml. An existing file is kept unless --force is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigInit(cmd.Context(), cmd, global, force)
		},
	}
	initCmd.Flags().BoolVarP(&global, "global", "g", false, "write the global config file")
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.AddCommand(initCmd)

	parent.AddCommand(cmd)
}

func runConfigShow(ctx context.Context, cmd *cobra.Command) error {
	cfg, _, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	marshal := config.MarshalYAML
	if flagString(cmd, "output") == OutputJSON {
		marshal = config.MarshalJSON
	}
	data, err := marshal(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func runConfigInit(ctx context.Context, cmd *cobra.Command, global, force bool) error {
	var path string
	if global {
		p, err := config.GlobalConfigPath()
		if err != nil {
			return err
		}
		path = p
	} else {
		root, err := resolveRoot(cmd)
		if err != nil {
			return err
		}
		path = config.ProjectConfigPath(root)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := config.Write(path, config.DefaultConfig(), force); err != nil {
		return err
	}

	out := output(cmd)
	if flagString(cmd, "output") == OutputJSON {
		return out.JSON(map[string]string{"path": path})
	}
	out.Success("Wrote " + path)
	return nil
}
