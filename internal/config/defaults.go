package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/gitsync/internal/constants"
)

// DefaultConfig returns a Config holding the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Sync: SyncConfig{
			Location:       constants.DefaultLocation,
			Locations:      constants.DefaultLocations(),
			Remote:         constants.DefaultRemote,
			CommandTimeout: constants.DefaultCommandTimeout,
			SetUpstream:    true,
			WatchedFiles:   constants.DefaultWatchedFiles(),
			CommitTemplate: constants.DefaultCommitTemplate,
		},
		Git: GitConfig{
			Binary: constants.DefaultGitBinary,
		},
		Log: LogConfig{
			FileEnabled: true,
		},
	}
}

// setDefaults mirrors DefaultConfig onto a Viper instance.
// Keys must match the mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("sync.location", d.Sync.Location)
	v.SetDefault("sync.locations", d.Sync.Locations)
	v.SetDefault("sync.remote", d.Sync.Remote)
	v.SetDefault("sync.command_timeout", d.Sync.CommandTimeout.String())
	v.SetDefault("sync.set_upstream", d.Sync.SetUpstream)
	v.SetDefault("sync.watched_files", d.Sync.WatchedFiles)
	v.SetDefault("sync.commit_template", d.Sync.CommitTemplate)

	v.SetDefault("git.binary", d.Git.Binary)

	v.SetDefault("log.file_enabled", d.Log.FileEnabled)
}
