// Package config provides layered configuration for gitsync.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (GITSYNC_* prefix, "." replaced by "_")
//  3. Project config (<repo root>/.gitsync/config.yaml)
//  4. Global config (~/.gitsync/config.yaml)
//  5. Built-in defaults
//
// This package may import internal/constants and internal/errors only.
package config

import "time"

// Config is the root configuration structure for gitsync.
type Config struct {
	// Sync controls how push and pull behave.
	Sync SyncConfig `yaml:"sync" mapstructure:"sync"`

	// Git controls how the git binary is invoked.
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// Log controls the rotating log file.
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

// SyncConfig contains settings for the sync actions.
type SyncConfig struct {
	// Location tags sync commits with where they were made.
	// Default: "Office"
	Location string `yaml:"location" mapstructure:"location"`

	// Locations is the set of accepted location tags.
	// Default: [Office, Home, Other]
	Locations []string `yaml:"locations" mapstructure:"locations"`

	// Remote is the remote fetched from and pushed to.
	// Default: "origin"
	Remote string `yaml:"remote" mapstructure:"remote"`

	// CommandTimeout bounds every git invocation.
	// Default: 60s
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`

	// SetUpstream pushes with -u when the branch has no upstream.
	// Default: true
	SetUpstream bool `yaml:"set_upstream" mapstructure:"set_upstream"`

	// WatchedFiles are dependency manifests worth a warning when a pull changes them.
	WatchedFiles []string `yaml:"watched_files" mapstructure:"watched_files"`

	// CommitTemplate is a text/template for sync commit messages.
	// Fields: .Location, .Timestamp (YYYY-MM-DD HH:MM), .Time
	CommitTemplate string `yaml:"commit_template" mapstructure:"commit_template"`
}

// GitConfig contains settings for the git binary.
type GitConfig struct {
	// Binary is the git executable, resolved on PATH when not absolute.
	// Default: "git"
	Binary string `yaml:"binary" json:"binary" mapstructure:"binary"`
}

// LogConfig contains settings for file logging.
type LogConfig struct {
	// FileEnabled writes logs to ~/.gitsync/logs/gitsync.log.
	// Default: true
	FileEnabled bool `yaml:"file_enabled" json:"file_enabled" mapstructure:"file_enabled"`
}

// Overrides holds flag values that take precedence over every other source.
// Empty strings and nil pointers leave the loaded value untouched.
type Overrides struct {
	Location    string
	Remote      string
	SetUpstream *bool
}
