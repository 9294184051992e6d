// Package constants provides centralized constant values used throughout gitsync.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by gitsync for organizing data.
const (
	// AppHome is the hidden directory name where gitsync stores all its data.
	// This directory is created in the user's home directory.
	AppHome = ".gitsync"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// StateDir is the directory name where per-repository session state is stored.
	StateDir = "state"
)

// Environment variables recognised by gitsync.
const (
	// EnvPrefix is the prefix for configuration environment variables (GITSYNC_SYNC_REMOTE, ...).
	EnvPrefix = "GITSYNC"

	// EnvHome overrides the gitsync home directory.
	EnvHome = "GITSYNC_HOME"
)

// Command execution defaults.
const (
	// DefaultCommandTimeout bounds every git invocation.
	DefaultCommandTimeout = 60 * time.Second

	// DefaultGitBinary is the version-control binary resolved on PATH.
	DefaultGitBinary = "git"

	// ProcessWaitDelay is how long to wait for output pipes to close after the
	// child process has been killed.
	ProcessWaitDelay = 2 * time.Second
)

// Repository defaults.
const (
	// DefaultRemote is the single named remote gitsync synchronizes with.
	DefaultRemote = "origin"

	// UnknownBranch is rendered when the current branch cannot be determined.
	UnknownBranch = "unknown"

	// HeadRef is the pseudo-ref excluded from remote branch listings.
	HeadRef = "HEAD"
)

// Sync locations.
const (
	// LocationOffice tags commits made at the office.
	LocationOffice = "Office"

	// LocationHome tags commits made at home.
	LocationHome = "Home"

	// LocationOther tags commits made anywhere else.
	LocationOther = "Other"

	// DefaultLocation is used until the user picks one.
	DefaultLocation = LocationOffice
)

// Commit message generation.
const (
	// CommitTimestampLayout formats the timestamp embedded in sync commits (YYYY-MM-DD HH:MM).
	CommitTimestampLayout = "2006-01-02 15:04"

	// DefaultCommitTemplate produces "Sync from Office - 2025-01-02 18:30".
	DefaultCommitTemplate = "Sync from {{.Location}} - {{.Timestamp}}"
)

// DefaultLocations returns the built-in list of locations.
func DefaultLocations() []string {
	return []string{LocationOffice, LocationHome, LocationOther}
}

// DefaultWatchedFiles returns the dependency manifests whose modification
// usually means dependencies need reinstalling after a pull.
func DefaultWatchedFiles() []string {
	return []string{"package.json", "requirements.txt", ".env.example", "pom.xml", "build.gradle"}
}

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before a log file is rotated.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum number of days to retain old log files.
	LogMaxAgeDays = 14

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)
