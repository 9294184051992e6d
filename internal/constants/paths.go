package constants

// Log file names.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.gitsync/logs/gitsync.log
	CLILogFileName = "gitsync.log"
)

// Configuration file names.
const (
	// ConfigFileName is the name of both the global and the project configuration file.
	ConfigFileName = "config.yaml"

	// ProjectConfigDir is the directory holding project configuration, relative to the repository root.
	ProjectConfigDir = ".gitsync"
)

// State file names.
const (
	// StateLockFileName guards concurrent writers of the state directory.
	StateLockFileName = ".lock"

	// StateFileExt is the extension of per-repository session state files.
	StateFileExt = ".json"
)
