package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/gitsync/internal/constants"
	"github.com/mrz1836/gitsync/internal/errors"
)

// HomeDir returns gitsync's home directory: $GITSYNC_HOME when set,
// otherwise ~/.gitsync.
func HomeDir() (string, error) {
	if dir := os.Getenv(constants.EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigDir returns the directory holding the global config file.
func GlobalConfigDir() (string, error) {
	return HomeDir()
}

// GlobalConfigPath returns the full path to the global configuration file.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.ConfigFileName), nil
}

// ProjectConfigPath returns the project configuration file under repoRoot.
func ProjectConfigPath(repoRoot string) string {
	return filepath.Join(repoRoot, constants.ProjectConfigDir, constants.ConfigFileName)
}

// StateDir returns the directory holding per-repository session state.
func StateDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.StateDir), nil
}

// LogsDir returns the directory holding the rotating log file.
func LogsDir() (string, error) {
	home, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, constants.LogsDir), nil
}
