package config

import (
	"strings"
	"text/template"

	"github.com/mrz1836/gitsync/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - sync.command_timeout must be positive
//   - sync.remote must not be empty or start with '-'
//   - sync.locations must not be empty and sync.location must be one of them
//   - sync.commit_template must parse
//   - git.binary must not be empty
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateSyncConfig(&cfg.Sync); err != nil {
		return err
	}

	if strings.TrimSpace(cfg.Git.Binary) == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "git.binary must not be empty")
	}

	return nil
}

// validateSyncConfig checks sync-specific configuration values.
func validateSyncConfig(cfg *SyncConfig) error {
	if cfg.CommandTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"sync.command_timeout must be positive, got %s", cfg.CommandTimeout)
	}

	if cfg.Remote == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "sync.remote must not be empty")
	}
	if strings.HasPrefix(cfg.Remote, "-") || strings.ContainsAny(cfg.Remote, " \t\n") {
		return errors.Wrapf(errors.ErrConfigInvalid, "sync.remote %q is not a valid remote name", cfg.Remote)
	}

	if len(cfg.Locations) == 0 {
		return errors.Wrap(errors.ErrConfigInvalid, "sync.locations must not be empty")
	}
	if _, err := ResolveLocation(cfg.Location, cfg.Locations); err != nil {
		return errors.Wrapf(errors.ErrInvalidLocation,
			"sync.location %q must be one of %s", cfg.Location, strings.Join(cfg.Locations, ", "))
	}

	if cfg.CommitTemplate != "" {
		if _, err := template.New("commit").Parse(cfg.CommitTemplate); err != nil {
			return errors.Wrapf(errors.ErrConfigInvalid, "sync.commit_template: %v", err)
		}
	}

	return nil
}
