package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/gitsync/internal/constants"
	"github.com/mrz1836/gitsync/internal/errors"
)

// newViperInstance creates a Viper instance with gitsync defaults and GITSYNC_ env binding.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError reports whether err is viper's missing-file error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr)
}

// viperDecoderOption decodes "60s"-style strings into time.Duration and
// comma-separated env values into slices.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)
}

// unmarshalAndValidate decodes v into a Config, normalises it, and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// normalize canonicalises location spellings so "home" in a config file
// matches the "Home" tag.
func normalize(cfg *Config) {
	cfg.Sync.Locations = NormalizeLocations(cfg.Sync.Locations)
	if loc, err := ResolveLocation(cfg.Sync.Location, cfg.Sync.Locations); err == nil {
		cfg.Sync.Location = loc
	}
	cfg.Sync.Remote = strings.TrimSpace(cfg.Sync.Remote)
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mergeFile merges the config file at path into v if it exists.
func mergeFile(v *viper.Viper, path, what string) error {
	if path == "" || !fileExists(path) {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return errors.Wrapf(err, "failed to read %s config: %s", what, path)
	}
	return nil
}

// Load reads the global config, then the project config under repoRoot
// (skipped when repoRoot is empty), then GITSYNC_* environment variables.
// Missing files are not an error.
func Load(ctx context.Context, repoRoot string) (*Config, error) {
	globalPath, err := GlobalConfigPath()
	if err != nil {
		globalPath = ""
	}
	projectPath := ""
	if repoRoot != "" {
		projectPath = ProjectConfigPath(repoRoot)
	}

	cfg, err := LoadFromPaths(ctx, projectPath, globalPath)
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("location", cfg.Sync.Location).
		Str("remote", cfg.Sync.Remote).
		Dur("command_timeout", cfg.Sync.CommandTimeout).
		Msg("configuration loaded")

	return cfg, nil
}

// LoadWithOverrides loads configuration and applies flag overrides on top.
func LoadWithOverrides(ctx context.Context, repoRoot string, overrides *Overrides) (*Config, error) {
	cfg, err := Load(ctx, repoRoot)
	if err != nil {
		return nil, err
	}
	if err := ApplyOverrides(cfg, overrides); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides merges flag values into cfg and re-validates it. The
// location flag is matched case-insensitively against the configured set.
func ApplyOverrides(cfg *Config, overrides *Overrides) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if overrides == nil {
		return nil
	}
	if overrides.Location != "" {
		loc, err := ResolveLocation(overrides.Location, cfg.Sync.Locations)
		if err != nil {
			return err
		}
		cfg.Sync.Location = loc
	}
	if overrides.Remote != "" {
		cfg.Sync.Remote = strings.TrimSpace(overrides.Remote)
	}
	if overrides.SetUpstream != nil {
		cfg.Sync.SetUpstream = *overrides.SetUpstream
	}
	if err := Validate(cfg); err != nil {
		return errors.Wrap(err, "invalid configuration after overrides")
	}
	return nil
}

// LoadFromPaths loads configuration from explicit file paths.
// projectConfigPath merges over globalConfigPath; either may be empty.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if err := mergeFile(v, globalConfigPath, "global"); err != nil {
		return nil, err
	}
	if err := mergeFile(v, projectConfigPath, "project"); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(v)
}
