package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "Office", cfg.Sync.Location)
	assert.Equal(t, []string{"Office", "Home", "Other"}, cfg.Sync.Locations)
	assert.Equal(t, "origin", cfg.Sync.Remote)
	assert.Equal(t, 60*time.Second, cfg.Sync.CommandTimeout)
	assert.True(t, cfg.Sync.SetUpstream)
	assert.Contains(t, cfg.Sync.WatchedFiles, "package.json")
	assert.Equal(t, "Sync from {{.Location}} - {{.Timestamp}}", cfg.Sync.CommitTemplate)
	assert.Equal(t, "git", cfg.Git.Binary)
	assert.True(t, cfg.Log.FileEnabled)

	require.NoError(t, Validate(cfg))
}

func TestDefaultConfig_Independent(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	a.Sync.Locations[0] = "Changed"
	assert.Equal(t, "Office", b.Sync.Locations[0])
}

func TestSetDefaults_MatchDefaultConfig(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg, viperDecoderOption()))
	assert.Equal(t, *DefaultConfig(), cfg)
}
