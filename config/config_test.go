package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulefire/rulefire/engine"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, engine.DefaultPriorityThreshold, cfg.PriorityThreshold)
	assert.False(t, cfg.SkipOnFirstApplied)
	assert.Empty(t, cfg.HistoryPath)
}

func TestFromEnv_UnsetKeepsDefaults(t *testing.T) {
	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("RULEFIRE_PRIORITY_THRESHOLD", "42")
	t.Setenv("RULEFIRE_SKIP_ON_FIRST_APPLIED", "true")
	t.Setenv("RULEFIRE_HISTORY_PATH", "/var/lib/rulefire/history.db")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.PriorityThreshold)
	assert.True(t, cfg.SkipOnFirstApplied)
	assert.Equal(t, "/var/lib/rulefire/history.db", cfg.HistoryPath)
}

func TestFromEnv_Invalid(t *testing.T) {
	t.Setenv("RULEFIRE_PRIORITY_THRESHOLD", "not-a-number")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.Options(), 1, "default config sets only the threshold")

	cfg.SkipOnFirstApplied = true
	assert.Len(t, cfg.Options(), 2)
}
