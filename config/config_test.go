package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackOverrides(t *testing.T) {
	overrides, err := parsePackOverrides("pre-starter=25; chick booster = 25")
	require.NoError(t, err)
	require.Len(t, overrides, 2)
	assert.Equal(t, "pre-starter", overrides[0].NameContains)
	assert.True(t, overrides[0].KgPerSack.IntPart() == 25)
	assert.Equal(t, "chick booster", overrides[1].NameContains)

	overrides, err = parsePackOverrides("")
	require.NoError(t, err)
	assert.Empty(t, overrides)

	_, err = parsePackOverrides("no-weight")
	require.Error(t, err)

	_, err = parsePackOverrides("starter=-5")
	require.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "50", cfg.Stock.SackWeightKg.String())
	require.Len(t, cfg.Stock.PackOverrides, 1)
	assert.Equal(t, "pre-starter", cfg.Stock.PackOverrides[0].NameContains)
	assert.Equal(t, "8080", cfg.App.Port)
}
