package examplespec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

func TestBuildConfigValidates(t *testing.T) {
	cfg, err := BuildConfig(60*time.Second, 1)
	require.NoError(t, err)
	errs := cfg.Validate()
	assert.Empty(t, errs, "example kit config must be internally consistent: %v", errs)
}

func TestBuildConfigRunsAndProducesDamage(t *testing.T) {
	cfg, err := BuildConfig(30*time.Second, 42)
	require.NoError(t, err)

	sim, err := core.NewSimulation(cfg)
	require.NoError(t, err)

	result, err := sim.Run()
	require.NoError(t, err)

	assert.Greater(t, result.TotalDamage, 0.0)
	assert.Greater(t, result.Dps, 0.0)
	assert.NotEmpty(t, result.Casts, "the fallback Strike cast alone should produce cast events")
}

func TestBuildConfigDeterministicBySeed(t *testing.T) {
	cfgA, err := BuildConfig(20*time.Second, 7)
	require.NoError(t, err)
	cfgB, err := BuildConfig(20*time.Second, 7)
	require.NoError(t, err)

	simA, err := core.NewSimulation(cfgA)
	require.NoError(t, err)
	simB, err := core.NewSimulation(cfgB)
	require.NoError(t, err)

	resA, err := simA.Run()
	require.NoError(t, err)
	resB, err := simB.Run()
	require.NoError(t, err)

	assert.Equal(t, resA.TotalDamage, resB.TotalDamage, "same seed must reproduce identical results")
}

func TestBuildNamesResolvesEveryWireReference(t *testing.T) {
	names := buildNames(buildSpells(), buildAuras())
	for wireName, id := range spellWireNames {
		def, ok := names.Spells[wireName]
		require.True(t, ok, "spell %q missing from name table", wireName)
		assert.Equal(t, id, def.Id)
	}
	for wireName, id := range auraWireNames {
		def, ok := names.Auras[wireName]
		require.True(t, ok, "aura %q missing from name table", wireName)
		assert.Equal(t, id, def.Id)
	}
}
