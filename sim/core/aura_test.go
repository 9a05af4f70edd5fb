package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuraApplyFreshThenPandemicRefresh(t *testing.T) {
	store := NewAuraStore(1)
	def := &AuraDef{
		Id: 1, Name: "Rend", Duration: 12 * time.Second, MaxStacks: 1,
		TickInterval: 3 * time.Second, Flags: AuraIsDebuff | AuraRefreshable,
	}

	store.Apply(def, 0, 1, NoSnapshot)
	require.True(t, store.Has(1))
	assert.Equal(t, 12*time.Second, store.Remaining(1, 0))
	assert.False(t, store.Refreshable(1, 0), "freshly applied aura is well above the pandemic threshold")

	// At t=10s, 2s remain (< 30% of 12s = 3.6s): refreshable.
	assert.True(t, store.Refreshable(1, 10*time.Second))

	store.Apply(def, 10*time.Second, 1, NoSnapshot)
	// extended = min(duration + remaining, duration*1.3) = min(12+2, 15.6) = 14
	assert.Equal(t, 14*time.Second, store.Remaining(1, 10*time.Second))
	assert.Equal(t, int32(1), store.Stacks(1), "single-target debuff never exceeds max_stacks=1")
}

func TestAuraApplyCapsStacksAtMax(t *testing.T) {
	store := NewAuraStore(1)
	def := &AuraDef{Id: 2, Name: "Frenzy", Duration: 15 * time.Second, MaxStacks: 3, Flags: AuraRefreshable}

	for i := 0; i < 5; i++ {
		store.Apply(def, 0, 1, NoSnapshot)
	}
	assert.Equal(t, int32(3), store.Stacks(2))
}

func TestAuraStoreAbsentAuraIsRefreshable(t *testing.T) {
	store := NewAuraStore(1)
	assert.True(t, store.Refreshable(99, 0), "an aura never applied must read as refreshable")
}

func TestAuraTickFiresAtExactExpiry(t *testing.T) {
	store := NewAuraStore(1)
	def := &AuraDef{Id: 3, Name: "DoT", Duration: 6 * time.Second, TickInterval: 2 * time.Second, Flags: AuraIsDebuff}
	store.Apply(def, 0, 1, NoSnapshot)

	r1 := store.Tick(3, 2*time.Second)
	assert.True(t, r1.Fired)
	assert.True(t, r1.StillActive)

	r2 := store.Tick(3, 4*time.Second)
	assert.True(t, r2.Fired)
	assert.True(t, r2.StillActive)

	// Third tick lands exactly at expires_at (6s): must still fire.
	r3 := store.Tick(3, 6*time.Second)
	assert.True(t, r3.Fired)
	assert.False(t, r3.StillActive, "the tick coincident with expiry is the last one")
	assert.False(t, store.Has(3))
}

func TestExtendDurationNeverShortens(t *testing.T) {
	store := NewAuraStore(1)
	def := &AuraDef{Id: 4, Name: "Buff", Duration: 10 * time.Second}
	store.Apply(def, 0, 1, NoSnapshot)

	store.ExtendDuration(4, -5*time.Second)
	assert.Equal(t, 10*time.Second, store.Remaining(4, 0), "a non-positive extension must not shorten the aura")

	store.ExtendDuration(4, 5*time.Second)
	assert.Equal(t, 15*time.Second, store.Remaining(4, 0))
}
