package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleCooldownGatesAndClampsOnReduce(t *testing.T) {
	cd := NewCooldown(CooldownConfig{BaseDuration: 10 * time.Second})
	assert.True(t, cd.Ready(0))

	cd.Use(0)
	assert.False(t, cd.Ready(5*time.Second))
	assert.Equal(t, 5*time.Second, cd.Remaining(5*time.Second))

	cd.ReduceBy(5*time.Second, 20*time.Second)
	assert.True(t, cd.Ready(5*time.Second), "reducing below zero must clamp to ready-now, not go negative")
}

func TestChargeCooldownRechargesOneAtATime(t *testing.T) {
	cd := NewCooldown(CooldownConfig{MaxCharges: 2, RechargeDuration: 10 * time.Second})
	require.Equal(t, int32(2), cd.Charges())

	schedule, at := cd.Use(0)
	require.True(t, schedule)
	assert.Equal(t, 10*time.Second, at)
	assert.Equal(t, int32(1), cd.Charges())
	assert.True(t, cd.Ready(0), "one charge remains, so the ability is still castable")

	cd.Use(1 * time.Second)
	assert.False(t, cd.Ready(1*time.Second))

	scheduleNext, nextAt := cd.RestoreCharge(10 * time.Second)
	assert.Equal(t, int32(1), cd.Charges())
	assert.True(t, scheduleNext, "still missing one charge, next recharge must be scheduled")
	assert.Equal(t, 20*time.Second, nextAt)

	scheduleNext, _ = cd.RestoreCharge(20 * time.Second)
	assert.Equal(t, int32(2), cd.Charges())
	assert.False(t, scheduleNext, "at max charges, no further recharge is scheduled")
}

func TestGainChargeNeverExceedsMax(t *testing.T) {
	cd := NewCooldown(CooldownConfig{MaxCharges: 2, RechargeDuration: 5 * time.Second})
	cd.GainCharge()
	assert.Equal(t, int32(2), cd.Charges())
}
