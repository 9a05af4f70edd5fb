package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryProcIterationOrderIsRegistrationOrderNotMapOrder(t *testing.T) {
	// Two fixed-probability procs bound to the same flag: whichever one
	// is visited first consumes the first Rng draw. Registration order
	// must decide that, not map hashing, so the same seed reproduces the
	// same outcome run after run.
	build := func() *ProcRegistry {
		reg := NewProcRegistry(NewRand(42))
		reg.Register(ProcDef{Id: 1, Flags: ProcOnSpellCast, Kind: ProcFixedProbability, Chance: 0.5})
		reg.Register(ProcDef{Id: 2, Flags: ProcOnSpellCast, Kind: ProcFixedProbability, Chance: 0.5})
		reg.Register(ProcDef{Id: 3, Flags: ProcOnSpellCast, Kind: ProcFixedProbability, Chance: 0.5})
		return reg
	}

	first := build().TryProc(0, ProcOnSpellCast, 1)
	for i := 0; i < 20; i++ {
		reg := build()
		assert.Equal(t, []SpellId{1, 2, 3}, reg.order)
		got := reg.TryProc(0, ProcOnSpellCast, 1)
		assert.Equal(t, first, got, "fixed seed, same registration order, must reproduce identical proc results")
	}
}

func TestTryProcIcdGatesRepeatTriggers(t *testing.T) {
	reg := NewProcRegistry(NewRand(1))
	reg.Register(ProcDef{Id: 1, Flags: ProcOnDamage, Kind: ProcICD, Chance: 1, ICD: 10 * time.Second})

	fired := reg.TryProc(0, ProcOnDamage, 1)
	require.Equal(t, []SpellId{1}, fired)

	fired = reg.TryProc(5*time.Second, ProcOnDamage, 1)
	assert.Empty(t, fired, "inside the ICD window, the proc must not retrigger")

	fired = reg.TryProc(10*time.Second, ProcOnDamage, 1)
	assert.Equal(t, []SpellId{1}, fired, "at exactly the ICD boundary the proc is eligible again")
}
