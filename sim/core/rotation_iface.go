package core

import "time"

// RotationProgram is the interface a compiled rotation DSL program
// presents to the core engine. The concrete implementation lives in
// sim/core/rotation, which imports core for SpellId/AuraId/ResourceId
// etc.; core itself never imports rotation, so SimConfig can carry a
// RotationProgram value without a cycle.
type RotationProgram interface {
	// Validate checks the program against the set of spell/aura ids
	// actually defined in the SimConfig, returning structural errors
	// (as ConfigError, for uniform reporting alongside the rest of
	// SimConfig.Validate) and non-fatal warnings.
	Validate(spellIds map[SpellId]bool, auraIds map[AuraId]bool) (warnings []string, errs []ConfigError)

	// NextAction evaluates the program against the current RotationContext
	// and returns the next spell to cast, or ok=false if the program
	// recommends waiting (spec.md §4.9 "no eligible action").
	NextAction(ctx RotationContext) (spell SpellId, ok bool)
}

// RotationContext is the read-only view of live state the rotation DSL's
// dotted variable families (resource.*, player.*, cd.*, buff.*, ...)
// resolve against. The driver constructs one per rotation-tick.
type RotationContext struct {
	Now time.Duration

	Self   *Unit
	Target *Unit
	Pets   []*Pet

	Enemies []*Unit

	GcdEndsAt time.Duration
	InCombat  bool
	CombatStart time.Duration

	// Vars backs the rotation DSL's user variables (SetVar/ModifyVar).
	// Owned by the Simulation, not the RotationProgram: the program
	// itself is shared, read-only state across an entire batch, so
	// per-run variable bindings live here instead. The driver passes
	// the same map instance on every tick of one run, so writes persist
	// tick to tick.
	Vars map[string]float64
}
