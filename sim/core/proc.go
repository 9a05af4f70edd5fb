package core

import "time"

// ProcFlags tags the trigger events a Proc can bind to (spec.md §4.6).
type ProcFlags uint16

const (
	ProcOnSpellCast ProcFlags = 1 << iota
	ProcOnAutoAttack
	ProcOnCrit
	ProcOnDamage
	ProcOnPeriodicDamage
)

func (f ProcFlags) Has(flag ProcFlags) bool { return f&flag != 0 }

// ProcKind selects which of the three proc models (spec.md §4.6)
// governs a given ProcDef's trigger decision.
type ProcKind int

const (
	ProcFixedProbability ProcKind = iota
	ProcICD
	ProcRPPM
)

// ProcDef is the immutable descriptor of one proc source.
type ProcDef struct {
	Id    SpellId // the spell this proc casts on success
	Flags ProcFlags
	Kind  ProcKind

	// ProcFixedProbability
	Chance float64

	// ProcICD: Chance gates each eligible trigger, but at most one
	// success is allowed per ICD window.
	ICD time.Duration

	// ProcRPPM: base real-procs-per-minute rate, converted to a
	// per-trigger probability using the caster's haste and the elapsed
	// time since the last trigger (spec.md §4.6 RPPM).
	Rppm float64
}

// procState is the live, per-caster-per-ProcDef bookkeeping.
type procState struct {
	lastProcAt    time.Duration
	lastTriggerAt time.Duration
	hasLastProc   bool
	hasLastTrig   bool
}

// ProcRegistry tracks proc state for every ProcDef bound to a unit and
// decides, on each qualifying event, whether it fires.
type ProcRegistry struct {
	Rng   *Rand
	defs  map[SpellId]*ProcDef
	state map[SpellId]*procState
	// order is registration order, the iteration order TryProc must use:
	// Go's map iteration order is randomized, and a registration-order
	// scan keeps each event's sequence of p.Rng draws reproducible for a
	// fixed seed regardless of Go's hashing (spec.md §8, byte-identical
	// SimResult for a fixed seed).
	order []SpellId
}

func NewProcRegistry(rng *Rand) *ProcRegistry {
	return &ProcRegistry{
		Rng:   rng,
		defs:  make(map[SpellId]*ProcDef),
		state: make(map[SpellId]*procState),
	}
}

func (p *ProcRegistry) Register(def ProcDef) {
	d := def
	p.defs[def.Id] = &d
	p.state[def.Id] = &procState{}
	p.order = append(p.order, def.Id)
}

// rppmBadLuckMultiplier implements the ramping bad-luck-protection
// curve (spec.md §4.6): the effective probability multiplier ramps
// linearly from 1.0x at 1.5x the expected inter-proc interval, up to a
// hard cap of 3.0x at 3.0x the expected interval and beyond.
func rppmBadLuckMultiplier(sinceLastProc, expectedInterval time.Duration) float64 {
	if expectedInterval <= 0 {
		return 1
	}
	ratio := sinceLastProc.Seconds() / expectedInterval.Seconds()
	const rampStart = 1.5
	const rampEnd = 3.0
	const capMult = 3.0
	if ratio <= rampStart {
		return 1
	}
	if ratio >= rampEnd {
		return capMult
	}
	frac := (ratio - rampStart) / (rampEnd - rampStart)
	return 1 + frac*(capMult-1)
}

// TryProc evaluates every ProcDef matching flag for this qualifying
// event at time now, with the caster's current haste multiplier (RPPM
// scales with haste), and returns the ids of procs that fired.
func (p *ProcRegistry) TryProc(now time.Duration, flag ProcFlags, hasteMult float64) []SpellId {
	var fired []SpellId
	for _, id := range p.order {
		def := p.defs[id]
		if !def.Flags.Has(flag) {
			continue
		}
		st := p.state[id]

		switch def.Kind {
		case ProcFixedProbability:
			if p.Rng.Float64() < def.Chance {
				fired = append(fired, id)
			}

		case ProcICD:
			if st.hasLastProc && now-st.lastProcAt < def.ICD {
				continue
			}
			if p.Rng.Float64() < def.Chance {
				st.lastProcAt = now
				st.hasLastProc = true
				fired = append(fired, id)
			}

		case ProcRPPM:
			if hasteMult <= 0 {
				hasteMult = 1
			}
			effectiveRppm := def.Rppm * hasteMult
			expectedInterval := time.Duration(60.0 / effectiveRppm * float64(time.Second))

			var sinceLastTrigger time.Duration
			if st.hasLastTrig {
				sinceLastTrigger = now - st.lastTriggerAt
			} else {
				sinceLastTrigger = expectedInterval
			}
			var sinceLastProc time.Duration
			if st.hasLastProc {
				sinceLastProc = now - st.lastProcAt
			} else {
				sinceLastProc = expectedInterval
			}

			perTriggerChance := Clamp(
				sinceLastTrigger.Seconds()/expectedInterval.Seconds()*rppmBadLuckMultiplier(sinceLastProc, expectedInterval),
				0, 1)

			st.lastTriggerAt = now
			st.hasLastTrig = true
			if p.Rng.Float64() < perTriggerChance {
				st.lastProcAt = now
				st.hasLastProc = true
				fired = append(fired, id)
			}
		}
	}
	return fired
}
