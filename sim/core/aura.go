package core

import "time"

// Aura lifecycle (mirrors the comment on the teacher's Aura type in
// sim/core/aura.go, generalized to the data-driven AuraDef/AuraStore
// split this spec calls for):
//
//	store.Apply(def, now, ...)
//	store.Refresh / store.Tick / store.Remove
//
// Invariants (spec.md §3): applied_at <= next_tick <= expires_at;
// 1 <= stacks <= max_stacks while present; a periodic aura has
// interval > 0 and remaining_ticks >= 0.
type Aura struct {
	Def *AuraDef

	appliedAt time.Duration
	expiresAt time.Duration

	stacks int32

	// effectiveInterval is the (possibly hasted) tick cadence computed
	// at apply time.
	effectiveInterval time.Duration
	nextTick          time.Duration
	remainingTicks    int32

	snapshot SnapshotId
	active   bool
}

func (a *Aura) IsActive() bool                   { return a.active }
func (a *Aura) Stacks() int32                    { return a.stacks }
func (a *Aura) AppliedAt() time.Duration         { return a.appliedAt }
func (a *Aura) ExpiresAt() time.Duration         { return a.expiresAt }
func (a *Aura) NextTick() time.Duration          { return a.nextTick }
func (a *Aura) RemainingTicks() int32            { return a.remainingTicks }
func (a *Aura) Snapshot() SnapshotId             { return a.snapshot }
func (a *Aura) EffectiveInterval() time.Duration { return a.effectiveInterval }

func (a *Aura) Remaining(now time.Duration) time.Duration {
	if !a.active {
		return 0
	}
	return MaxOf(a.expiresAt-now, 0)
}

// Refreshable reports whether the aura is below the pandemic
// threshold (less than 30% of its base duration remaining). Per
// spec.md §9 (Open Question resolved), an ABSENT aura is considered
// refreshable: "refresh if refreshable" always applies fresh.
func (a *Aura) Refreshable(now time.Duration) bool {
	if !a.active {
		return true
	}
	if a.Def.Duration <= 0 {
		return false
	}
	remaining := a.Remaining(now).Seconds()
	return remaining < a.Def.Duration.Seconds()*0.3
}

// AuraStore is a per-unit collection of timed auras, indexed by
// AuraId. Handlers read it via queries (Has/Stacks/Remaining/IsActive)
// and mutate it only through Apply/Tick/Remove; the store itself never
// touches the event queue — callers schedule the AuraTick/AuraExpire
// events the returned timings imply.
type AuraStore struct {
	Unit  UnitId
	auras map[AuraId]*Aura
}

func NewAuraStore(unit UnitId) *AuraStore {
	return &AuraStore{Unit: unit, auras: make(map[AuraId]*Aura)}
}

func (s *AuraStore) Get(id AuraId) *Aura {
	a, ok := s.auras[id]
	if !ok || !a.active {
		return nil
	}
	return a
}

func (s *AuraStore) Has(id AuraId) bool { return s.Get(id) != nil }

func (s *AuraStore) Stacks(id AuraId) int32 {
	if a := s.Get(id); a != nil {
		return a.stacks
	}
	return 0
}

func (s *AuraStore) Remaining(id AuraId, now time.Duration) time.Duration {
	if a := s.Get(id); a != nil {
		return a.Remaining(now)
	}
	return 0
}

// Refreshable resolves the Open Question from spec.md §9: an absent
// aura is refreshable=true.
func (s *AuraStore) Refreshable(id AuraId, now time.Duration) bool {
	if a, ok := s.auras[id]; ok && a.active {
		return a.Refreshable(now)
	}
	return true
}

// ApplyResult reports what an Apply call did, so the driver knows
// whether to schedule a new AuraTick event.
type ApplyResult struct {
	Aura *Aura
	// NextTickScheduled is true if a new AuraTick event must be
	// scheduled at Aura.NextTick(). False means either the aura isn't
	// periodic, or its tick schedule was already running and is
	// untouched (pandemic refresh preserves the existing tick
	// alignment, per spec.md §4.3).
	NextTickScheduled bool
}

// Apply applies def to the unit at time now. If no aura of that id is
// present, it is inserted fresh. If one is already present, the
// pandemic refresh rule extends its duration and, if AuraRefreshable is
// set, adds one stack (clamped to MaxStacks; stacks are never
// increased by the refresh arithmetic alone, only by this explicit
// stack bump, per spec.md §4.3 "Stacking").
//
// hasteMult is the unit's current haste multiplier, used to compute
// the effective tick interval when the aura is AuraHastedTicks-flagged.
func (s *AuraStore) Apply(def *AuraDef, now time.Duration, hasteMult float64, snapshot SnapshotId) ApplyResult {
	existing, present := s.auras[def.Id]
	if !present || !existing.active {
		a := &Aura{Def: def, appliedAt: now, active: true}
		a.stacks = 1
		a.expiresAt = now + def.Duration
		a.snapshot = snapshot

		scheduled := false
		if def.IsPeriodic() {
			a.effectiveInterval = effectiveTickInterval(def, hasteMult)
			a.nextTick = now + a.effectiveInterval
			a.remainingTicks = ticksInWindow(def.Duration, a.effectiveInterval)
			scheduled = true
		}
		s.auras[def.Id] = a
		return ApplyResult{Aura: a, NextTickScheduled: scheduled}
	}

	// Pandemic refresh.
	a := existing
	remaining := a.Remaining(now)
	extended := MinOf(def.Duration+remaining, time.Duration(float64(def.Duration)*1.3))
	a.expiresAt = now + extended

	if def.Flags.Has(AuraRefreshable) {
		maxStacks := def.MaxStacks
		if maxStacks < 1 {
			maxStacks = 1
		}
		a.stacks = Clamp(a.stacks+1, 1, maxStacks)
	}

	if def.IsPeriodic() {
		if def.Flags.Has(AuraDynamicHastedTicks) {
			a.effectiveInterval = effectiveTickInterval(def, hasteMult)
		}
		// Tick alignment is preserved: nextTick keeps its existing
		// schedule. remainingTicks is recomputed from the new
		// expiresAt, but the first new tick still fires at the
		// pre-scheduled nextTick (spec.md §4.3).
		a.remainingTicks = int32((a.expiresAt - a.nextTick) / a.effectiveInterval)
		if a.nextTick <= a.expiresAt {
			a.remainingTicks++
		}
	}
	a.snapshot = snapshot
	return ApplyResult{Aura: a, NextTickScheduled: false}
}

func effectiveTickInterval(def *AuraDef, hasteMult float64) time.Duration {
	if !def.Flags.Has(AuraHastedTicks) || hasteMult <= 0 {
		return def.TickInterval
	}
	return time.Duration(float64(def.TickInterval) / hasteMult)
}

func ticksInWindow(duration, interval time.Duration) int32 {
	if interval <= 0 {
		return 0
	}
	return int32(duration / interval)
}

// TickResult reports the outcome of a Tick call.
type TickResult struct {
	// Fired is false if the aura had already expired/been removed by
	// the time Tick was called — a no-op, per spec.md §4.1 ("an
	// AuraTick for an aura already expired is a no-op").
	Fired bool
	// StillActive is true if another tick should be scheduled at
	// NextTick.
	StillActive bool
	NextTick    time.Duration
	Aura        *Aura
}

// Tick executes one periodic activation. The tick at exactly
// expires_at fires (spec.md §9, Open Question resolved: "tick at t ==
// expires_at fires"). After firing, next_tick advances by the
// effective interval and remaining_ticks decrements; if the advanced
// next_tick is past expires_at, or remaining_ticks has reached 0, the
// aura expires at or before this call returns.
func (s *AuraStore) Tick(id AuraId, now time.Duration) TickResult {
	a, ok := s.auras[id]
	if !ok || !a.active {
		return TickResult{Fired: false}
	}
	if now > a.expiresAt {
		// Stale tick for an aura that expired between scheduling and
		// firing (e.g. explicit removal) — no-op.
		s.expire(a)
		return TickResult{Fired: false}
	}

	a.nextTick += a.effectiveInterval
	a.remainingTicks--

	stillActive := a.remainingTicks > 0 && a.nextTick <= a.expiresAt
	if !stillActive {
		s.expire(a)
		return TickResult{Fired: true, StillActive: false, Aura: a}
	}
	return TickResult{Fired: true, StillActive: true, NextTick: a.nextTick, Aura: a}
}

// ExpireIfDue removes the aura if now >= expires_at. Returns true if
// it was removed. Used by the driver to handle the AuraExpire event.
// A periodic aura whose next tick is still due at or before expires_at
// is left in place: that tick fires and expires the aura itself (see
// Tick).
func (s *AuraStore) ExpireIfDue(id AuraId, now time.Duration) bool {
	a, ok := s.auras[id]
	if !ok || !a.active {
		return false
	}
	if now < a.expiresAt {
		return false
	}
	if a.Def.IsPeriodic() && a.remainingTicks > 0 && a.nextTick <= a.expiresAt {
		return false
	}
	s.expire(a)
	return true
}

func (s *AuraStore) expire(a *Aura) {
	a.active = false
	a.stacks = 0
}

// Remove force-removes an aura (explicit dispel or supersession by a
// replacement aura), independent of its expiry time.
func (s *AuraStore) Remove(id AuraId) {
	if a, ok := s.auras[id]; ok {
		s.expire(a)
	}
}

// ExtendDuration extends expires_at by amount. Per spec.md §7,
// "Extending an aura never lowers expires_at": a non-positive amount
// is a no-op rather than shortening the aura.
func (s *AuraStore) ExtendDuration(id AuraId, amount time.Duration) {
	a, ok := s.auras[id]
	if !ok || !a.active || amount <= 0 {
		return
	}
	a.expiresAt += amount
}

// All returns every currently active aura, for iteration by callers
// that need to recompute stats (e.g. on a haste change).
func (s *AuraStore) All() []*Aura {
	out := make([]*Aura, 0, len(s.auras))
	for _, a := range s.auras {
		if a.active {
			out = append(out, a)
		}
	}
	return out
}
