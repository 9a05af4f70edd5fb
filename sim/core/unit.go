package core

import "time"

// Unit ties together every per-combatant subsystem: stats, resources,
// auras, cooldowns, and (for the player) pets. Generalizes the
// teacher's per-class Unit embedding into one data-driven shape that
// SimConfig data configures rather than subclass.
type Unit struct {
	Id   UnitId
	Name string

	BasePrimary [NumPrimaryStats]float64
	BaseRating  [NumSecondaryRatings]float64
	Coef        SpecCoefficients

	Stats     *StatCache
	Resources *Resources
	Auras     *AuraStore
	snapshots snapshotArena

	cooldowns map[SpellId]*Cooldown

	Pets []*Pet

	Armor float64

	GcdEndsAt  time.Duration
	NextSwingAt time.Duration

	HealthMax     float64
	HealthCurrent float64

	Talents map[string]bool
}

func NewUnit(id UnitId, name string, primary [NumPrimaryStats]float64, rating [NumSecondaryRatings]float64, coef SpecCoefficients, primaryResource ResourceConfig, secondaryResources []ResourceConfig) *Unit {
	u := &Unit{
		Id:          id,
		Name:        name,
		BasePrimary: primary,
		BaseRating:  rating,
		Coef:        coef,
		Stats:       &StatCache{},
		Resources:   NewResources(primaryResource, secondaryResources),
		Auras:       NewAuraStore(id),
		cooldowns:   make(map[SpellId]*Cooldown),
		Talents:     make(map[string]bool),
	}
	u.Stats.MarkDirty()
	return u
}

func (u *Unit) HealthPercent() float64 {
	if u.HealthMax <= 0 {
		return 0
	}
	return u.HealthCurrent / u.HealthMax * 100
}

func (u *Unit) RegisterCooldown(spell SpellId, cfg CooldownConfig) {
	u.cooldowns[spell] = NewCooldown(cfg)
}

func (u *Unit) Cooldown(spell SpellId) *Cooldown { return u.cooldowns[spell] }

// CooldownReady reports whether spell is castable ignoring resources
// and the GCD.
func (u *Unit) CooldownReady(spell SpellId, now time.Duration) bool {
	cd, ok := u.cooldowns[spell]
	if !ok {
		return true
	}
	return cd.Ready(now)
}

func (u *Unit) GcdReady(now time.Duration) bool { return now >= u.GcdEndsAt }

// RecomputeStatsIfDirty recomputes the unit's StatCache from current
// buffs (spec.md §4.2). Callers invoke this once per tick before
// reading any derived stat, after RatingBuffs changed.
func (u *Unit) RecomputeStatsIfDirty(buffs RatingBuffs) {
	u.Stats.Recompute(u.BasePrimary, u.BaseRating, buffs, u.Coef)
}

// Snapshot captures the unit's current derived stats for
// AuraSnapshotsStats auras.
func (u *Unit) Snapshot(allDamageMultiplier float64) Snapshot {
	return Snapshot{
		CritChance:          u.Stats.CritChance,
		CritMultiplier:      u.Stats.CritMultiplier,
		AttackPower:         u.Stats.AttackPower,
		SpellPower:          u.Stats.SpellPower,
		AllDamageMultiplier: allDamageMultiplier,
	}
}

func (u *Unit) OwnerSnapshot() OwnerSnapshot {
	return OwnerSnapshot{
		AttackPower:   u.Stats.AttackPower,
		SpellPower:    u.Stats.SpellPower,
		CritChance:    u.Stats.CritChance,
		HasteMult:     u.Stats.HasteMultiplier,
		MasteryChance: u.Stats.MasteryEffect,
		VersPercent:   u.Stats.VersatilityDamageBonus,
	}
}

// takeSnapshot freezes s into this unit's snapshot arena, returning its
// id for later retrieval by a periodic aura tick.
func (u *Unit) takeSnapshot(s Snapshot) SnapshotId { return u.snapshots.Take(s) }

// snapshotFor resolves the snapshot taken when the given aura was
// applied, if any.
func (u *Unit) snapshotFor(id SnapshotId) (Snapshot, bool) { return u.snapshots.Get(id) }

func (u *Unit) ActivePets(now time.Duration) []*Pet {
	out := make([]*Pet, 0, len(u.Pets))
	for _, p := range u.Pets {
		if p.Active(now) {
			out = append(out, p)
		}
	}
	return out
}
