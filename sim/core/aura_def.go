package core

import "time"

// AuraFlags controls AuraStore/driver behavior for one AuraDef.
type AuraFlags uint16

const (
	AuraHidden AuraFlags = 1 << iota
	// AuraRefreshable marks a stacking-capable aura: apply() while
	// active increments stacks (up to MaxStacks) rather than only
	// refreshing duration. Auras without this flag still receive the
	// pandemic duration refresh, they simply never exceed 1 stack.
	AuraRefreshable
	AuraIsDebuff
	AuraSnapshotsStats
	AuraIsPeriodic
	// AuraHastedTicks: the effective tick interval is BaseInterval /
	// haste_mult, computed once at apply time.
	AuraHastedTicks
	// AuraDynamicHastedTicks: in addition to AuraHastedTicks, the
	// interval and remaining tick count are recomputed whenever haste
	// changes mid-aura (spec.md §4.3 "Hasted ticks").
	AuraDynamicHastedTicks
)

func (f AuraFlags) Has(flag AuraFlags) bool { return f&flag != 0 }

// AuraEffectKind tags the variant of an AuraEffect.
type AuraEffectKind int

const (
	AuraEffectPeriodicDamage AuraEffectKind = iota
	AuraEffectDamageDoneModifier
	AuraEffectPeriodicHeal
	AuraEffectStatBuff
)

// AuraEffect is one declarative effect carried by an AuraDef. Not every
// field applies to every Kind; see spec.md §3 AuraDef.
type AuraEffect struct {
	Kind AuraEffectKind

	// AuraEffectPeriodicDamage / AuraEffectPeriodicHeal
	BaseTickAmount float64
	TickApCoef     float64
	TickSpCoef     float64
	School         DamageSchool

	// AuraEffectDamageDoneModifier
	DamageModMultiplier float64
	DamageModPerStack   float64

	// AuraEffectStatBuff
	FlatPrimary    [NumPrimaryStats]float64
	PercentPrimary [NumPrimaryStats]float64
	FlatRating     [NumSecondaryRatings]float64
	HasteMultiplierBonus float64 // multiplicative, 1.0 = no bonus
}

// AuraDef is the immutable descriptor for an aura (spec.md §3).
type AuraDef struct {
	Id       AuraId
	Name     string
	Duration time.Duration
	MaxStacks int32
	// TickInterval is the base (un-hasted) interval between periodic
	// effects; 0 means the aura is not periodic.
	TickInterval time.Duration
	Effects      []AuraEffect
	Flags        AuraFlags
}

func (d AuraDef) IsPeriodic() bool { return d.TickInterval > 0 }
