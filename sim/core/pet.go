package core

import "time"

// PetInheritanceCoefficients are the fractions of an owner's stats a
// pet inherits (spec.md §4.7). Secondary ratings (crit/haste/mastery/
// versatility) always inherit at 100%; only AP/SP cross-pollination and
// the primary-stat scaling coefficients vary per pet template.
type PetInheritanceCoefficients struct {
	ApFromOwnerAp float64
	ApFromOwnerSp float64
	SpFromOwnerAp float64
	SpFromOwnerSp float64

	StaminaCoef  float64
	ArmorCoef    float64
	IntellectCoef float64
}

// PetTemplate is the immutable descriptor used by EffectSummonPet.
type PetTemplate struct {
	Name          string
	Coefficients  PetInheritanceCoefficients
	BaseStats     [NumPrimaryStats]float64
	// BaseAttackSpeed is the pet's unhasted melee swing timer; actual
	// swing timer is BaseAttackSpeed / haste_mult (spec.md §4.7,
	// "pet attack speed follows 2000/haste_mult for a 2.0s base").
	BaseAttackSpeed time.Duration
}

// OwnerSnapshot is the subset of the owner's current stats a pet's
// inherited stats are derived from.
type OwnerSnapshot struct {
	AttackPower   float64
	SpellPower    float64
	CritChance    float64
	HasteMult     float64
	MasteryChance float64
	VersPercent   float64
}

// InheritedStats is a pet's derived combat stats, as computed by
// PetTemplate.Inherit from its template and the owner's snapshot.
type InheritedStats struct {
	AttackPower float64
	SpellPower  float64
	CritChance  float64
	HasteMult   float64
	MasteryChance float64
	VersPercent float64
	AttackSpeed time.Duration
}

func (t PetTemplate) Inherit(owner OwnerSnapshot) InheritedStats {
	c := t.Coefficients
	attackSpeed := t.BaseAttackSpeed
	if owner.HasteMult > 0 {
		attackSpeed = time.Duration(float64(t.BaseAttackSpeed) / owner.HasteMult)
	}
	return InheritedStats{
		AttackPower:   owner.AttackPower*c.ApFromOwnerAp + owner.SpellPower*c.ApFromOwnerSp,
		SpellPower:    owner.SpellPower*c.SpFromOwnerSp + owner.AttackPower*c.SpFromOwnerAp,
		CritChance:    owner.CritChance,
		HasteMult:     owner.HasteMult,
		MasteryChance: owner.MasteryChance,
		VersPercent:   owner.VersPercent,
		AttackSpeed:   attackSpeed,
	}
}

// Pet is the live instance of a summoned/permanent pet.
type Pet struct {
	Unit     UnitId
	Template PetTemplate
	Auras    *AuraStore
	Resources *Resources

	SummonedAt time.Duration
	// ExpiresAt is zero for a permanent (non-timed) pet.
	ExpiresAt time.Duration
	Permanent bool

	NextSwingAt time.Duration
	Stats       InheritedStats
}

func (p *Pet) Active(now time.Duration) bool {
	if p.Permanent {
		return true
	}
	return now < p.ExpiresAt
}
