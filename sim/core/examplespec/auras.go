package examplespec

import (
	"time"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// buildAuras returns the example kit's buffs/debuffs: a pandemic-
// refreshable DoT debuff, a plain stat buff, and a stacking buff that
// exercises AuraEffectDamageDoneModifier's PerStack scaling.
func buildAuras() []core.AuraDef {
	return []core.AuraDef{
		{
			Id:           AuraRend,
			Name:         "Rend",
			Duration:     12 * time.Second,
			MaxStacks:    1,
			TickInterval: 3 * time.Second,
			Effects: []core.AuraEffect{
				{Kind: core.AuraEffectPeriodicDamage, BaseTickAmount: 15, TickApCoef: 0.05, School: core.SchoolPhysical},
			},
			Flags: core.AuraIsDebuff | core.AuraRefreshable | core.AuraHastedTicks,
		},
		{
			Id:        AuraBattleFury,
			Name:      "Battle Fury",
			Duration:  30 * time.Second,
			MaxStacks: 1,
			Effects: []core.AuraEffect{
				{Kind: core.AuraEffectStatBuff, FlatRating: [core.NumSecondaryRatings]float64{core.RatingHaste: 200}},
			},
		},
		{
			Id:        AuraFrenzy,
			Name:      "Frenzy",
			Duration:  15 * time.Second,
			MaxStacks: 5,
			Effects: []core.AuraEffect{
				{Kind: core.AuraEffectDamageDoneModifier, DamageModMultiplier: 0, DamageModPerStack: 0.04},
			},
			Flags: core.AuraRefreshable,
		},
	}
}
