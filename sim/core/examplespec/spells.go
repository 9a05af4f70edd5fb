package examplespec

import (
	"time"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// buildSpells returns the example kit's castable abilities: a
// resource builder/spender pair, a DoT applicator, a raid buff, a
// conditional nested cast, a charge cooldown plus its accelerator, a
// cleave, and a pet-summon/pet-mirror pair. EffectExtendAura,
// EffectRefreshAura and EffectMulti are not used by any of them.
func buildSpells() []core.SpellDef {
	return []core.SpellDef{
		{
			Id:             SpellStrike,
			Name:           "Strike",
			Gcd:            core.GcdTriggers,
			ResourceDeltas: []core.ResourceDelta{{Resource: ResourceEnergy, Amount: -20}},
			Damage:         &core.DamageInput{BaseMin: 50, BaseMax: 70, ApCoef: 0.5, School: core.SchoolPhysical},
			Flags:          core.SpellIsMelee | core.SpellCanCrit,
		},
		{
			Id:             SpellRendingBlow,
			Name:           "Rending Blow",
			Gcd:            core.GcdTriggers,
			Cooldown:       core.CooldownConfig{BaseDuration: 6 * time.Second},
			ResourceDeltas: []core.ResourceDelta{{Resource: ResourceEnergy, Amount: -30}},
			Damage:         &core.DamageInput{BaseMin: 30, BaseMax: 40, ApCoef: 0.3, School: core.SchoolPhysical},
			Effects:        []core.SpellEffect{{Kind: core.EffectApplyDebuff, Aura: AuraRend}},
			Flags:          core.SpellIsMelee | core.SpellCanCrit,
		},
		{
			Id:       SpellBattleShout,
			Name:     "Battle Shout",
			Gcd:      core.GcdOffGcd,
			Cooldown: core.CooldownConfig{BaseDuration: 30 * time.Second},
			Effects:  []core.SpellEffect{{Kind: core.EffectApplyBuff, Aura: AuraBattleFury}},
		},
		{
			Id:             SpellExecute,
			Name:           "Execute",
			Gcd:            core.GcdTriggers,
			ResourceDeltas: []core.ResourceDelta{{Resource: ResourceEnergy, Amount: -40}},
			Damage:         &core.DamageInput{BaseMin: 150, BaseMax: 200, ApCoef: 1.0, School: core.SchoolPhysical},
			Effects: []core.SpellEffect{
				{
					Kind: core.EffectConditional,
					Condition: core.EffectCondition{
						Kind:    core.CondTargetHealthBelow,
						Percent: 20,
					},
					Then: []core.SpellEffect{{Kind: core.EffectTriggerSpell, TriggerSpell: SpellExecuteEcho}},
				},
			},
			Flags: core.SpellIsMelee | core.SpellCanCrit,
		},
		{
			// ExecuteEcho is never reached through the rotation list; it
			// only fires as Execute's EffectTriggerSpell nested cast, so it
			// carries no resource cost and skips the GCD entirely
			// (spec.md §4.5, "instant, GCD-free nested casts").
			Id:     SpellExecuteEcho,
			Name:   "Execute Echo",
			Gcd:    core.GcdOffGcd,
			Damage: &core.DamageInput{BaseMin: 40, BaseMax: 60, ApCoef: 0.2, School: core.SchoolPhysical},
			Flags:  core.SpellCanCrit,
		},
		{
			Id:       SpellCallCompanion,
			Name:     "Call Companion",
			Gcd:      core.GcdOffGcd,
			Cooldown: core.CooldownConfig{BaseDuration: 60 * time.Second},
			Effects:  []core.SpellEffect{{Kind: core.EffectSummonPet, PetTemplate: PetWolf, PetDuration: 20 * time.Second}},
		},
		{
			Id:             SpellRapidVolley,
			Name:           "Rapid Volley",
			Gcd:            core.GcdTriggers,
			Cooldown:       core.CooldownConfig{BaseDuration: 10 * time.Second, MaxCharges: 2, RechargeDuration: 10 * time.Second},
			ResourceDeltas: []core.ResourceDelta{{Resource: ResourceEnergy, Amount: -15}},
			Damage:         &core.DamageInput{BaseMin: 25, BaseMax: 35, ApCoef: 0.2, School: core.SchoolPhysical},
			Flags:          core.SpellCanCrit,
		},
		{
			Id:       SpellAdrenalineSurge,
			Name:     "Adrenaline Surge",
			Gcd:      core.GcdOffGcd,
			Cooldown: core.CooldownConfig{BaseDuration: 45 * time.Second},
			Effects: []core.SpellEffect{
				{Kind: core.EffectReduceCooldown, TargetSpell: SpellRapidVolley, Reduction: 5 * time.Second},
				{Kind: core.EffectGainCharge, ChargeSpell: SpellRapidVolley},
			},
		},
		{
			Id:             SpellCleavingSweep,
			Name:           "Cleaving Sweep",
			Gcd:            core.GcdTriggers,
			Cooldown:       core.CooldownConfig{BaseDuration: 12 * time.Second},
			ResourceDeltas: []core.ResourceDelta{{Resource: ResourceEnergy, Amount: -25}},
			Damage:         &core.DamageInput{BaseMin: 45, BaseMax: 55, ApCoef: 0.4, School: core.SchoolPhysical},
			Effects:        []core.SpellEffect{{Kind: core.EffectCleave, CleaveTargets: 2, CleaveFalloff: 0.5}},
			Flags:          core.SpellIsMelee | core.SpellCanCrit,
		},
		{
			// LuckyStrike only ever fires from ProcRegistry.TryProc's
			// ProcOnCrit dispatch (see buildProcs); it is never named by the
			// rotation.
			Id:      SpellLuckyStrike,
			Name:    "Lucky Strike",
			Damage:  &core.DamageInput{BaseMin: 20, BaseMax: 30, SpCoef: 0.3, School: core.SchoolNature},
			Effects: []core.SpellEffect{{Kind: core.EffectApplyBuff, Aura: AuraFrenzy}},
			Flags:   core.SpellIsSpell | core.SpellCanCrit,
		},
		{
			Id:       SpellBeastCommand,
			Name:     "Beast Command",
			Gcd:      core.GcdOffGcd,
			Cooldown: core.CooldownConfig{BaseDuration: 20 * time.Second},
			Effects:  []core.SpellEffect{{Kind: core.EffectPetMirrorCast, TriggerSpell: SpellStrike}},
		},
		{
			// SecondWind only fires from buildProcs' ICD proc; like
			// LuckyStrike it is never named by the rotation.
			Id:      SpellSecondWind,
			Name:    "Second Wind",
			Effects: []core.SpellEffect{{Kind: core.EffectReduceCooldown, TargetSpell: SpellRapidVolley, Reduction: 2 * time.Second}},
		},
	}
}
