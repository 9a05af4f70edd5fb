package core

import (
	"fmt"
	"time"
)

// ConfigError reports one structural problem found while validating a
// SimConfig, before a Simulation is ever constructed (spec.md §4.1,
// "a sim never starts against an invalid config").
type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

// SimConfig is the complete, immutable input to one simulation run.
// Two independent runs sharing a SimConfig value (and RotationProgram)
// must never observe each other's state (spec.md §5, batch isolation).
type SimConfig struct {
	Duration time.Duration
	Seed     int64

	PlayerName   string
	BasePrimary  [NumPrimaryStats]float64
	BaseRating   [NumSecondaryRatings]float64
	Coefficients SpecCoefficients

	PrimaryResource   ResourceConfig
	SecondaryResources []ResourceConfig

	Spells []SpellDef
	Auras  []AuraDef
	Procs  []ProcDef

	Rotation RotationProgram

	TargetCount int
	TargetArmor float64
	TargetHealth float64

	Talents map[string]bool
	Pets    []PetTemplate
}

// petTemplates indexes Pets by name for EffectSummonPet lookups.
func (c *SimConfig) petTemplates() map[string]PetTemplate {
	m := make(map[string]PetTemplate, len(c.Pets))
	for _, t := range c.Pets {
		m[t.Name] = t
	}
	return m
}

// Validate checks referential integrity (spell/aura ids referenced by
// effects and the rotation must exist) and basic numeric sanity.
// Callers must not construct a Simulation from a config that fails
// this (spec.md §4.1).
func (c *SimConfig) Validate() []ConfigError {
	var errs []ConfigError

	if c.Duration <= 0 {
		errs = append(errs, ConfigError{"duration", "must be positive"})
	}
	if c.TargetCount < 1 {
		errs = append(errs, ConfigError{"target_count", "must be at least 1"})
	}

	spellIds := make(map[SpellId]bool, len(c.Spells))
	for _, s := range c.Spells {
		spellIds[s.Id] = true
	}
	auraIds := make(map[AuraId]bool, len(c.Auras))
	for _, a := range c.Auras {
		auraIds[a.Id] = true
	}

	checkSpellRef := func(field string, id SpellId) {
		if id != 0 && !spellIds[id] {
			errs = append(errs, ConfigError{field, fmt.Sprintf("references undefined spell id %d", id)})
		}
	}
	checkAuraRef := func(field string, id AuraId) {
		if id != 0 && !auraIds[id] {
			errs = append(errs, ConfigError{field, fmt.Sprintf("references undefined aura id %d", id)})
		}
	}

	var walkEffects func(field string, effects []SpellEffect)
	walkEffects = func(field string, effects []SpellEffect) {
		for _, e := range effects {
			switch e.Kind {
			case EffectReduceCooldown, EffectGainCharge:
				checkSpellRef(field, e.TargetSpell)
				checkSpellRef(field, e.ChargeSpell)
			case EffectTriggerSpell, EffectPetMirrorCast:
				checkSpellRef(field, e.TriggerSpell)
			case EffectApplyBuff, EffectApplyDebuff, EffectExtendAura, EffectRefreshAura:
				checkAuraRef(field, e.Aura)
			case EffectConditional:
				walkEffects(field, e.Then)
				walkEffects(field, e.Else)
			case EffectMulti:
				walkEffects(field, e.Effects)
			}
		}
	}

	for _, s := range c.Spells {
		walkEffects(fmt.Sprintf("spell[%d].effects", s.Id), s.Effects)
		if s.Cooldown.MaxCharges > 1 && s.Cooldown.RechargeDuration <= 0 {
			errs = append(errs, ConfigError{fmt.Sprintf("spell[%d].cooldown", s.Id), "charge system requires a positive recharge_duration"})
		}
	}
	for _, a := range c.Auras {
		if a.TickInterval < 0 {
			errs = append(errs, ConfigError{fmt.Sprintf("aura[%d].tick_interval", a.Id), "must not be negative"})
		}
		if a.MaxStacks < 0 {
			errs = append(errs, ConfigError{fmt.Sprintf("aura[%d].max_stacks", a.Id), "must not be negative"})
		}
	}
	for i, p := range c.Procs {
		if p.Kind == ProcRPPM && p.Rppm <= 0 {
			errs = append(errs, ConfigError{fmt.Sprintf("procs[%d].rppm", i), "must be positive for an RPPM proc"})
		}
		if p.Kind != ProcRPPM && (p.Chance < 0 || p.Chance > 1) {
			errs = append(errs, ConfigError{fmt.Sprintf("procs[%d].chance", i), "must be within [0, 1]"})
		}
	}

	if c.Rotation != nil {
		_, validationErrs := c.Rotation.Validate(spellIds, auraIds)
		errs = append(errs, validationErrs...)
	}

	return errs
}
