package core

// DamageSchool tags the school of a hit, used to decide whether armor
// mitigation applies (Physical only, per spec.md §4.4 step 5).
type DamageSchool int

const (
	SchoolPhysical DamageSchool = iota
	SchoolFire
	SchoolFrost
	SchoolNature
	SchoolShadow
	SchoolArcane
	SchoolHoly
)

// HitResult tags whether a computed hit crit.
type HitResult int

const (
	HitNormal HitResult = iota
	HitCrit
)

// DamageInput is the immutable shape of one damage roll: base min/max,
// AP/SP coefficients, school, and the defender's armor (spec.md §4.4).
type DamageInput struct {
	BaseMin  float64
	BaseMax  float64
	ApCoef   float64
	SpCoef   float64
	School   DamageSchool
	Armor    float64
}

// DamageOutcome is the result of one DamagePipeline.Roll call.
type DamageOutcome struct {
	FinalAmount float64
	HitResult   HitResult
	School      DamageSchool
}

// ModConditionKind tags the predicate variant a DamageMod evaluates
// against current state (spec.md §3 DamageMod, §4.4 step 7).
type ModConditionKind int

const (
	ModAlways ModConditionKind = iota
	ModBuffActive
	ModDebuffActive
	ModTargetHealthBelow
	ModPlayerHealthBelow
	ModHasStacks
	ModTalentEnabled
	ModAnd
	ModOr
	ModNot
)

type ModCondition struct {
	Kind     ModConditionKind
	Aura     AuraId
	Percent  float64
	MinStacks int32
	Talent   string
	Operands []ModCondition // And/Or/Not
}

// DamageMod is a declarative conditional multiplier (spec.md §3/§4.4).
// Per-stack mods multiply by (1 + stacks*PerStack). A StatScaling mod
// (ScalesWithCrit) multiplies by (1 + crit_chance*ScalingFactor).
type DamageMod struct {
	Name          string
	Condition     ModCondition
	Multiplier    float64
	PerStack      float64
	ScalesWithCrit bool
	ScalingFactor float64
	Priority      int
}

// EvalContext is the minimal state a ModCondition/EffectCondition
// evaluator needs: the caster's and target's aura stores and health.
type EvalContext struct {
	CasterAuras     *AuraStore
	TargetAuras     *AuraStore
	PetAuras        *AuraStore
	TargetHealthPct float64
	PlayerHealthPct float64
	TalentEnabled   func(name string) bool
	StacksOf        func(store *AuraStore, id AuraId) int32

	// attackPowerValue/spellPowerValue carry the caster's current cached
	// power stats into the pipeline; set via NewEvalContext or directly
	// by callers that already have a StatCache snapshot in hand.
	attackPowerValue float64
	spellPowerValue  float64
}

// WithPower returns a copy of ctx carrying the caster's current AP/SP,
// as read from its StatCache, for the power-contribution step of
// DamagePipeline.Roll.
func (ctx EvalContext) WithPower(attackPower, spellPower float64) EvalContext {
	ctx.attackPowerValue = attackPower
	ctx.spellPowerValue = spellPower
	return ctx
}

func evalModCondition(c ModCondition, ctx EvalContext) bool {
	switch c.Kind {
	case ModAlways:
		return true
	case ModBuffActive:
		return ctx.CasterAuras != nil && ctx.CasterAuras.Has(c.Aura)
	case ModDebuffActive:
		return ctx.TargetAuras != nil && ctx.TargetAuras.Has(c.Aura)
	case ModTargetHealthBelow:
		return ctx.TargetHealthPct < c.Percent
	case ModPlayerHealthBelow:
		return ctx.PlayerHealthPct < c.Percent
	case ModHasStacks:
		if ctx.CasterAuras == nil {
			return false
		}
		return ctx.CasterAuras.Stacks(c.Aura) >= c.MinStacks
	case ModTalentEnabled:
		return ctx.TalentEnabled != nil && ctx.TalentEnabled(c.Talent)
	case ModAnd:
		for _, op := range c.Operands {
			if !evalModCondition(op, ctx) {
				return false
			}
		}
		return true
	case ModOr:
		for _, op := range c.Operands {
			if evalModCondition(op, ctx) {
				return true
			}
		}
		return false
	case ModNot:
		if len(c.Operands) == 0 {
			return true
		}
		return !evalModCondition(c.Operands[0], ctx)
	default:
		return false
	}
}

// DamagePipeline computes the damage of a single hit, threading a
// single deterministic RNG stream through all rolls so a given seed
// reproduces the exact sequence (spec.md §4.4).
type DamagePipeline struct {
	Rng *Rand

	// AllDamageMultiplier folds in buffs active on the caster (computed
	// by the caller from StatCache/AuraStore before the call).
	AllDamageMultiplier float64

	CritChance     float64
	CritMultiplier float64

	VersatilityDamageBonus float64
	// MasteryDamageMultiplier is 0 if the spec's mastery is not
	// damage-scaling for this hit.
	MasteryDamageMultiplier float64

	Mods []DamageMod

	// ExpectedValueMode replaces the crit roll and variance sampling
	// with their expectations (spec.md §4.4 "Expected-value mode").
	ExpectedValueMode bool
}

// Roll executes the full pipeline for one hit.
func (p *DamagePipeline) Roll(in DamageInput, ctx EvalContext) DamageOutcome {
	// 1. Base sample.
	var base float64
	if in.BaseMin == in.BaseMax {
		base = in.BaseMin
	} else if p.ExpectedValueMode {
		base = (in.BaseMin + in.BaseMax) / 2
	} else {
		base = in.BaseMin + p.Rng.Float64()*(in.BaseMax-in.BaseMin)
	}

	// 2. Attack/spell contribution.
	powerComponent := ctx.attackPower()*in.ApCoef + ctx.spellPower()*in.SpCoef

	// 3. Raw damage with all-damage multipliers.
	raw := (base + powerComponent) * p.AllDamageMultiplier

	// 4. Crit.
	hit := HitNormal
	if p.ExpectedValueMode {
		raw *= 1 + p.CritChance*(p.CritMultiplier-1)
	} else {
		u := p.Rng.Float64()
		if u < p.CritChance {
			raw *= p.CritMultiplier
			hit = HitCrit
		}
	}

	// 5. Mitigation: Physical only.
	if in.School == SchoolPhysical {
		raw *= armorMitigationFactor(in.Armor)
	}

	// 6. Versatility / mastery.
	raw *= 1 + p.VersatilityDamageBonus
	if p.MasteryDamageMultiplier != 0 {
		raw *= 1 + p.MasteryDamageMultiplier
	}

	// 7. Conditional damage modifiers, priority ascending.
	mods := make([]DamageMod, len(p.Mods))
	copy(mods, p.Mods)
	sortModsByPriority(mods)
	for _, mod := range mods {
		if !evalModCondition(mod.Condition, ctx) {
			continue
		}
		factor := mod.Multiplier
		if mod.PerStack != 0 {
			stacks := int32(0)
			if ctx.StacksOf != nil && ctx.CasterAuras != nil {
				stacks = ctx.StacksOf(ctx.CasterAuras, mod.Condition.Aura)
			}
			factor *= 1 + float64(stacks)*mod.PerStack
		}
		if mod.ScalesWithCrit {
			factor *= 1 + p.CritChance*mod.ScalingFactor
		}
		raw *= factor
	}

	return DamageOutcome{FinalAmount: raw, HitResult: hit, School: in.School}
}

func sortModsByPriority(mods []DamageMod) {
	// Small N, stable insertion sort keeps mods with equal priority in
	// declaration order (deterministic tracing, spec.md §3 "priority
	// ordering tiebreaker").
	for i := 1; i < len(mods); i++ {
		j := i
		for j > 0 && mods[j-1].Priority > mods[j].Priority {
			mods[j-1], mods[j] = mods[j], mods[j-1]
			j--
		}
	}
}

// armorMitigationFactor implements the standard diminishing-returns
// armor curve: factor = 1 - armor / (armor + K), with the mitigation
// term capped at 0.99, so the factor lies in [0.01, 1].
// K is the retail-style constant scaled to a flat value here since
// level-scaling coefficients are supplied via SpecCoefficients
// elsewhere; armor reduction itself needs no further per-spec inputs.
func armorMitigationFactor(armor float64) float64 {
	if armor <= 0 {
		return 1
	}
	const armorConstant = 10557.5
	mitigation := armor / (armor + armorConstant)
	return 1 - Clamp(mitigation, 0, 0.99)
}

func (ctx EvalContext) attackPower() float64 { return ctx.attackPowerValue }
func (ctx EvalContext) spellPower() float64  { return ctx.spellPowerValue }
