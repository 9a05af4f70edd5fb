package rotation

import (
	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// evalState is the per-call evaluation context: live sim state plus the
// name table, threaded through every Expr/Action walk for one
// NextAction invocation.
type evalState struct {
	ctx   core.RotationContext
	names Names
}

// evalExpr evaluates e against es. Domain lookups that reference a
// name absent from es.names (which Program.Validate should already
// have rejected before the rotation is ever run) return the type's
// zero Value rather than panicking, so such a check reads as false
// rather than crashing an in-progress batch. The exceptions are an
// aura's inactive and refreshable fields, which read true for an
// unknown aura just as they do for an absent one.
func evalExpr(e Expr, es *evalState) Value {
	switch ex := e.(type) {
	case BoolLit:
		return BoolValue(ex.Value)
	case IntLit:
		return IntValue(float64(ex.Value))
	case FloatLit:
		return FloatValue(ex.Value)
	case UserVar:
		return FloatValue(es.ctx.Vars[ex.Name])

	case AndExpr:
		for _, o := range ex.Operands {
			if !evalExpr(o, es).Truthy() {
				return BoolValue(false)
			}
		}
		return BoolValue(true)
	case OrExpr:
		for _, o := range ex.Operands {
			if evalExpr(o, es).Truthy() {
				return BoolValue(true)
			}
		}
		return BoolValue(false)
	case NotExpr:
		return BoolValue(!evalExpr(ex.Operand, es).Truthy())

	case CompareExpr:
		l := evalExpr(ex.Left, es).AsFloat()
		r := evalExpr(ex.Right, es).AsFloat()
		switch ex.Op {
		case CmpGt:
			return BoolValue(l > r)
		case CmpGte:
			return BoolValue(l >= r)
		case CmpLt:
			return BoolValue(l < r)
		case CmpLte:
			return BoolValue(l <= r)
		case CmpEq:
			return BoolValue(l == r)
		default:
			return BoolValue(l != r)
		}

	case ArithExpr:
		l := evalExpr(ex.Left, es).AsFloat()
		r := evalExpr(ex.Right, es).AsFloat()
		return FloatValue(applyArith(ex.Op, l, r))

	case UnaryNumExpr:
		v := evalExpr(ex.Operand, es).AsFloat()
		return FloatValue(applyUnary(ex.Op, v))

	case ResourceExpr:
		return evalResourceExpr(ex, es)
	case PlayerExpr:
		return evalPlayerExpr(ex, es)
	case CooldownExpr:
		return evalCooldownExpr(ex, es)
	case BuffExpr:
		return evalAuraExpr(ex.Aura, ex.Field, es, es.ctx.Self)
	case DebuffExpr:
		return evalAuraExpr(ex.Aura, ex.Field, es, es.ctx.Target)
	case DotExpr:
		return evalAuraExpr(ex.Aura, ex.Field, es, es.ctx.Target)
	case TargetExpr:
		return evalTargetExpr(ex, es)
	case EnemyExpr:
		return IntValue(float64(len(es.ctx.Enemies)))
	case CombatExpr:
		return evalCombatExpr(ex, es)
	case GcdExpr:
		return evalGcdExpr(ex, es)
	case PetExpr:
		return evalPetExpr(ex, es)
	case TalentExpr:
		return BoolValue(es.ctx.Self != nil && es.ctx.Self.Talents[ex.Name])
	case SpellExpr:
		return evalSpellExpr(ex, es)
	case EquippedExpr, TrinketReadyExpr, TrinketRemainingExpr:
		// Non-goal: spec.md's scope has no item/trinket equipment model
		// (see SPEC_FULL.md Non-goals); these always evaluate false/0.
		return zeroValueFor(e)
	default:
		return Value{}
	}
}

func zeroValueFor(e Expr) Value {
	if e.valueKind() == KindBool {
		return BoolValue(false)
	}
	return FloatValue(0)
}

func applyArith(op ArithOp, l, r float64) float64 {
	switch op {
	case ArithAdd:
		return l + r
	case ArithSub:
		return l - r
	case ArithMul:
		return l * r
	case ArithDiv:
		if r == 0 {
			return 0
		}
		return l / r
	case ArithMod:
		if r == 0 {
			return 0
		}
		return mod(l, r)
	case ArithMin:
		if l < r {
			return l
		}
		return r
	case ArithMax:
		if l > r {
			return l
		}
		return r
	default:
		return 0
	}
}

func applyUnary(op UnaryNumOp, v float64) float64 {
	switch op {
	case UnaryFloor:
		i := int64(v)
		if float64(i) > v {
			i--
		}
		return float64(i)
	case UnaryCeil:
		i := int64(v)
		if float64(i) < v {
			i++
		}
		return float64(i)
	case UnaryAbs:
		if v < 0 {
			return -v
		}
		return v
	default:
		return v
	}
}

func evalResourceExpr(ex ResourceExpr, es *evalState) Value {
	id, err := es.names.resource(ex.Resource)
	if err != nil || es.ctx.Self == nil {
		return FloatValue(0)
	}
	r := es.ctx.Self.Resources.Get(id)
	if r == nil {
		return FloatValue(0)
	}
	switch ex.Field {
	case ResourceMax:
		return FloatValue(r.Max)
	case ResourceDeficit:
		return FloatValue(r.Deficit())
	case ResourcePercent:
		return FloatValue(r.Percent())
	case ResourceRegen:
		return FloatValue(r.RegenPerSec)
	default:
		return FloatValue(r.Current)
	}
}

func evalPlayerExpr(ex PlayerExpr, es *evalState) Value {
	if es.ctx.Self == nil {
		return FloatValue(0)
	}
	switch ex.Field {
	case PlayerHealthMax:
		return FloatValue(es.ctx.Self.HealthMax)
	case PlayerHealthPercent:
		return FloatValue(es.ctx.Self.HealthPercent())
	default:
		return FloatValue(es.ctx.Self.HealthCurrent)
	}
}

func evalCooldownExpr(ex CooldownExpr, es *evalState) Value {
	def, err := es.names.spell(ex.Spell)
	if err != nil || es.ctx.Self == nil {
		return zeroValueFor(ex)
	}
	cd := es.ctx.Self.Cooldown(def.Id)
	now := es.ctx.Now
	switch ex.Field {
	case CdReady:
		return BoolValue(es.ctx.Self.CooldownReady(def.Id, now))
	case CdDuration:
		return FloatValue(def.Cooldown.BaseDuration.Seconds())
	case CdCharges:
		if cd == nil {
			return IntValue(1)
		}
		return IntValue(float64(cd.Charges()))
	case CdChargesMax:
		if cd == nil {
			return IntValue(1)
		}
		return IntValue(float64(cd.MaxChargesValue()))
	case CdFullRecharge:
		if cd == nil {
			return FloatValue(0)
		}
		return FloatValue(cd.FullRechargeRemaining(now).Seconds())
	default: // CdRemaining, CdRechargeTime
		if cd == nil {
			return FloatValue(0)
		}
		return FloatValue(cd.Remaining(now).Seconds())
	}
}

func evalAuraExpr(auraName string, field AuraField, es *evalState, unit *core.Unit) Value {
	def, err := es.names.aura(auraName)
	if err != nil || unit == nil {
		return auraZero(field)
	}
	now := es.ctx.Now
	switch field {
	case AuraActive:
		return BoolValue(unit.Auras.Has(def.Id))
	case AuraInactive:
		return BoolValue(!unit.Auras.Has(def.Id))
	case AuraRemaining:
		return FloatValue(unit.Auras.Remaining(def.Id, now).Seconds())
	case AuraStacks:
		return IntValue(float64(unit.Auras.Stacks(def.Id)))
	case AuraStacksMax:
		return IntValue(float64(def.MaxStacks))
	case AuraDuration:
		return FloatValue(def.Duration.Seconds())
	case AuraRefreshable:
		return BoolValue(unit.Auras.Refreshable(def.Id, now))
	case AuraTicksRemaining:
		a := unit.Auras.Get(def.Id)
		if a == nil {
			return IntValue(0)
		}
		return IntValue(float64(a.RemainingTicks()))
	case AuraTickTime:
		a := unit.Auras.Get(def.Id)
		if a == nil {
			return FloatValue(def.TickInterval.Seconds())
		}
		return FloatValue(a.EffectiveInterval().Seconds())
	case AuraNextTickIn:
		a := unit.Auras.Get(def.Id)
		if a == nil {
			return FloatValue(0)
		}
		remaining := a.NextTick() - now
		if remaining < 0 {
			remaining = 0
		}
		return FloatValue(remaining.Seconds())
	default:
		return auraZero(field)
	}
}

func auraZero(field AuraField) Value {
	if auraFieldKind(field) == KindBool {
		if field == AuraInactive || field == AuraRefreshable {
			return BoolValue(true)
		}
		return BoolValue(false)
	}
	return FloatValue(0)
}

func evalTargetExpr(ex TargetExpr, es *evalState) Value {
	if es.ctx.Target == nil {
		return FloatValue(0)
	}
	switch ex.Field {
	case TargetHealthPercent:
		return FloatValue(es.ctx.Target.HealthPercent())
	case TargetTimeToDie:
		return FloatValue(0) // Non-goal: no DPS-projection model (SPEC_FULL.md Non-goals)
	default:
		return FloatValue(0) // Non-goal: no positional/range model
	}
}

func evalCombatExpr(ex CombatExpr, es *evalState) Value {
	elapsed := (es.ctx.Now - es.ctx.CombatStart).Seconds()
	if ex.Field == CombatTime {
		return FloatValue(elapsed)
	}
	return FloatValue(0) // remaining requires total duration, not exposed on RotationContext
}

func evalGcdExpr(ex GcdExpr, es *evalState) Value {
	if es.ctx.Self == nil {
		return FloatValue(0)
	}
	if ex.Field == GcdDuration {
		return FloatValue(core.DefaultGcd.Seconds())
	}
	remaining := es.ctx.Self.GcdEndsAt - es.ctx.Now
	if remaining < 0 {
		remaining = 0
	}
	return FloatValue(remaining.Seconds())
}

func evalPetExpr(ex PetExpr, es *evalState) Value {
	if len(es.ctx.Pets) == 0 {
		return zeroValueFor(ex)
	}
	pet := es.ctx.Pets[0]
	switch ex.Field {
	case PetActive:
		return BoolValue(pet.Active(es.ctx.Now))
	case PetRemaining:
		if pet.Permanent {
			return FloatValue(0)
		}
		remaining := pet.ExpiresAt - es.ctx.Now
		if remaining < 0 {
			remaining = 0
		}
		return FloatValue(remaining.Seconds())
	case PetBuffActive:
		def, err := es.names.aura(ex.Aura)
		if err != nil {
			return BoolValue(false)
		}
		return BoolValue(pet.Auras.Has(def.Id))
	default:
		return FloatValue(0)
	}
}

func evalSpellExpr(ex SpellExpr, es *evalState) Value {
	def, err := es.names.spell(ex.Spell)
	if err != nil {
		return FloatValue(0)
	}
	if ex.Field == SpellCastTime {
		return FloatValue(def.CastTime.Seconds())
	}
	for _, rd := range def.ResourceDeltas {
		if rd.Amount < 0 {
			return FloatValue(-rd.Amount)
		}
	}
	return FloatValue(0)
}
