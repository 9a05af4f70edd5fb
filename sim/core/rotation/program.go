package rotation

import (
	"fmt"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// maxListDepth bounds Call/Run recursion so a rotation with a
// self-referential list degrades to "no eligible action" on a given
// tick instead of hanging the sim loop.
const maxListDepth = 64

// Program is a compiled rotation ready to drive a Simulation: the
// folded AST plus the name table needed to resolve its dotted
// references. It satisfies core.RotationProgram, and — like SimConfig
// itself — is immutable after construction so one Program can be
// shared, read-only, across every iteration of a batch (spec.md §5).
type Program struct {
	raw   *Rotation
	names Names
}

// NewProgram parses and statically folds rotationJSON, binding its
// dotted string references against names. Only parse errors are
// returned here; structural checks and referential checks against a
// specific SimConfig's spell/aura id sets happen later, in Validate, because
// core.RotationProgram.Validate is the uniform entry point SimConfig.Validate
// calls for that.
func NewProgram(rotationJSON []byte, names Names) (*Program, error) {
	raw, err := Parse(rotationJSON)
	if err != nil {
		return nil, err
	}
	return &Program{raw: foldRotation(raw), names: names}, nil
}

func (p *Program) Validate(spellIds map[core.SpellId]bool, auraIds map[core.AuraId]bool) ([]string, []core.ConfigError) {
	structuralErrs, structuralWarns := Validate(p.raw)

	var errs []core.ConfigError
	for _, e := range structuralErrs {
		errs = append(errs, core.ConfigError{Field: "rotation." + e.Kind, Message: e.Message})
	}

	checkNameRefs(p.raw.Actions, p.names, spellIds, auraIds, &errs)
	for _, actions := range p.raw.Lists {
		checkNameRefs(actions, p.names, spellIds, auraIds, &errs)
	}
	for _, e := range p.raw.Variables {
		checkExprNameRefs(e, p.names, spellIds, auraIds, &errs)
	}

	var warnings []string
	for _, w := range structuralWarns {
		warnings = append(warnings, fmt.Sprintf("%s: %s", w.Kind, w.Message))
	}
	return warnings, errs
}

// NextAction walks the main action list, resolving Call/Run against
// named lists, applying SetVar/ModifyVar in place, and returning the
// first spell whose condition holds and which is presently castable
// (cooldown ready and affordable). Wait/WaitUntil/Pool, and a list that
// runs out of actions without finding a cast, both report ok=false:
// the caller re-evaluates shortly, per spec.md §4.9.
func (p *Program) NextAction(ctx core.RotationContext) (core.SpellId, bool) {
	if ctx.Vars == nil {
		ctx.Vars = map[string]float64{}
	}
	es := &evalState{ctx: ctx, names: p.names}
	spell, ok, _ := p.runActions(p.raw.Actions, es, 0)
	return spell, ok
}

// runActions executes actions in order, returning as soon as one
// yields a cast (ok=true) or an explicit wait (stop=true, ok=false).
// Falling off the end of the list returns stop=false so a Call can
// resume the caller's own list.
func (p *Program) runActions(actions []Action, es *evalState, depth int) (core.SpellId, bool, bool) {
	if depth > maxListDepth {
		return 0, false, true
	}
	for _, a := range actions {
		if cond := a.Cond(); cond != nil && !evalExpr(cond, es).Truthy() {
			continue
		}
		switch act := a.(type) {
		case ActionCast:
			if spell, ok := p.tryCast(act.Spell, es); ok {
				return spell, true, true
			}
			// Not presently castable (cooldown/resource); fall through to
			// the next action, matching priority-list semantics.
		case ActionCall:
			list, ok := p.raw.Lists[act.List]
			if !ok {
				continue
			}
			if spell, ok, stop := p.runActions(list, es, depth+1); stop {
				return spell, ok, true
			}
		case ActionRun:
			list, ok := p.raw.Lists[act.List]
			if !ok {
				continue
			}
			// run hands control to the named list permanently for this
			// decision: unlike call, a sub-list that finds nothing ends
			// the tick (WaitGcd) rather than falling through to the
			// caller's next action.
			spell, ok, _ := p.runActions(list, es, depth+1)
			return spell, ok, true
		case ActionSetVar:
			es.ctx.Vars[act.Name] = evalExpr(act.Value, es).AsFloat()
		case ActionModifyVar:
			p.applyModifyVar(act, es)
		case ActionWait, ActionWaitUntil, ActionPool:
			return 0, false, true
		case ActionUseTrinket, ActionUseItem:
			// Non-goal: spec.md's scope has no item/trinket equipment
			// model (SPEC_FULL.md Non-goals); treated as a no-op step
			// that falls through to the next action.
		}
	}
	return 0, false, false
}

func (p *Program) tryCast(spellName string, es *evalState) (core.SpellId, bool) {
	def, err := p.names.spell(spellName)
	if err != nil || es.ctx.Self == nil {
		return 0, false
	}
	if !es.ctx.Self.CooldownReady(def.Id, es.ctx.Now) {
		return 0, false
	}
	if !def.CanAfford(es.ctx.Self.Resources) {
		return 0, false
	}
	return def.Id, true
}

func (p *Program) applyModifyVar(act ActionModifyVar, es *evalState) {
	current := es.ctx.Vars[act.Name]
	value := evalExpr(act.Value, es).AsFloat()
	switch act.Op {
	case VarSet:
		es.ctx.Vars[act.Name] = value
	case VarAdd:
		es.ctx.Vars[act.Name] = current + value
	case VarSub:
		es.ctx.Vars[act.Name] = current - value
	case VarMul:
		es.ctx.Vars[act.Name] = current * value
	case VarDiv:
		if value != 0 {
			es.ctx.Vars[act.Name] = current / value
		}
	case VarMin:
		if value < current {
			es.ctx.Vars[act.Name] = value
		}
	case VarMax:
		if value > current {
			es.ctx.Vars[act.Name] = value
		}
	case VarReset:
		if decl, ok := p.raw.Variables[act.Name]; ok {
			es.ctx.Vars[act.Name] = evalExpr(decl, es).AsFloat()
		} else {
			es.ctx.Vars[act.Name] = 0
		}
	}
}
