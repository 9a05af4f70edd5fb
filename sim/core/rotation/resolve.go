package rotation

import (
	"fmt"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// Names is the name table a Program resolves the DSL's dotted string
// references against: spell/aura names to their definitions, and
// resource names to the ResourceId the engine tracks them under.
// Built once per SimConfig (in this module, by examplespec's buildNames,
// alongside the spells/auras themselves) and shared read-only across a
// whole batch, same as the Rotation AST it resolves for.
type Names struct {
	Spells    map[string]*core.SpellDef
	Auras     map[string]*core.AuraDef
	Resources map[string]core.ResourceId
}

func (n Names) spell(name string) (*core.SpellDef, error) {
	d, ok := n.Spells[name]
	if !ok {
		return nil, fmt.Errorf("unknown spell %q", name)
	}
	return d, nil
}

func (n Names) aura(name string) (*core.AuraDef, error) {
	d, ok := n.Auras[name]
	if !ok {
		return nil, fmt.Errorf("unknown aura %q", name)
	}
	return d, nil
}

func (n Names) resource(name string) (core.ResourceId, error) {
	id, ok := n.Resources[name]
	if !ok {
		return 0, fmt.Errorf("unknown resource %q", name)
	}
	return id, nil
}

// checkNameRefs walks actions/expressions collecting every name
// reference that fails to resolve against names, or resolves to a
// spell/aura id absent from the live SimConfig id sets (spellIds,
// auraIds) Program.Validate is handed. Resources are checked against
// names only: SimConfig carries no separate "known resource" id set to
// cross-check against. Talent names are not checked at all.
func checkNameRefs(actions []Action, names Names, spellIds map[core.SpellId]bool, auraIds map[core.AuraId]bool, errs *[]core.ConfigError) {
	for _, a := range actions {
		if cond := a.Cond(); cond != nil {
			checkExprNameRefs(cond, names, spellIds, auraIds, errs)
		}
		switch act := a.(type) {
		case ActionCast:
			checkSpellName(act.Spell, names, spellIds, errs)
		case ActionSetVar:
			checkExprNameRefs(act.Value, names, spellIds, auraIds, errs)
		case ActionModifyVar:
			checkExprNameRefs(act.Value, names, spellIds, auraIds, errs)
		case ActionWait:
			checkExprNameRefs(act.Seconds, names, spellIds, auraIds, errs)
		case ActionUseItem, ActionUseTrinket, ActionCall, ActionRun:
			// item/trinket/list names are not SimConfig-level references
		}
	}
}

func checkExprNameRefs(e Expr, names Names, spellIds map[core.SpellId]bool, auraIds map[core.AuraId]bool, errs *[]core.ConfigError) {
	switch ex := e.(type) {
	case ResourceExpr:
		if _, err := names.resource(ex.Resource); err != nil {
			*errs = append(*errs, core.ConfigError{Field: "rotation.resource", Message: err.Error()})
		}
	case CooldownExpr:
		checkSpellName(ex.Spell, names, spellIds, errs)
	case SpellExpr:
		checkSpellName(ex.Spell, names, spellIds, errs)
	case BuffExpr:
		checkAuraName(ex.Aura, names, auraIds, errs)
	case DebuffExpr:
		checkAuraName(ex.Aura, names, auraIds, errs)
	case DotExpr:
		checkAuraName(ex.Aura, names, auraIds, errs)
	case PetExpr:
		if ex.Field == PetBuffActive {
			checkAuraName(ex.Aura, names, auraIds, errs)
		}
	case AndExpr:
		for _, o := range ex.Operands {
			checkExprNameRefs(o, names, spellIds, auraIds, errs)
		}
	case OrExpr:
		for _, o := range ex.Operands {
			checkExprNameRefs(o, names, spellIds, auraIds, errs)
		}
	case NotExpr:
		checkExprNameRefs(ex.Operand, names, spellIds, auraIds, errs)
	case UnaryNumExpr:
		checkExprNameRefs(ex.Operand, names, spellIds, auraIds, errs)
	case CompareExpr:
		checkExprNameRefs(ex.Left, names, spellIds, auraIds, errs)
		checkExprNameRefs(ex.Right, names, spellIds, auraIds, errs)
	case ArithExpr:
		checkExprNameRefs(ex.Left, names, spellIds, auraIds, errs)
		checkExprNameRefs(ex.Right, names, spellIds, auraIds, errs)
	}
}

func checkSpellName(name string, names Names, spellIds map[core.SpellId]bool, errs *[]core.ConfigError) {
	def, err := names.spell(name)
	if err != nil {
		*errs = append(*errs, core.ConfigError{Field: "rotation.spell", Message: err.Error()})
		return
	}
	if !spellIds[def.Id] {
		*errs = append(*errs, core.ConfigError{Field: "rotation.spell", Message: fmt.Sprintf("spell %q resolves to an id absent from this config", name)})
	}
}

func checkAuraName(name string, names Names, auraIds map[core.AuraId]bool, errs *[]core.ConfigError) {
	def, err := names.aura(name)
	if err != nil {
		*errs = append(*errs, core.ConfigError{Field: "rotation.aura", Message: err.Error()})
		return
	}
	if !auraIds[def.Id] {
		*errs = append(*errs, core.ConfigError{Field: "rotation.aura", Message: fmt.Sprintf("aura %q resolves to an id absent from this config", name)})
	}
}
