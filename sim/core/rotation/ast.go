// Package rotation implements the JSON-defined action-priority-list DSL
// described in spec.md §4.9: a tree of Actions, gated by boolean Exprs
// over live sim state, compiled once per SimConfig and walked fresh on
// every rotation tick rather than re-parsed.
package rotation

import (
	"encoding/json"
	"fmt"
)

// VarOp is the operator of a ModifyVar action.
type VarOp int

const (
	VarSet VarOp = iota
	VarAdd
	VarSub
	VarMul
	VarDiv
	VarMin
	VarMax
	VarReset
)

func (op VarOp) String() string {
	switch op {
	case VarSet:
		return "set"
	case VarAdd:
		return "add"
	case VarSub:
		return "sub"
	case VarMul:
		return "mul"
	case VarDiv:
		return "div"
	case VarMin:
		return "min"
	case VarMax:
		return "max"
	case VarReset:
		return "reset"
	default:
		return "unknown"
	}
}

func (op VarOp) requiresNumeric() bool {
	switch op {
	case VarAdd, VarSub, VarMul, VarDiv, VarMin, VarMax:
		return true
	default:
		return false
	}
}

var varOpNames = map[string]VarOp{
	"set": VarSet, "add": VarAdd, "sub": VarSub, "mul": VarMul,
	"div": VarDiv, "min": VarMin, "max": VarMax, "reset": VarReset,
}

func (op *VarOp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, ok := varOpNames[s]
	if !ok {
		return fmt.Errorf("rotation: unknown var op %q", s)
	}
	*op = v
	return nil
}

// Action is one step of a rotation action list. Each variant carries an
// optional Condition; an action with a false condition is skipped and
// evaluation falls through to the next action in the list.
type Action interface {
	action()
	Cond() Expr
}

type actionBase struct {
	Condition Expr `json:"-"`
}

func (actionBase) action()          {}
func (a actionBase) Cond() Expr     { return a.Condition }

// ActionCast attempts to cast Spell, ending the rotation tick if it
// fires (spec.md §4.9 "first eligible cast wins").
type ActionCast struct {
	actionBase
	Spell string
}

// ActionCall invokes a named list. A cast or wait inside the list ends
// the decision; a list that runs out of actions without one returns to
// the caller, which goes on with its next action.
type ActionCall struct {
	actionBase
	List string
}

// ActionRun hands the decision to a named list for good: the decision
// ends when that list ends, even if it found nothing to cast, and the
// enclosing list's later actions are not reached.
type ActionRun struct {
	actionBase
	List string
}

// ActionSetVar assigns Value to a user variable, creating it if absent.
type ActionSetVar struct {
	actionBase
	Name  string
	Value Expr
}

// ActionModifyVar applies Op to a user variable in place.
type ActionModifyVar struct {
	actionBase
	Name  string
	Op    VarOp
	Value Expr
}

// ActionWait advances the rotation clock by Seconds without casting.
type ActionWait struct {
	actionBase
	Seconds Expr
}

// ActionWaitUntil advances the rotation clock until Condition holds.
type ActionWaitUntil struct {
	actionBase
}

// ActionPool withholds casting, letting a resource accumulate, when
// Condition holds.
type ActionPool struct {
	actionBase
}

// ActionUseTrinket activates the trinket in the given equipment slot.
type ActionUseTrinket struct {
	actionBase
	Slot int
}

// ActionUseItem activates a named on-use item.
type ActionUseItem struct {
	actionBase
	Item string
}

// Rotation is the parsed (but not yet resolved) form of one rotation
// program, mirroring the original engine's Rotation{name, variables,
// lists, actions} shape.
type Rotation struct {
	Name      string
	Variables map[string]Expr
	Lists     map[string][]Action
	Actions   []Action
}
