package rotation

// foldConstants performs the static half of the two-pass compile: it
// collapses and/or/not over boolean literals, and arithmetic over
// numeric literals, into a single literal, so the per-tick dynamic pass
// (eval.go) does not re-derive those values. Comparisons and
// floor/ceil/abs are not collapsed, even over literals; only their
// operands are folded. Subtrees that touch any domain or user-variable
// expression are left untouched, since those depend on live sim state.
func foldConstants(e Expr) Expr {
	switch ex := e.(type) {
	case AndExpr:
		folded := make([]Expr, len(ex.Operands))
		allLit := true
		for i, o := range ex.Operands {
			folded[i] = foldConstants(o)
			if lit, ok := folded[i].(BoolLit); ok {
				if !lit.Value {
					return BoolLit{Value: false}
				}
			} else {
				allLit = false
			}
		}
		if allLit {
			return BoolLit{Value: true}
		}
		return AndExpr{Operands: folded}
	case OrExpr:
		folded := make([]Expr, len(ex.Operands))
		allLit := true
		for i, o := range ex.Operands {
			folded[i] = foldConstants(o)
			if lit, ok := folded[i].(BoolLit); ok {
				if lit.Value {
					return BoolLit{Value: true}
				}
			} else {
				allLit = false
			}
		}
		if allLit {
			return BoolLit{Value: false}
		}
		return OrExpr{Operands: folded}
	case NotExpr:
		operand := foldConstants(ex.Operand)
		if lit, ok := operand.(BoolLit); ok {
			return BoolLit{Value: !lit.Value}
		}
		return NotExpr{Operand: operand}
	case UnaryNumExpr:
		operand := foldConstants(ex.Operand)
		ex.Operand = operand
		return ex
	case CompareExpr:
		ex.Left = foldConstants(ex.Left)
		ex.Right = foldConstants(ex.Right)
		return ex
	case ArithExpr:
		left := foldConstants(ex.Left)
		right := foldConstants(ex.Right)
		if l, lok := asNumberLit(left); lok {
			if r, rok := asNumberLit(right); rok {
				return foldArith(ex.Op, l, r)
			}
		}
		ex.Left, ex.Right = left, right
		return ex
	default:
		return e
	}
}

func asNumberLit(e Expr) (float64, bool) {
	switch v := e.(type) {
	case IntLit:
		return float64(v.Value), true
	case FloatLit:
		return v.Value, true
	default:
		return 0, false
	}
}

func foldArith(op ArithOp, l, r float64) Expr {
	switch op {
	case ArithAdd:
		return FloatLit{Value: l + r}
	case ArithSub:
		return FloatLit{Value: l - r}
	case ArithMul:
		return FloatLit{Value: l * r}
	case ArithDiv:
		if r == 0 {
			return FloatLit{Value: 0}
		}
		return FloatLit{Value: l / r}
	case ArithMod:
		if r == 0 {
			return FloatLit{Value: 0}
		}
		return FloatLit{Value: mod(l, r)}
	case ArithMin:
		if l < r {
			return FloatLit{Value: l}
		}
		return FloatLit{Value: r}
	case ArithMax:
		if l > r {
			return FloatLit{Value: l}
		}
		return FloatLit{Value: r}
	default:
		return FloatLit{Value: 0}
	}
}

func mod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

// foldRotation applies foldConstants to every condition and variable
// expression in a parsed Rotation, returning a new Rotation with the
// same structure but statically-simplified expression trees.
func foldRotation(r *Rotation) *Rotation {
	out := &Rotation{
		Name:      r.Name,
		Variables: make(map[string]Expr, len(r.Variables)),
		Lists:     make(map[string][]Action, len(r.Lists)),
	}
	for name, e := range r.Variables {
		out.Variables[name] = foldConstants(e)
	}
	for name, actions := range r.Lists {
		out.Lists[name] = foldActions(actions)
	}
	out.Actions = foldActions(r.Actions)
	return out
}

func foldActions(actions []Action) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		out[i] = foldAction(a)
	}
	return out
}

func foldAction(a Action) Action {
	switch act := a.(type) {
	case ActionCast:
		act.Condition = foldCond(act.Condition)
		return act
	case ActionCall:
		act.Condition = foldCond(act.Condition)
		return act
	case ActionRun:
		act.Condition = foldCond(act.Condition)
		return act
	case ActionSetVar:
		act.Condition = foldCond(act.Condition)
		act.Value = foldConstants(act.Value)
		return act
	case ActionModifyVar:
		act.Condition = foldCond(act.Condition)
		act.Value = foldConstants(act.Value)
		return act
	case ActionWait:
		act.Condition = foldCond(act.Condition)
		act.Seconds = foldConstants(act.Seconds)
		return act
	case ActionWaitUntil:
		act.Condition = foldCond(act.Condition)
		return act
	case ActionPool:
		act.Condition = foldCond(act.Condition)
		return act
	case ActionUseTrinket:
		act.Condition = foldCond(act.Condition)
		return act
	case ActionUseItem:
		act.Condition = foldCond(act.Condition)
		return act
	default:
		return a
	}
}

func foldCond(e Expr) Expr {
	if e == nil {
		return nil
	}
	return foldConstants(e)
}
