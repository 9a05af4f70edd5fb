package rotation

import "fmt"

// ValidationError is a structural problem that makes a Rotation unsafe
// to compile: an undefined reference, a type mismatch, or a cycle.
type ValidationError struct {
	Kind    string
	Message string
}

func (e ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Kind, e.Message) }

// ValidationWarning flags something that compiles fine but is probably
// a mistake (an unused variable, a list nobody calls).
type ValidationWarning struct {
	Kind    string
	Message string
}

// Validate walks a parsed Rotation's structure: every UserVar reference
// resolves to a declared variable, every Call/Run resolves to a
// declared list, no action list is empty, ModifyVar's arithmetic ops
// only target numeric values, and no variable's definition depends on
// itself transitively. It does not check spell/aura names — that is
// done by Program.Validate through checkNameRefs (resolve.go).
func Validate(r *Rotation) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warns []ValidationWarning

	usedVars := make(map[string]bool)
	usedLists := make(map[string]bool)

	if len(r.Actions) == 0 {
		errs = append(errs, ValidationError{"empty_action_list", "list 'actions' has no actions"})
	}
	for name, actions := range r.Lists {
		if len(actions) == 0 {
			errs = append(errs, ValidationError{"empty_action_list", fmt.Sprintf("list %q has no actions", name)})
		}
	}

	for _, a := range r.Actions {
		validateAction(a, r, usedVars, usedLists, &errs)
	}
	for _, actions := range r.Lists {
		for _, a := range actions {
			validateAction(a, r, usedVars, usedLists, &errs)
		}
	}

	for name, e := range r.Variables {
		validateExpr(e, r, usedVars, &errs, fmt.Sprintf("variable %q", name))
	}

	for name, e := range r.Variables {
		visited := map[string]bool{}
		path := []string{name}
		if hasCircularReference(name, e, r.Variables, visited, &path) {
			errs = append(errs, ValidationError{"circular_reference", fmt.Sprintf("%v", path)})
		}
	}

	for name := range r.Variables {
		if !usedVars[name] {
			warns = append(warns, ValidationWarning{"unused_variable", name})
		}
	}
	for name := range r.Lists {
		if !usedLists[name] {
			warns = append(warns, ValidationWarning{"unused_list", name})
		}
	}

	return errs, warns
}

func validateAction(a Action, r *Rotation, usedVars map[string]bool, usedLists map[string]bool, errs *[]ValidationError) {
	if cond := a.Cond(); cond != nil {
		validateExpr(cond, r, usedVars, errs, "condition")
	}

	switch act := a.(type) {
	case ActionCall:
		validateListRef(act.List, r, usedLists, errs)
	case ActionRun:
		validateListRef(act.List, r, usedLists, errs)
	case ActionSetVar:
		validateExpr(act.Value, r, usedVars, errs, "set_var value")
	case ActionModifyVar:
		validateExpr(act.Value, r, usedVars, errs, "modify_var value")
		if act.Op.requiresNumeric() && act.Value.valueKind() == KindBool {
			*errs = append(*errs, ValidationError{
				"type_mismatch",
				fmt.Sprintf("modify_var %q op %s requires int or float, got bool", act.Name, act.Op),
			})
		}
	case ActionWait:
		validateExpr(act.Seconds, r, usedVars, errs, "wait seconds")
	}
}

func validateListRef(name string, r *Rotation, usedLists map[string]bool, errs *[]ValidationError) {
	if _, ok := r.Lists[name]; !ok {
		*errs = append(*errs, ValidationError{"undefined_list", name})
		return
	}
	usedLists[name] = true
}

func validateExpr(e Expr, r *Rotation, usedVars map[string]bool, errs *[]ValidationError, location string) {
	switch ex := e.(type) {
	case UserVar:
		if _, ok := r.Variables[ex.Name]; !ok {
			*errs = append(*errs, ValidationError{"undefined_variable", ex.Name})
			return
		}
		usedVars[ex.Name] = true
	case AndExpr:
		for _, o := range ex.Operands {
			validateExpr(o, r, usedVars, errs, location)
		}
	case OrExpr:
		for _, o := range ex.Operands {
			validateExpr(o, r, usedVars, errs, location)
		}
	case NotExpr:
		validateExpr(ex.Operand, r, usedVars, errs, location)
	case UnaryNumExpr:
		validateExpr(ex.Operand, r, usedVars, errs, location)
	case CompareExpr:
		validateExpr(ex.Left, r, usedVars, errs, location)
		validateExpr(ex.Right, r, usedVars, errs, location)
	case ArithExpr:
		validateExpr(ex.Left, r, usedVars, errs, location)
		validateExpr(ex.Right, r, usedVars, errs, location)
	default:
		// literals and domain expressions never reference user state
	}
}

func hasCircularReference(target string, e Expr, vars map[string]Expr, visited map[string]bool, path *[]string) bool {
	switch ex := e.(type) {
	case UserVar:
		if ex.Name == target && len(*path) > 1 {
			return true
		}
		if visited[ex.Name] {
			return false
		}
		visited[ex.Name] = true
		*path = append(*path, ex.Name)
		if varExpr, ok := vars[ex.Name]; ok {
			if hasCircularReference(target, varExpr, vars, visited, path) {
				return true
			}
		}
		*path = (*path)[:len(*path)-1]
		return false
	case AndExpr:
		for _, o := range ex.Operands {
			if hasCircularReference(target, o, vars, visited, path) {
				return true
			}
		}
		return false
	case OrExpr:
		for _, o := range ex.Operands {
			if hasCircularReference(target, o, vars, visited, path) {
				return true
			}
		}
		return false
	case NotExpr:
		return hasCircularReference(target, ex.Operand, vars, visited, path)
	case UnaryNumExpr:
		return hasCircularReference(target, ex.Operand, vars, visited, path)
	case CompareExpr:
		return hasCircularReference(target, ex.Left, vars, visited, path) ||
			hasCircularReference(target, ex.Right, vars, visited, path)
	case ArithExpr:
		return hasCircularReference(target, ex.Left, vars, visited, path) ||
			hasCircularReference(target, ex.Right, vars, visited, path)
	default:
		return false
	}
}
