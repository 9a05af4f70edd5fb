package rotation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Parse decodes a rotation program from its JSON form (spec.md §4.9).
// The wire format is a simple tree: string-keyed path expressions like
// "resource.focus.deficit" or "cd.kill_command.remaining" rather than
// one JSON variant per domain field, matching the dotted VarPath
// grammar the original engine exposes to its rotation editor.
func Parse(data []byte) (*Rotation, error) {
	var wire rotationWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("rotation: %w", err)
	}

	r := &Rotation{
		Name:      wire.Name,
		Variables: make(map[string]Expr, len(wire.Variables)),
		Lists:     make(map[string][]Action, len(wire.Lists)),
	}

	for name, rawExpr := range wire.Variables {
		e, err := parseExpr(rawExpr)
		if err != nil {
			return nil, fmt.Errorf("rotation: variable %q: %w", name, err)
		}
		r.Variables[name] = e
	}

	for name, rawActions := range wire.Lists {
		actions, err := parseActions(rawActions)
		if err != nil {
			return nil, fmt.Errorf("rotation: list %q: %w", name, err)
		}
		r.Lists[name] = actions
	}

	actions, err := parseActions(wire.Actions)
	if err != nil {
		return nil, fmt.Errorf("rotation: actions: %w", err)
	}
	r.Actions = actions

	return r, nil
}

type rotationWire struct {
	Name      string                     `json:"name"`
	Variables map[string]json.RawMessage `json:"variables"`
	Lists     map[string][]actionWire    `json:"lists"`
	Actions   []actionWire               `json:"actions"`
}

type actionWire struct {
	Type      string          `json:"type"`
	Condition json.RawMessage `json:"condition,omitempty"`

	Spell string `json:"spell,omitempty"`
	List  string `json:"list,omitempty"`
	Item  string `json:"item,omitempty"`
	Slot  int    `json:"slot,omitempty"`

	Name  string          `json:"name,omitempty"`
	Op    VarOp           `json:"op,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`

	Seconds json.RawMessage `json:"seconds,omitempty"`
}

func parseActions(raws []actionWire) ([]Action, error) {
	actions := make([]Action, 0, len(raws))
	for i, raw := range raws {
		a, err := parseAction(raw)
		if err != nil {
			return nil, fmt.Errorf("action[%d]: %w", i, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func parseAction(raw actionWire) (Action, error) {
	var cond Expr
	if len(raw.Condition) > 0 {
		c, err := parseExpr(raw.Condition)
		if err != nil {
			return nil, fmt.Errorf("condition: %w", err)
		}
		cond = c
	}
	base := actionBase{Condition: cond}

	switch raw.Type {
	case "cast":
		if raw.Spell == "" {
			return nil, fmt.Errorf("cast action missing spell")
		}
		return ActionCast{actionBase: base, Spell: raw.Spell}, nil
	case "call":
		if raw.List == "" {
			return nil, fmt.Errorf("call action missing list")
		}
		return ActionCall{actionBase: base, List: raw.List}, nil
	case "run":
		if raw.List == "" {
			return nil, fmt.Errorf("run action missing list")
		}
		return ActionRun{actionBase: base, List: raw.List}, nil
	case "set_var":
		if raw.Name == "" {
			return nil, fmt.Errorf("set_var action missing name")
		}
		v, err := parseExpr(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("set_var value: %w", err)
		}
		return ActionSetVar{actionBase: base, Name: raw.Name, Value: v}, nil
	case "modify_var":
		if raw.Name == "" {
			return nil, fmt.Errorf("modify_var action missing name")
		}
		v, err := parseExpr(raw.Value)
		if err != nil {
			return nil, fmt.Errorf("modify_var value: %w", err)
		}
		return ActionModifyVar{actionBase: base, Name: raw.Name, Op: raw.Op, Value: v}, nil
	case "wait":
		v, err := parseExpr(raw.Seconds)
		if err != nil {
			return nil, fmt.Errorf("wait seconds: %w", err)
		}
		return ActionWait{actionBase: base, Seconds: v}, nil
	case "wait_until":
		if cond == nil {
			return nil, fmt.Errorf("wait_until action missing condition")
		}
		return ActionWaitUntil{actionBase: base}, nil
	case "pool":
		return ActionPool{actionBase: base}, nil
	case "use_trinket":
		return ActionUseTrinket{actionBase: base, Slot: raw.Slot}, nil
	case "use_item":
		if raw.Item == "" {
			return nil, fmt.Errorf("use_item action missing item")
		}
		return ActionUseItem{actionBase: base, Item: raw.Item}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", raw.Type)
	}
}

type exprWire struct {
	Type string `json:"type"`

	Value json.RawMessage `json:"value,omitempty"`

	Name string `json:"name,omitempty"`

	Operands []json.RawMessage `json:"operands,omitempty"`
	Operand  json.RawMessage   `json:"operand,omitempty"`
	Left     json.RawMessage   `json:"left,omitempty"`
	Right    json.RawMessage   `json:"right,omitempty"`

	// Path carries every domain expression's dotted path, e.g.
	// "resource.focus.deficit" or "cd.kill_command.ready", parsed by
	// parseDomainPath. Literal/combinator/user-var nodes ignore it.
	Path string `json:"path,omitempty"`

	Slot int `json:"slot,omitempty"`
}

func parseExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("missing expression")
	}
	var w exprWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}

	switch w.Type {
	case "bool":
		var b bool
		if err := json.Unmarshal(w.Value, &b); err != nil {
			return nil, fmt.Errorf("bool literal: %w", err)
		}
		return BoolLit{Value: b}, nil
	case "int":
		var n int64
		if err := json.Unmarshal(w.Value, &n); err != nil {
			return nil, fmt.Errorf("int literal: %w", err)
		}
		return IntLit{Value: n}, nil
	case "float":
		var n float64
		if err := json.Unmarshal(w.Value, &n); err != nil {
			return nil, fmt.Errorf("float literal: %w", err)
		}
		return FloatLit{Value: n}, nil
	case "var":
		if w.Name == "" {
			return nil, fmt.Errorf("var expression missing name")
		}
		return UserVar{Name: w.Name}, nil
	case "and", "or":
		operands := make([]Expr, 0, len(w.Operands))
		for _, o := range w.Operands {
			e, err := parseExpr(o)
			if err != nil {
				return nil, err
			}
			operands = append(operands, e)
		}
		if w.Type == "and" {
			return AndExpr{Operands: operands}, nil
		}
		return OrExpr{Operands: operands}, nil
	case "not":
		e, err := parseExpr(w.Operand)
		if err != nil {
			return nil, err
		}
		return NotExpr{Operand: e}, nil
	case "floor", "ceil", "abs":
		e, err := parseExpr(w.Operand)
		if err != nil {
			return nil, err
		}
		op := map[string]UnaryNumOp{"floor": UnaryFloor, "ceil": UnaryCeil, "abs": UnaryAbs}[w.Type]
		return UnaryNumExpr{Op: op, Operand: e}, nil
	case "gt", "gte", "lt", "lte", "eq", "ne":
		left, right, err := parseBinary(w)
		if err != nil {
			return nil, err
		}
		cmp := map[string]CompareOp{
			"gt": CmpGt, "gte": CmpGte, "lt": CmpLt, "lte": CmpLte, "eq": CmpEq, "ne": CmpNe,
		}[w.Type]
		return CompareExpr{Op: cmp, Left: left, Right: right}, nil
	case "add", "sub", "mul", "div", "mod", "min", "max":
		left, right, err := parseBinary(w)
		if err != nil {
			return nil, err
		}
		op := map[string]ArithOp{
			"add": ArithAdd, "sub": ArithSub, "mul": ArithMul, "div": ArithDiv,
			"mod": ArithMod, "min": ArithMin, "max": ArithMax,
		}[w.Type]
		return ArithExpr{Op: op, Left: left, Right: right}, nil
	case "equipped":
		return EquippedExpr{Item: w.Name}, nil
	case "trinket_ready":
		return TrinketReadyExpr{Slot: w.Slot}, nil
	case "trinket_remaining":
		return TrinketRemainingExpr{Slot: w.Slot}, nil
	case "path":
		return parseDomainPath(w.Path)
	default:
		return nil, fmt.Errorf("unknown expression type %q", w.Type)
	}
}

func parseBinary(w exprWire) (Expr, Expr, error) {
	left, err := parseExpr(w.Left)
	if err != nil {
		return nil, nil, fmt.Errorf("left operand: %w", err)
	}
	right, err := parseExpr(w.Right)
	if err != nil {
		return nil, nil, fmt.Errorf("right operand: %w", err)
	}
	return left, right, nil
}

// parseDomainPath resolves a dotted path such as "resource.focus.deficit"
// or "cd.kill_command.recharge_time" into a typed domain Expr, mirroring
// the original engine's VarPath grammar (see its rotation validate
// module's get_var_path_schema for the full catalogue this switches
// over).
func parseDomainPath(path string) (Expr, error) {
	parts := strings.Split(path, ".")
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty path")
	}

	switch parts[0] {
	case "resource":
		return parseResourcePath(parts)
	case "player":
		return parsePlayerPath(parts)
	case "cd":
		return parseCooldownPath(parts)
	case "buff":
		return parseAuraPath(parts, "buff")
	case "debuff":
		return parseAuraPath(parts, "debuff")
	case "dot":
		return parseAuraPath(parts, "dot")
	case "target":
		return parseTargetPath(parts)
	case "enemy":
		return EnemyExpr{}, nil
	case "combat":
		return parseCombatPath(parts)
	case "gcd":
		return parseGcdPath(parts)
	case "pet":
		return parsePetPath(parts)
	case "talent":
		if len(parts) != 2 {
			return nil, fmt.Errorf("talent path %q: expected talent.<name>", path)
		}
		return TalentExpr{Name: parts[1]}, nil
	case "spell":
		return parseSpellPath(parts)
	case "equipped":
		if len(parts) != 2 {
			return nil, fmt.Errorf("equipped path %q: expected equipped.<item>", path)
		}
		return EquippedExpr{Item: parts[1]}, nil
	case "trinket":
		return parseTrinketPath(parts)
	default:
		return nil, fmt.Errorf("unknown path root %q", parts[0])
	}
}

func parseResourcePath(parts []string) (Expr, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("resource path needs a resource name")
	}
	name := parts[1]
	if len(parts) == 2 {
		return ResourceExpr{Resource: name, Field: ResourceCurrent}, nil
	}
	field, ok := map[string]ResourceField{
		"max": ResourceMax, "deficit": ResourceDeficit, "percent": ResourcePercent, "regen": ResourceRegen,
	}[parts[2]]
	if !ok {
		return nil, fmt.Errorf("unknown resource field %q", parts[2])
	}
	return ResourceExpr{Resource: name, Field: field}, nil
}

func parsePlayerPath(parts []string) (Expr, error) {
	if len(parts) < 2 || parts[1] != "health" {
		return nil, fmt.Errorf("unknown player path")
	}
	if len(parts) == 2 {
		return PlayerExpr{Field: PlayerHealth}, nil
	}
	switch parts[2] {
	case "max":
		return PlayerExpr{Field: PlayerHealthMax}, nil
	case "percent":
		return PlayerExpr{Field: PlayerHealthPercent}, nil
	default:
		return nil, fmt.Errorf("unknown player.health field %q", parts[2])
	}
}

func parseCooldownPath(parts []string) (Expr, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("cooldown path needs cd.<spell>.<field>")
	}
	field, ok := map[string]CooldownField{
		"ready": CdReady, "remaining": CdRemaining, "duration": CdDuration,
		"charges": CdCharges, "charges_max": CdChargesMax,
		"recharge_time": CdRechargeTime, "full_recharge": CdFullRecharge,
	}[parts[2]]
	if !ok {
		return nil, fmt.Errorf("unknown cooldown field %q", parts[2])
	}
	return CooldownExpr{Spell: parts[1], Field: field}, nil
}

func parseAuraPath(parts []string, root string) (Expr, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("%s path needs a name", root)
	}
	aura := parts[1]
	field := AuraActive
	if len(parts) >= 3 {
		f, ok := map[string]AuraField{
			"active": AuraActive, "inactive": AuraInactive, "remaining": AuraRemaining,
			"stacks": AuraStacks, "stacks_max": AuraStacksMax, "duration": AuraDuration,
			"refreshable": AuraRefreshable, "ticking": AuraActive, "ticks_remaining": AuraTicksRemaining,
			"tick_time": AuraTickTime, "next_tick_in": AuraNextTickIn,
		}[parts[2]]
		if !ok {
			return nil, fmt.Errorf("unknown %s field %q", root, parts[2])
		}
		field = f
	}
	switch root {
	case "buff":
		return BuffExpr{Aura: aura, Field: field}, nil
	case "debuff":
		return DebuffExpr{Aura: aura, Field: field}, nil
	default:
		return DotExpr{Aura: aura, Field: field}, nil
	}
}

func parseTargetPath(parts []string) (Expr, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("target path needs a field")
	}
	field, ok := map[string]TargetField{
		"health_percent": TargetHealthPercent, "time_to_die": TargetTimeToDie, "distance": TargetDistance,
	}[parts[1]]
	if !ok {
		return nil, fmt.Errorf("unknown target field %q", parts[1])
	}
	return TargetExpr{Field: field}, nil
}

func parseCombatPath(parts []string) (Expr, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("combat path needs a field")
	}
	switch parts[1] {
	case "time":
		return CombatExpr{Field: CombatTime}, nil
	case "remaining":
		return CombatExpr{Field: CombatRemaining}, nil
	default:
		return nil, fmt.Errorf("unknown combat field %q", parts[1])
	}
}

func parseGcdPath(parts []string) (Expr, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("gcd path needs a field")
	}
	switch parts[1] {
	case "remaining":
		return GcdExpr{Field: GcdRemaining}, nil
	case "duration":
		return GcdExpr{Field: GcdDuration}, nil
	default:
		return nil, fmt.Errorf("unknown gcd field %q", parts[1])
	}
}

func parsePetPath(parts []string) (Expr, error) {
	if len(parts) < 2 {
		return nil, fmt.Errorf("pet path needs a field")
	}
	switch parts[1] {
	case "active":
		return PetExpr{Field: PetActive}, nil
	case "remaining":
		return PetExpr{Field: PetRemaining}, nil
	case "buff":
		if len(parts) < 3 {
			return nil, fmt.Errorf("pet.buff path needs an aura name")
		}
		return PetExpr{Field: PetBuffActive, Aura: parts[2]}, nil
	default:
		return nil, fmt.Errorf("unknown pet field %q", parts[1])
	}
}

func parseSpellPath(parts []string) (Expr, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("spell path needs spell.<name>.<field>")
	}
	switch parts[2] {
	case "cost":
		return SpellExpr{Spell: parts[1], Field: SpellCost}, nil
	case "cast_time":
		return SpellExpr{Spell: parts[1], Field: SpellCastTime}, nil
	default:
		return nil, fmt.Errorf("unknown spell field %q", parts[2])
	}
}

// parseTrinketPath parses "trinket.<slot>.<field>", e.g.
// "trinket.1.ready" or "trinket.1.remaining".
func parseTrinketPath(parts []string) (Expr, error) {
	if len(parts) < 3 {
		return nil, fmt.Errorf("trinket path needs trinket.<slot>.<field>")
	}
	slot, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid trinket slot %q: %w", parts[1], err)
	}
	switch parts[2] {
	case "ready":
		return TrinketReadyExpr{Slot: slot}, nil
	case "remaining":
		return TrinketRemainingExpr{Slot: slot}, nil
	default:
		return nil, fmt.Errorf("unknown trinket field %q", parts[2])
	}
}
