package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

func testNames() Names {
	strike := &core.SpellDef{Id: 1, Name: "Strike", ResourceDeltas: []core.ResourceDelta{{Resource: 1, Amount: -20}}}
	builder := &core.SpellDef{Id: 2, Name: "Builder"}
	rend := &core.AuraDef{Id: 1, Name: "Rend", Duration: 12 * time.Second}
	return Names{
		Spells:    map[string]*core.SpellDef{"strike": strike, "builder": builder},
		Auras:     map[string]*core.AuraDef{"rend": rend},
		Resources: map[string]core.ResourceId{"energy": 1},
	}
}

func newTestUnit(id core.UnitId) *core.Unit {
	return core.NewUnit(id, "test", [core.NumPrimaryStats]float64{}, [core.NumSecondaryRatings]float64{},
		core.SpecCoefficients{}, core.ResourceConfig{Id: 1, Max: 100, Starting: 100}, nil)
}

func TestProgramNextActionPicksFirstEligibleCast(t *testing.T) {
	names := testNames()
	player := newTestUnit(0)
	player.RegisterCooldown(1, core.CooldownConfig{})
	player.RegisterCooldown(2, core.CooldownConfig{})

	rotationJSON := []byte(`{
		"name": "test",
		"actions": [
			{"type": "cast", "spell": "strike", "condition": {"type": "gt", "left": {"type": "path", "path": "resource.energy"}, "right": {"type": "int", "value": 1000}}},
			{"type": "cast", "spell": "builder"}
		]
	}`)

	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	spell, ok := prog.NextAction(core.RotationContext{Self: player, Vars: map[string]float64{}})
	require.True(t, ok)
	assert.Equal(t, core.SpellId(2), spell, "strike's condition is unmet, so the list falls through to builder")
}

func TestProgramNextActionFallsThroughUnaffordableCast(t *testing.T) {
	names := testNames()
	player := newTestUnit(0)
	player.Resources.Get(1).Current = 5
	player.RegisterCooldown(1, core.CooldownConfig{})
	player.RegisterCooldown(2, core.CooldownConfig{})

	rotationJSON := []byte(`{
		"name": "test",
		"actions": [
			{"type": "cast", "spell": "strike"},
			{"type": "cast", "spell": "builder"}
		]
	}`)
	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	spell, ok := prog.NextAction(core.RotationContext{Self: player, Vars: map[string]float64{}})
	require.True(t, ok)
	assert.Equal(t, core.SpellId(2), spell, "strike costs 20 energy but only 5 are available")
}

func TestProgramNoEligibleActionReturnsFalse(t *testing.T) {
	names := testNames()
	player := newTestUnit(0)
	player.RegisterCooldown(1, core.CooldownConfig{})

	rotationJSON := []byte(`{
		"name": "test",
		"actions": [
			{"type": "wait", "seconds": {"type": "float", "value": 1}}
		]
	}`)
	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	_, ok := prog.NextAction(core.RotationContext{Self: player, Vars: map[string]float64{}})
	assert.False(t, ok)
}

func TestProgramModifyVarWithoutPriorDeclaration(t *testing.T) {
	names := testNames()
	player := newTestUnit(0)
	player.RegisterCooldown(2, core.CooldownConfig{})

	rotationJSON := []byte(`{
		"name": "test",
		"actions": [
			{"type": "modify_var", "name": "ticks", "op": "add", "value": {"type": "float", "value": 1}},
			{"type": "cast", "spell": "builder"}
		]
	}`)
	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	vars := map[string]float64{}
	spell, ok := prog.NextAction(core.RotationContext{Self: player, Vars: vars})
	require.True(t, ok)
	assert.Equal(t, core.SpellId(2), spell)
	assert.Equal(t, 1.0, vars["ticks"], "modify_var must create an undeclared variable on first write")
}

func TestProgramCallListSplicesAndReturnsToCaller(t *testing.T) {
	names := testNames()
	player := newTestUnit(0)
	player.RegisterCooldown(2, core.CooldownConfig{})

	rotationJSON := []byte(`{
		"name": "test",
		"lists": {
			"sub": [{"type": "cast", "spell": "builder"}]
		},
		"actions": [
			{"type": "call", "list": "sub"}
		]
	}`)
	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	spell, ok := prog.NextAction(core.RotationContext{Self: player, Vars: map[string]float64{}})
	require.True(t, ok)
	assert.Equal(t, core.SpellId(2), spell)
}

func TestProgramRunDoesNotFallThroughToCaller(t *testing.T) {
	names := testNames()
	player := newTestUnit(0)
	player.RegisterCooldown(1, core.CooldownConfig{})
	player.RegisterCooldown(2, core.CooldownConfig{})
	player.Resources.Get(1).Current = 0 // strike (cost 20) unaffordable, sub-list yields nothing

	rotationJSON := []byte(`{
		"name": "test",
		"lists": {
			"sub": [{"type": "cast", "spell": "strike"}]
		},
		"actions": [
			{"type": "run", "list": "sub"},
			{"type": "cast", "spell": "builder"}
		]
	}`)
	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	_, ok := prog.NextAction(core.RotationContext{Self: player, Vars: map[string]float64{}})
	assert.False(t, ok, "run hands control to the sub-list permanently; it must not fall through to builder")
}

func TestProgramValidateCatchesUnknownSpellReference(t *testing.T) {
	names := testNames()
	rotationJSON := []byte(`{
		"name": "test",
		"actions": [{"type": "cast", "spell": "nonexistent"}]
	}`)
	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	_, errs := prog.Validate(map[core.SpellId]bool{1: true, 2: true}, map[core.AuraId]bool{1: true})
	require.NotEmpty(t, errs)
}

func TestProgramValidatePassesForWellFormedRotation(t *testing.T) {
	names := testNames()
	rotationJSON := []byte(`{
		"name": "test",
		"actions": [
			{"type": "cast", "spell": "strike", "condition": {"type": "path", "path": "debuff.rend.refreshable"}},
			{"type": "cast", "spell": "builder"}
		]
	}`)
	prog, err := NewProgram(rotationJSON, names)
	require.NoError(t, err)

	warnings, errs := prog.Validate(map[core.SpellId]bool{1: true, 2: true}, map[core.AuraId]bool{1: true})
	assert.Empty(t, errs)
	_ = warnings
}
