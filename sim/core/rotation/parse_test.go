package rotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDomainPaths(t *testing.T) {
	cases := []struct {
		path string
		want Expr
	}{
		{"resource.energy", ResourceExpr{Resource: "energy", Field: ResourceCurrent}},
		{"resource.energy.deficit", ResourceExpr{Resource: "energy", Field: ResourceDeficit}},
		{"player.health.percent", PlayerExpr{Field: PlayerHealthPercent}},
		{"cd.strike.ready", CooldownExpr{Spell: "strike", Field: CdReady}},
		{"buff.frenzy.stacks", BuffExpr{Aura: "frenzy", Field: AuraStacks}},
		{"debuff.rend.refreshable", DebuffExpr{Aura: "rend", Field: AuraRefreshable}},
		{"dot.rend.ticks_remaining", DotExpr{Aura: "rend", Field: AuraTicksRemaining}},
		{"dot.rend.tick_time", DotExpr{Aura: "rend", Field: AuraTickTime}},
		{"dot.rend.next_tick_in", DotExpr{Aura: "rend", Field: AuraNextTickIn}},
		{"target.health_percent", TargetExpr{Field: TargetHealthPercent}},
		{"enemy.count", EnemyExpr{}},
		{"combat.time", CombatExpr{Field: CombatTime}},
		{"gcd.remaining", GcdExpr{Field: GcdRemaining}},
		{"pet.active", PetExpr{Field: PetActive}},
		{"pet.buff.frenzy", PetExpr{Field: PetBuffActive, Aura: "frenzy"}},
		{"talent.foo", TalentExpr{Name: "foo"}},
		{"trinket.1.ready", TrinketReadyExpr{Slot: 1}},
		{"spell.strike.cost", SpellExpr{Spell: "strike", Field: SpellCost}},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, err := parseDomainPath(tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseRejectsUnknownActionType(t *testing.T) {
	_, err := Parse([]byte(`{"name":"x","actions":[{"type":"frobnicate"}]}`))
	assert.Error(t, err)
}

func TestParseRejectsEmptyCastSpell(t *testing.T) {
	_, err := Parse([]byte(`{"name":"x","actions":[{"type":"cast","spell":""}]}`))
	assert.Error(t, err)
}

func TestParseNestedBooleanExpression(t *testing.T) {
	raw := []byte(`{"name":"x","actions":[
		{"type":"cast","spell":"strike","condition":{
			"type":"and",
			"operands":[
				{"type":"path","path":"buff.frenzy.active"},
				{"type":"not","operand":{"type":"path","path":"pet.active"}}
			]
		}}
	]}`)
	r, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, r.Actions, 1)

	cast, ok := r.Actions[0].(ActionCast)
	require.True(t, ok)
	and, ok := cast.Condition.(AndExpr)
	require.True(t, ok)
	require.Len(t, and.Operands, 2)
	_, ok = and.Operands[1].(NotExpr)
	assert.True(t, ok)
}
