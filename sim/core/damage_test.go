package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDamagePipelineExpectedValueMode(t *testing.T) {
	p := &DamagePipeline{
		Rng:               NewRand(1),
		AllDamageMultiplier: 1,
		CritChance:        0.25,
		CritMultiplier:    2.0,
		ExpectedValueMode: true,
	}
	in := DamageInput{BaseMin: 100, BaseMax: 200, School: SchoolFire}
	ctx := EvalContext{}

	out := p.Roll(in, ctx)

	// Expected-value mode replaces both the base-damage roll and the crit
	// roll with their expectations: base = (100+200)/2, crit factor =
	// 1 + 0.25*(2-1).
	want := 150.0 * (1 + 0.25*(2.0-1.0))
	assert.InDelta(t, want, out.FinalAmount, 1e-9)
	assert.Equal(t, HitNormal, out.HitResult, "expected-value mode never reports a realized crit")
}

func TestDamagePipelineArmorMitigationPhysicalOnly(t *testing.T) {
	p := &DamagePipeline{Rng: NewRand(1), AllDamageMultiplier: 1, ExpectedValueMode: true}

	physical := p.Roll(DamageInput{BaseMin: 1000, BaseMax: 1000, School: SchoolPhysical, Armor: 5000}, EvalContext{})
	magic := p.Roll(DamageInput{BaseMin: 1000, BaseMax: 1000, School: SchoolFire, Armor: 5000}, EvalContext{})

	assert.Less(t, physical.FinalAmount, magic.FinalAmount, "armor must mitigate physical damage but not fire")
	assert.InDelta(t, 1000.0, magic.FinalAmount, 1e-9)
}

func TestArmorMitigationFactorMonotonic(t *testing.T) {
	assert.Equal(t, 1.0, armorMitigationFactor(0))
	assert.Less(t, armorMitigationFactor(10000), armorMitigationFactor(1000))
	assert.Greater(t, armorMitigationFactor(1_000_000), 0.0)
}

func TestDamagePipelinePerStackModScalesWithLiveStacks(t *testing.T) {
	store := NewAuraStore(1)
	def := &AuraDef{Id: 7, Name: "Frenzy", Duration: 0, MaxStacks: 5, Flags: AuraRefreshable}
	store.Apply(def, 0, 1, NoSnapshot)
	store.Apply(def, 0, 1, NoSnapshot)
	store.Apply(def, 0, 1, NoSnapshot)
	if got := store.Stacks(7); got != 3 {
		t.Fatalf("setup: expected 3 stacks, got %d", got)
	}

	p := &DamagePipeline{
		Rng:               NewRand(1),
		AllDamageMultiplier: 1,
		ExpectedValueMode: true,
		Mods: []DamageMod{
			{Name: "Frenzy", Condition: ModCondition{Kind: ModBuffActive, Aura: 7}, Multiplier: 1, PerStack: 0.04},
		},
	}
	ctx := EvalContext{
		CasterAuras: store,
		StacksOf:    func(s *AuraStore, id AuraId) int32 { return s.Stacks(id) },
	}

	out := p.Roll(DamageInput{BaseMin: 100, BaseMax: 100, School: SchoolNature}, ctx)
	assert.InDelta(t, 100*(1+3*0.04), out.FinalAmount, 1e-9)
}

func TestSortModsByPriorityStableForEqualPriority(t *testing.T) {
	mods := []DamageMod{
		{Name: "b", Priority: 0},
		{Name: "a", Priority: 0},
		{Name: "c", Priority: -1},
	}
	sortModsByPriority(mods)
	assert.Equal(t, []string{"c", "b", "a"}, []string{mods[0].Name, mods[1].Name, mods[2].Name})
}
