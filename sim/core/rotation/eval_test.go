package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

func TestEvalAuraTickTimeAndNextTickIn(t *testing.T) {
	target := newTestUnit(1)
	rend := &core.AuraDef{Id: 1, Name: "Rend", Duration: 12 * time.Second, TickInterval: 3 * time.Second}
	target.Auras.Apply(rend, 0, 1.0, 0)

	es := &evalState{
		ctx: core.RotationContext{
			Now:    1 * time.Second,
			Target: target,
			Vars:   map[string]float64{},
		},
		names: Names{Auras: map[string]*core.AuraDef{"rend": rend}},
	}

	tickTime := evalExpr(DotExpr{Aura: "rend", Field: AuraTickTime}, es)
	assert.Equal(t, 3.0, tickTime.AsFloat(), "tick_time reports the aura's effective tick cadence")

	nextTick := evalExpr(DotExpr{Aura: "rend", Field: AuraNextTickIn}, es)
	assert.Equal(t, 2.0, nextTick.AsFloat(), "first tick lands at t=3s; 1s elapsed leaves 2s")
}

func TestEvalAuraTickTimeAndNextTickInWithoutActiveAura(t *testing.T) {
	target := newTestUnit(1)
	rend := &core.AuraDef{Id: 1, Name: "Rend", Duration: 12 * time.Second, TickInterval: 3 * time.Second}

	es := &evalState{
		ctx: core.RotationContext{
			Now:    0,
			Target: target,
			Vars:   map[string]float64{},
		},
		names: Names{Auras: map[string]*core.AuraDef{"rend": rend}},
	}

	tickTime := evalExpr(DotExpr{Aura: "rend", Field: AuraTickTime}, es)
	assert.Equal(t, 3.0, tickTime.AsFloat(), "absent aura still reports its defined tick cadence")

	nextTick := evalExpr(DotExpr{Aura: "rend", Field: AuraNextTickIn}, es)
	assert.Equal(t, 0.0, nextTick.AsFloat(), "absent aura has no pending tick")
}
