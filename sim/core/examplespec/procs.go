package examplespec

import (
	"time"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// buildProcs returns the example kit's two passive triggers, one of
// each non-fixed-probability kind (spec.md §4.6): Lucky Strike ramps
// in on crits via RPPM, Second Wind is an ICD-gated chance on each
// damaging cast.
func buildProcs() []core.ProcDef {
	return []core.ProcDef{
		{
			Id:    SpellLuckyStrike,
			Flags: core.ProcOnCrit,
			Kind:  core.ProcRPPM,
			Rppm:  1.5,
		},
		{
			Id:     SpellSecondWind,
			Flags:  core.ProcOnDamage,
			Kind:   core.ProcICD,
			Chance: 0.1,
			ICD:    20 * time.Second,
		},
	}
}
