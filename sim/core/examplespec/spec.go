// Package examplespec assembles a complete, self-contained SimConfig:
// a melee/caster hybrid kit with a resource builder/spender, a
// pandemic-refreshable DoT, a stacking damage-modifier buff, a raid
// buff, a charge-based cooldown, a conditional nested cast, a cleave,
// pet summon/mirror-cast, and both non-fixed proc models. It stands in
// for a real SpecHandler (the imported-game-data layer SPEC_FULL.md's
// Non-goals excludes) so sim/core and sim/core/rotation have a working
// end-to-end example to run and test against.
package examplespec

import (
	"time"

	core "github.com/legacy3/wowlab-sub000/sim/core"
	"github.com/legacy3/wowlab-sub000/sim/core/rotation"
)

// Names returns the rotation name table the example kit's spells and
// auras resolve against, for tools (aplvalidate) that need to check an
// arbitrary rotation JSON file against this kit's wire names without
// building a whole SimConfig.
func Names() rotation.Names {
	return buildNames(buildSpells(), buildAuras())
}

// BuildConfig assembles the example kit into a ready-to-run SimConfig,
// with its rotation already parsed and statically folded.
func BuildConfig(duration time.Duration, seed int64) (*core.SimConfig, error) {
	spells := buildSpells()
	auras := buildAuras()

	program, err := rotation.NewProgram([]byte(RotationJSON), buildNames(spells, auras))
	if err != nil {
		return nil, err
	}

	cfg := &core.SimConfig{
		Duration:   duration,
		Seed:       seed,
		PlayerName: "Example Fighter",
		BasePrimary: [core.NumPrimaryStats]float64{
			core.StatStrength: 500,
			core.StatAgility:  200,
			core.StatStamina:  800,
		},
		BaseRating: [core.NumSecondaryRatings]float64{
			core.RatingCrit:        300,
			core.RatingHaste:       250,
			core.RatingMastery:     400,
			core.RatingVersatility: 150,
		},
		Coefficients: core.SpecCoefficients{
			ApPerStat:        [core.NumPrimaryStats]float64{core.StatStrength: 1, core.StatAgility: 1},
			SpPerStat:        [core.NumPrimaryStats]float64{core.StatIntellect: 1},
			CritPerRating:    1.0 / 28,
			HastePerRating:   1.0 / 33,
			MasteryPerRating: 1.0 / 18,
			VersPerRating:    1.0 / 40,
			Level:            70,
			Mastery:          core.MasteryDamageMultiplier,
			MasteryCoefficient: 2.0,
		},
		PrimaryResource: core.ResourceConfig{
			Id:          ResourceEnergy,
			Max:         100,
			RegenPerSec: 10,
			Starting:    100,
		},
		Spells:      spells,
		Auras:       auras,
		Procs:       buildProcs(),
		Rotation:    program,
		TargetCount: 1,
		TargetArmor: 3500,
		TargetHealth: 5_000_000,
		Pets:        buildPets(),
	}

	return cfg, nil
}
