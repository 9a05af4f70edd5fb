package examplespec

import (
	"time"

	core "github.com/legacy3/wowlab-sub000/sim/core"
)

// buildPets returns the example kit's single companion: a wolf that
// inherits half the owner's attack power and swings at a 2s base
// interval, scaled by owner haste (spec.md §4.7).
func buildPets() []core.PetTemplate {
	return []core.PetTemplate{
		{
			Name: PetWolf,
			Coefficients: core.PetInheritanceCoefficients{
				ApFromOwnerAp: 0.5,
				StaminaCoef:   1,
				ArmorCoef:     1,
			},
			BaseAttackSpeed: 2 * time.Second,
		},
	}
}
