package examplespec

import core "github.com/legacy3/wowlab-sub000/sim/core"

// Spell/aura/resource ids for the example kit. A real SpecHandler would
// generate these from imported game data; this package hand-assigns
// them since it has none to ingest (SPEC_FULL.md Non-goals).
const (
	SpellStrike core.SpellId = iota + 1
	SpellRendingBlow
	SpellBattleShout
	SpellExecute
	SpellExecuteEcho
	SpellCallCompanion
	SpellRapidVolley
	SpellAdrenalineSurge
	SpellCleavingSweep
	SpellLuckyStrike
	SpellBeastCommand
	SpellSecondWind
)

const (
	AuraRend core.AuraId = iota + 1
	AuraBattleFury
	AuraFrenzy
)

const ResourceEnergy core.ResourceId = 1

// PetWolf is the PetTemplate.Name used by both the summon effect and
// the pet template itself.
const PetWolf = "wolf"
