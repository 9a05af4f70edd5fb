package examplespec

import (
	core "github.com/legacy3/wowlab-sub000/sim/core"
	"github.com/legacy3/wowlab-sub000/sim/core/rotation"
)

// spellWireNames maps the rotation JSON's spell.* / cast "spell" string
// references to the ids buildSpells() assigns them (ids.go). A real
// SpecHandler derives this table from imported game data; here it is
// just the inverse of ids.go's constants.
var spellWireNames = map[string]core.SpellId{
	"strike":            SpellStrike,
	"rending_blow":      SpellRendingBlow,
	"battle_shout":      SpellBattleShout,
	"execute":           SpellExecute,
	"call_companion":    SpellCallCompanion,
	"rapid_volley":      SpellRapidVolley,
	"adrenaline_surge":  SpellAdrenalineSurge,
	"cleaving_sweep":    SpellCleavingSweep,
	"beast_command":     SpellBeastCommand,
}

var auraWireNames = map[string]core.AuraId{
	"rend":         AuraRend,
	"battle_fury":  AuraBattleFury,
	"frenzy":       AuraFrenzy,
}

var resourceWireNames = map[string]core.ResourceId{
	"energy": ResourceEnergy,
}

// buildNames assembles the rotation.Names table the compiled Program
// resolves its dotted string references against, from the spell/aura
// defs this package already built.
func buildNames(spells []core.SpellDef, auras []core.AuraDef) rotation.Names {
	spellById := make(map[core.SpellId]*core.SpellDef, len(spells))
	for i := range spells {
		spellById[spells[i].Id] = &spells[i]
	}
	auraById := make(map[core.AuraId]*core.AuraDef, len(auras))
	for i := range auras {
		auraById[auras[i].Id] = &auras[i]
	}

	names := rotation.Names{
		Spells:    make(map[string]*core.SpellDef, len(spellWireNames)),
		Auras:     make(map[string]*core.AuraDef, len(auraWireNames)),
		Resources: resourceWireNames,
	}
	for name, id := range spellWireNames {
		if def, ok := spellById[id]; ok {
			names.Spells[name] = def
		}
	}
	for name, id := range auraWireNames {
		if def, ok := auraById[id]; ok {
			names.Auras[name] = def
		}
	}
	return names
}

// RotationJSON is a priority list exercising every branch of the
// example kit: maintain Battle Fury and the pet, refresh Rend before
// it falls off (pandemic window), spend a charge-capped cooldown,
// execute at low target health, cleave on multi-target, and fall back
// to the basic builder. "ticks" counts fallback casts via modify_var,
// which needs no prior declaration in "variables" (spec.md §4.9).
const RotationJSON = `{
  "name": "example_kit",
  "variables": {
    "ticks": {"type": "float", "value": 0}
  },
  "actions": [
    {
      "type": "cast",
      "spell": "battle_shout",
      "condition": {"type": "not", "operand": {"type": "path", "path": "buff.battle_fury.active"}}
    },
    {
      "type": "cast",
      "spell": "call_companion",
      "condition": {"type": "not", "operand": {"type": "path", "path": "pet.active"}}
    },
    {
      "type": "cast",
      "spell": "adrenaline_surge",
      "condition": {
        "type": "and",
        "operands": [
          {"type": "path", "path": "cd.adrenaline_surge.ready"},
          {"type": "lt", "left": {"type": "path", "path": "cd.rapid_volley.charges"}, "right": {"type": "int", "value": 2}}
        ]
      }
    },
    {
      "type": "cast",
      "spell": "rending_blow",
      "condition": {"type": "path", "path": "debuff.rend.refreshable"}
    },
    {
      "type": "cast",
      "spell": "execute",
      "condition": {"type": "lte", "left": {"type": "path", "path": "target.health_percent"}, "right": {"type": "float", "value": 20}}
    },
    {
      "type": "cast",
      "spell": "cleaving_sweep",
      "condition": {"type": "gte", "left": {"type": "path", "path": "enemy.count"}, "right": {"type": "int", "value": 2}}
    },
    {
      "type": "cast",
      "spell": "beast_command",
      "condition": {"type": "path", "path": "pet.active"}
    },
    {
      "type": "cast",
      "spell": "rapid_volley",
      "condition": {"type": "gte", "left": {"type": "path", "path": "cd.rapid_volley.charges"}, "right": {"type": "int", "value": 1}}
    },
    {
      "type": "modify_var",
      "name": "ticks",
      "op": "add",
      "value": {"type": "float", "value": 1}
    },
    {
      "type": "cast",
      "spell": "strike"
    }
  ]
}`
