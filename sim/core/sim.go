package core

import (
	"fmt"
	"runtime/debug"
	"time"
)

// Simulation is the SimDriver: the event-queue-driven engine that
// turns a SimConfig + RotationProgram into a SimResult. Its Run
// method follows the teacher's runSim/runOnce split (panic recovery
// at the outer boundary, a reset-free single run inside) but replaces
// the teacher's watermark-field Step() with the canonical
// EventQueue/SimEvent dispatch this spec calls for.
type Simulation struct {
	Config *SimConfig

	Rng      *Rand
	Queue    *EventQueue
	Player   *Unit
	Enemies  []*Unit
	Procs    *ProcRegistry
	Pipeline *DamagePipeline
	Rotation RotationProgram

	spellDefs map[SpellId]*SpellDef
	auraDefs  map[AuraId]*AuraDef

	CurrentTime time.Duration
	Log         func(format string, args ...any)

	damageBySpell map[SpellId]float64
	castsBySpell  map[SpellId]int
	damageLog     []DamageEvent
	castLog       []CastEvent
	totalDamage   float64

	finished bool

	// rotationVars is the rotation DSL's user-variable store. It lives
	// on the Simulation (not the RotationProgram, which is shared,
	// immutable, read-only state across a whole batch) so each run gets
	// its own independent variable bindings; the same map instance is
	// reused across every RotationContext built this run.
	rotationVars map[string]float64

	// cast-scoped context for EffectExecutor methods; valid only while
	// executing the effects of one cast/tick.
	castCaster *Unit
	castTarget *Unit
	castSpell  SpellId
}

// NewSimulation validates cfg and constructs a ready-to-run Simulation.
// Per spec.md §4.1, a Simulation is never built from an invalid config.
func NewSimulation(cfg *SimConfig) (*Simulation, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid sim config: %v", errs)
	}

	rng := NewRand(cfg.Seed)

	player := NewUnit(0, cfg.PlayerName, cfg.BasePrimary, cfg.BaseRating, cfg.Coefficients, cfg.PrimaryResource, cfg.SecondaryResources)
	for name, enabled := range cfg.Talents {
		player.Talents[name] = enabled
	}

	spellDefs := make(map[SpellId]*SpellDef, len(cfg.Spells))
	for i := range cfg.Spells {
		s := &cfg.Spells[i]
		spellDefs[s.Id] = s
		player.RegisterCooldown(s.Id, s.Cooldown)
	}

	auraDefs := make(map[AuraId]*AuraDef, len(cfg.Auras))
	for i := range cfg.Auras {
		auraDefs[cfg.Auras[i].Id] = &cfg.Auras[i]
	}

	targetCount := cfg.TargetCount
	if targetCount < 1 {
		targetCount = 1
	}
	enemies := make([]*Unit, targetCount)
	for i := range enemies {
		e := NewUnit(UnitId(i+1), fmt.Sprintf("target-%d", i+1),
			[NumPrimaryStats]float64{}, [NumSecondaryRatings]float64{}, SpecCoefficients{},
			ResourceConfig{}, nil)
		e.HealthMax = cfg.TargetHealth
		e.HealthCurrent = cfg.TargetHealth
		e.Armor = cfg.TargetArmor
		enemies[i] = e
	}

	procs := NewProcRegistry(rng.Seeded())
	for _, p := range cfg.Procs {
		procs.Register(p)
	}

	sim := &Simulation{
		Config:        cfg,
		Rng:           rng,
		Queue:         NewEventQueue(),
		Player:        player,
		Enemies:       enemies,
		Procs:         procs,
		Rotation:      cfg.Rotation,
		spellDefs:     spellDefs,
		auraDefs:      auraDefs,
		damageBySpell: make(map[SpellId]float64),
		castsBySpell:  make(map[SpellId]int),
		rotationVars:  make(map[string]float64),
	}
	sim.Pipeline = &DamagePipeline{Rng: rng, ExpectedValueMode: cfg.Coefficients.ExpectedValueMode}
	return sim, nil
}

// log writes a debug trace line through sim.Log if the caller wired
// one, matching the teacher's nil-by-default sim.Log hook (sim.go):
// logging costs nothing when no one asked for it.
func (sim *Simulation) log(format string, args ...any) {
	if sim.Log != nil {
		sim.Log(format, args...)
	}
}

func (sim *Simulation) target() *Unit {
	if len(sim.Enemies) == 0 {
		return nil
	}
	return sim.Enemies[0]
}

// Run executes one complete iteration and returns its SimResult. A
// panic anywhere in the event loop is recovered and reported as an
// error rather than crashing a batch (spec.md §5, "one iteration's
// panic must not abort the batch").
func (sim *Simulation) Run() (result SimResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("simulation panic at t=%s: %v\n%s", sim.CurrentTime, r, debug.Stack())
		}
	}()

	sim.init()
	sim.loop()
	return sim.finalize(), nil
}

func (sim *Simulation) init() {
	sim.Queue.Schedule(0, SimEvent{Kind: EventGcdEnd, Unit: sim.Player.Id})
	sim.Queue.Schedule(sim.Config.Duration, SimEvent{Kind: EventFinalize})

	for i := range sim.Config.Spells {
		s := &sim.Config.Spells[i]
		if s.Flags.Has(SpellIsAutoAttack) {
			sim.Queue.Schedule(0, SimEvent{Kind: EventAutoAttack, Spell: s.Id, Unit: sim.Player.Id})
		}
	}
}

// loop drains the event queue in coincident-timestamp batches (spec.md
// §4.1), processing every event at one timestamp before the clock may
// advance, until Finalize fires or now >= Duration.
func (sim *Simulation) loop() {
	for !sim.finished {
		t, events, ok := sim.Queue.PopBatch()
		if !ok {
			return
		}
		if t >= sim.Config.Duration {
			return
		}
		sim.CurrentTime = t
		for _, ev := range events {
			sim.dispatch(ev)
			if sim.finished {
				return
			}
		}
	}
}

func (sim *Simulation) dispatch(ev SimEvent) {
	switch ev.Kind {
	case EventGcdEnd:
		sim.handleGcdEnd(ev)
	case EventCastComplete:
		sim.handleCastComplete(ev)
	case EventAutoAttack:
		sim.handleAutoAttack(ev)
	case EventPetAttack:
		sim.handlePetAttack(ev)
	case EventAuraTick:
		sim.handleAuraTick(ev)
	case EventAuraExpire:
		sim.handleAuraExpire(ev)
	case EventCooldownReady:
		sim.handleCooldownReady(ev)
	case EventFinalize:
		sim.finished = true
	case EventEnemyCheck:
		// Reserved for encounter-side scripted events; this spec's scope
		// (spec.md Non-goals) has no encounter AI to drive here.
	}
}

// waitGcd is the no-op re-poll interval handleGcdEnd schedules when the
// rotation has nothing eligible to do right now (spec.md §4.9's
// WaitGcd wait-reason, §163).
const waitGcd = 100 * time.Millisecond

// handleGcdEnd is the rotation-tick step: refresh stats, ask the
// RotationProgram for the next action, and either cast it or retry
// shortly (spec.md §4.8/§4.9).
func (sim *Simulation) handleGcdEnd(ev SimEvent) {
	if !sim.Player.GcdReady(sim.CurrentTime) {
		return
	}
	sim.Player.Resources.AdvanceTo(sim.CurrentTime)
	sim.refreshStats(sim.Player)

	ctx := RotationContext{
		Now:         sim.CurrentTime,
		Self:        sim.Player,
		Target:      sim.target(),
		Pets:        sim.Player.ActivePets(sim.CurrentTime),
		Enemies:     sim.Enemies,
		GcdEndsAt:   sim.Player.GcdEndsAt,
		InCombat:    true,
		CombatStart: 0,
		Vars:        sim.rotationVars,
	}

	if sim.Rotation == nil {
		return
	}
	spellID, ok := sim.Rotation.NextAction(ctx)
	if !ok {
		// No eligible action right now; re-evaluate shortly rather than
		// spin the event loop at the same timestamp forever.
		sim.Queue.Schedule(sim.CurrentTime+waitGcd, SimEvent{Kind: EventGcdEnd, Unit: sim.Player.Id})
		return
	}

	def, known := sim.spellDefs[spellID]
	if !known || !def.CanAfford(sim.Player.Resources) || !sim.Player.CooldownReady(spellID, sim.CurrentTime) {
		sim.Queue.Schedule(sim.CurrentTime+waitGcd, SimEvent{Kind: EventGcdEnd, Unit: sim.Player.Id})
		return
	}

	sim.beginCast(def)
}

func (sim *Simulation) beginCast(def *SpellDef) {
	def.ApplyResourceDeltas(sim.Player.Resources)

	if cd := sim.Player.Cooldown(def.Id); cd != nil {
		scheduleRecharge, rechargeAt := cd.Use(sim.CurrentTime)
		if scheduleRecharge {
			sim.Queue.Schedule(rechargeAt, SimEvent{Kind: EventCooldownReady, Spell: def.Id, Unit: sim.Player.Id})
		}
	}

	gcd := def.GcdDuration(sim.Player.Stats.HasteMultiplier)
	if def.Gcd == GcdTriggers {
		sim.Player.GcdEndsAt = sim.CurrentTime + gcd
		sim.Queue.Schedule(sim.Player.GcdEndsAt, SimEvent{Kind: EventGcdEnd, Unit: sim.Player.Id})
	} else {
		sim.Queue.Schedule(sim.CurrentTime, SimEvent{Kind: EventGcdEnd, Unit: sim.Player.Id})
	}

	if def.CastTime <= 0 {
		sim.castSpellNow(def)
		return
	}
	sim.Queue.Schedule(sim.CurrentTime+def.CastTime, SimEvent{Kind: EventCastComplete, Spell: def.Id, Unit: sim.Player.Id})
}

func (sim *Simulation) handleCastComplete(ev SimEvent) {
	def, ok := sim.spellDefs[ev.Spell]
	if !ok {
		return
	}
	sim.castSpellNow(def)
}

func (sim *Simulation) castSpellNow(def *SpellDef) {
	sim.castsBySpell[def.Id]++
	sim.castLog = append(sim.castLog, CastEvent{At: sim.CurrentTime, Spell: def.Id, Source: sim.Player.Id})
	sim.log("cast %d", def.Id)

	target := sim.target()
	critted := false
	if def.Damage != nil && target != nil {
		critted = sim.rollDamage(*def.Damage, def.Id, sim.Player, target)
	}

	sim.castCaster = sim.Player
	sim.castTarget = target
	sim.castSpell = def.Id
	for _, e := range def.Effects {
		Execute(e, sim)
	}
	sim.castCaster, sim.castTarget = nil, nil

	procFlags := ProcOnSpellCast
	if def.Damage != nil && target != nil {
		procFlags |= ProcOnDamage
	}
	sim.triggerProcs(procFlags, critted)
}

// rollDamage executes the DamagePipeline for one hit of spell on
// target, recording the outcome. Returns whether the hit crit, for
// ON_CRIT proc dispatch.
func (sim *Simulation) rollDamage(in DamageInput, spell SpellId, caster, target *Unit) bool {
	sim.refreshStats(caster)
	in.Armor = target.Armor

	sim.Pipeline.AllDamageMultiplier = 1
	sim.Pipeline.CritChance = caster.Stats.CritChance
	sim.Pipeline.CritMultiplier = caster.Stats.CritMultiplier
	sim.Pipeline.VersatilityDamageBonus = caster.Stats.VersatilityDamageBonus
	sim.Pipeline.MasteryDamageMultiplier = 0
	if sim.Config.Coefficients.Mastery == MasteryDamageMultiplier {
		sim.Pipeline.MasteryDamageMultiplier = caster.Stats.MasteryEffect
	}
	sim.Pipeline.Mods = sim.activeDamageMods(caster)

	ctx := EvalContext{
		CasterAuras:     caster.Auras,
		TargetAuras:     target.Auras,
		TargetHealthPct: target.HealthPercent(),
		PlayerHealthPct: sim.Player.HealthPercent(),
		TalentEnabled:   func(name string) bool { return sim.Player.Talents[name] },
		StacksOf:        func(store *AuraStore, id AuraId) int32 { return store.Stacks(id) },
	}.WithPower(caster.Stats.AttackPower, caster.Stats.SpellPower)

	outcome := sim.Pipeline.Roll(in, ctx)
	sim.recordDamage(spell, caster.Id, outcome.FinalAmount, outcome.HitResult, outcome.School)
	target.HealthCurrent = MaxOf(target.HealthCurrent-outcome.FinalAmount, 0)

	return outcome.HitResult == HitCrit
}

func (sim *Simulation) recordDamage(spell SpellId, source UnitId, amount float64, hit HitResult, school DamageSchool) {
	sim.totalDamage += amount
	sim.damageBySpell[spell] += amount
	sim.damageLog = append(sim.damageLog, DamageEvent{
		At: sim.CurrentTime, Spell: spell, Source: source, Amount: amount, HitResult: hit, School: school,
	})
}

func (sim *Simulation) triggerProcs(flag ProcFlags, wasCrit bool) {
	flags := flag
	if wasCrit {
		flags |= ProcOnCrit
	}
	fired := sim.Procs.TryProc(sim.CurrentTime, flags, sim.Player.Stats.HasteMultiplier)
	for _, id := range fired {
		if def, ok := sim.spellDefs[id]; ok {
			sim.castSpellNow(def)
		}
	}
}

func (sim *Simulation) handleAutoAttack(ev SimEvent) {
	def, ok := sim.spellDefs[ev.Spell]
	if !ok {
		return
	}
	target := sim.target()
	critted := false
	if def.Damage != nil && target != nil {
		critted = sim.rollDamage(*def.Damage, def.Id, sim.Player, target)
	}
	sim.castsBySpell[def.Id]++
	sim.triggerProcs(ProcOnAutoAttack, critted)

	swing := def.CastTime
	if swing <= 0 {
		swing = 2 * time.Second
	}
	haste := sim.Player.Stats.HasteMultiplier
	if haste <= 0 {
		haste = 1
	}
	next := sim.CurrentTime + time.Duration(float64(swing)/haste)
	sim.Queue.Schedule(next, SimEvent{Kind: EventAutoAttack, Spell: def.Id, Unit: sim.Player.Id})
}

func (sim *Simulation) handlePetAttack(ev SimEvent) {
	var pet *Pet
	for _, p := range sim.Player.Pets {
		if p.Unit == UnitId(ev.Pet) {
			pet = p
			break
		}
	}
	if pet == nil || !pet.Active(sim.CurrentTime) {
		return
	}
	target := sim.target()
	if target != nil {
		// Pet melee is a flat AP-scaled hit; pets don't carry a SpellDef
		// of their own in this generalized model (spec.md §4.7).
		amount := pet.Stats.AttackPower * 0.05
		amount *= armorMitigationFactor(sim.Config.TargetArmor)
		sim.recordDamage(0, pet.Unit, amount, HitNormal, SchoolPhysical)
		target.HealthCurrent = MaxOf(target.HealthCurrent-amount, 0)
	}
	next := sim.CurrentTime + pet.Stats.AttackSpeed
	sim.Queue.Schedule(next, SimEvent{Kind: EventPetAttack, Pet: PetId(pet.Unit)})
}

func (sim *Simulation) handleAuraTick(ev SimEvent) {
	owner, target := sim.auraOwnerAndTarget(ev.Aura, ev.Unit)
	if owner == nil {
		return
	}
	res := owner.Auras.Tick(ev.Aura, sim.CurrentTime)
	if !res.Fired {
		return
	}
	if res.StillActive {
		sim.Queue.Schedule(res.NextTick, SimEvent{Kind: EventAuraTick, Aura: ev.Aura, Unit: ev.Unit})
	}

	def := sim.auraDefs[ev.Aura]
	if def == nil || target == nil {
		return
	}
	for _, eff := range def.Effects {
		if eff.Kind != AuraEffectPeriodicDamage {
			continue
		}
		snap, hasSnap := owner.snapshotFor(res.Aura.Snapshot())
		ap, sp, allMult := owner.Stats.AttackPower, owner.Stats.SpellPower, 1.0
		crit, critMult := owner.Stats.CritChance, owner.Stats.CritMultiplier
		if hasSnap {
			ap, sp, allMult, crit, critMult = snap.AttackPower, snap.SpellPower, snap.AllDamageMultiplier, snap.CritChance, snap.CritMultiplier
		}
		sim.Pipeline.AllDamageMultiplier = allMult
		sim.Pipeline.CritChance = crit
		sim.Pipeline.CritMultiplier = critMult
		sim.Pipeline.VersatilityDamageBonus = owner.Stats.VersatilityDamageBonus
		sim.Pipeline.MasteryDamageMultiplier = 0
		sim.Pipeline.Mods = sim.activeDamageMods(owner)

		in := DamageInput{BaseMin: eff.BaseTickAmount, BaseMax: eff.BaseTickAmount, ApCoef: eff.TickApCoef, SpCoef: eff.TickSpCoef, School: eff.School, Armor: target.Armor}
		ctx := EvalContext{
			CasterAuras:   owner.Auras,
			TargetAuras:   target.Auras,
			TalentEnabled: func(name string) bool { return sim.Player.Talents[name] },
			StacksOf:      func(store *AuraStore, id AuraId) int32 { return store.Stacks(id) },
		}.WithPower(ap, sp)
		outcome := sim.Pipeline.Roll(in, ctx)
		sim.recordDamage(0, owner.Id, outcome.FinalAmount, outcome.HitResult, outcome.School)
		target.HealthCurrent = MaxOf(target.HealthCurrent-outcome.FinalAmount, 0)
		sim.triggerProcs(ProcOnPeriodicDamage, outcome.HitResult == HitCrit)
	}
}

func (sim *Simulation) handleAuraExpire(ev SimEvent) {
	owner, _ := sim.auraOwnerAndTarget(ev.Aura, ev.Unit)
	if owner == nil {
		return
	}
	if owner.Auras.ExpireIfDue(ev.Aura, sim.CurrentTime) {
		sim.log("aura faded: %d", ev.Aura)
		def := sim.auraDefs[ev.Aura]
		if def != nil {
			for _, eff := range def.Effects {
				if eff.Kind == AuraEffectStatBuff {
					owner.Stats.MarkDirty()
					break
				}
			}
		}
	}
}

func (sim *Simulation) handleCooldownReady(ev SimEvent) {
	cd := sim.Player.Cooldown(ev.Spell)
	if cd == nil {
		return
	}
	scheduleNext, nextAt := cd.RestoreCharge(sim.CurrentTime)
	if scheduleNext {
		sim.Queue.Schedule(nextAt, SimEvent{Kind: EventCooldownReady, Spell: ev.Spell, Unit: ev.Unit})
	}
}

// auraOwnerAndTarget resolves which Unit's AuraStore an aura event
// belongs to, and its target (the unit the aura's periodic damage
// should hit) — debuffs live on the enemy and hit the enemy; buffs
// live on the player and (for periodic heals, out of scope here) hit
// the player. Non-debuff periodic-damage auras (e.g. a DoT snapshot
// retained by the caster) still resolve damage against the primary
// target.
func (sim *Simulation) auraOwnerAndTarget(id AuraId, unit UnitId) (owner, target *Unit) {
	def := sim.auraDefs[id]
	if def != nil && def.Flags.Has(AuraIsDebuff) {
		t := sim.target()
		return t, t
	}
	if unit == sim.Player.Id {
		return sim.Player, sim.target()
	}
	for _, e := range sim.Enemies {
		if e.Id == unit {
			return e, e
		}
	}
	return nil, nil
}

// refreshStats recomputes a unit's StatCache from its currently active
// stat-buff auras. Called lazily before any read of derived stats
// rather than eagerly on every aura change, matching the dirty-flag
// contract in spec.md §4.2.
func (sim *Simulation) refreshStats(u *Unit) {
	u.Stats.MarkDirty()
	var buffs RatingBuffs
	for _, a := range u.Auras.All() {
		for _, eff := range a.Def.Effects {
			if eff.Kind != AuraEffectStatBuff {
				continue
			}
			stacks := float64(a.Stacks())
			for i := 0; i < int(NumPrimaryStats); i++ {
				buffs.FlatPrimary[i] += eff.FlatPrimary[i] * stacks
				buffs.PercentPrimary[i] += eff.PercentPrimary[i] * stacks
			}
			for i := 0; i < int(NumSecondaryRatings); i++ {
				buffs.FlatRating[i] += eff.FlatRating[i] * stacks
			}
			if eff.HasteMultiplierBonus != 0 {
				buffs.HasteMultipliers = append(buffs.HasteMultipliers, eff.HasteMultiplierBonus)
			}
		}
	}
	u.Stats.Recompute(u.BasePrimary, u.BaseRating, buffs, u.Coef)
}

// activeDamageMods translates u's currently active AuraEffectDamageDoneModifier
// auras into DamageMods for one Roll call. The condition names the aura
// itself (ModBuffActive) so Roll's own PerStack/StacksOf machinery reads
// live stack counts rather than this helper snapshotting them (spec.md
// §4.4 step 7, §3 AuraEffectDamageDoneModifier).
func (sim *Simulation) activeDamageMods(u *Unit) []DamageMod {
	var mods []DamageMod
	for _, a := range u.Auras.All() {
		for _, eff := range a.Def.Effects {
			if eff.Kind != AuraEffectDamageDoneModifier {
				continue
			}
			mods = append(mods, DamageMod{
				Name:       a.Def.Name,
				Condition:  ModCondition{Kind: ModBuffActive, Aura: a.Def.Id},
				Multiplier: 1 + eff.DamageModMultiplier,
				PerStack:   eff.DamageModPerStack,
			})
		}
	}
	return mods
}

func (sim *Simulation) finalize() SimResult {
	dps := 0.0
	if sim.Config.Duration > 0 {
		dps = sim.totalDamage / sim.Config.Duration.Seconds()
	}
	sim.log("finalize: %.1f total damage, %.1f dps", sim.totalDamage, dps)
	return SimResult{
		Duration:      sim.Config.Duration,
		Seed:          sim.Config.Seed,
		TotalDamage:   sim.totalDamage,
		Dps:           dps,
		DamageBySpell: sim.damageBySpell,
		CastsBySpell:  sim.castsBySpell,
		Damage:        sim.damageLog,
		Casts:         sim.castLog,
	}
}

// --- EffectExecutor implementation ---

func (sim *Simulation) Now() time.Duration { return sim.CurrentTime }

func (sim *Simulation) ReduceCooldown(spell SpellId, by time.Duration) {
	if cd := sim.Player.Cooldown(spell); cd != nil {
		cd.ReduceBy(sim.CurrentTime, by)
	}
}

func (sim *Simulation) GainCharge(spell SpellId) {
	if cd := sim.Player.Cooldown(spell); cd != nil {
		cd.GainCharge()
	}
}

func (sim *Simulation) CastInstant(spell SpellId) {
	if def, ok := sim.spellDefs[spell]; ok {
		sim.castSpellNow(def)
	}
}

func (sim *Simulation) SummonPet(template string, duration time.Duration) {
	tmpl, ok := sim.Config.petTemplates()[template]
	if !ok {
		return
	}
	id := UnitId(len(sim.Player.Pets) + 1000)
	pet := &Pet{
		Unit:      id,
		Template:  tmpl,
		Auras:     NewAuraStore(id),
		SummonedAt: sim.CurrentTime,
		Permanent: duration <= 0,
	}
	if !pet.Permanent {
		pet.ExpiresAt = sim.CurrentTime + duration
	}
	pet.Stats = tmpl.Inherit(sim.Player.OwnerSnapshot())
	sim.Player.Pets = append(sim.Player.Pets, pet)
	sim.Queue.Schedule(sim.CurrentTime, SimEvent{Kind: EventPetAttack, Pet: PetId(id)})
}

func (sim *Simulation) ApplyAura(id AuraId, onTarget bool) {
	def := sim.auraDefs[id]
	if def == nil {
		return
	}
	owner := sim.castCaster
	if onTarget {
		owner = sim.castTarget
	}
	if owner == nil {
		return
	}
	hasteMult := sim.castCaster.Stats.HasteMultiplier
	snap := NoSnapshot
	if def.Flags.Has(AuraSnapshotsStats) {
		sid := owner.takeSnapshot(sim.castCaster.Snapshot(1))
		snap = sid
	}
	res := owner.Auras.Apply(def, sim.CurrentTime, hasteMult, snap)
	sim.log("aura gained: %d (stacks %d)", id, res.Aura.Stacks())
	for _, eff := range def.Effects {
		if eff.Kind == AuraEffectStatBuff {
			owner.Stats.MarkDirty()
		}
	}
	if res.NextTickScheduled {
		sim.Queue.Schedule(res.Aura.NextTick(), SimEvent{Kind: EventAuraTick, Aura: id, Unit: owner.Id})
	}
	sim.Queue.Schedule(res.Aura.ExpiresAt(), SimEvent{Kind: EventAuraExpire, Aura: id, Unit: owner.Id})
}

func (sim *Simulation) ExtendAura(id AuraId, by time.Duration, onTarget bool) {
	owner := sim.castCaster
	if onTarget {
		owner = sim.castTarget
	}
	if owner == nil {
		return
	}
	owner.Auras.ExtendDuration(id, by)
}

func (sim *Simulation) RefreshAura(id AuraId, onTarget bool) {
	sim.ApplyAura(id, onTarget)
}

func (sim *Simulation) PetMirrorCast(spell SpellId) {
	// Pets in this generalized model deal flat AP-scaled melee damage
	// rather than casting SpellDefs of their own; a mirrored cast is
	// approximated as an immediate extra hit from every active pet.
	target := sim.target()
	if target == nil {
		return
	}
	for _, p := range sim.Player.ActivePets(sim.CurrentTime) {
		amount := p.Stats.AttackPower * 0.05
		sim.recordDamage(spell, p.Unit, amount, HitNormal, SchoolPhysical)
		target.HealthCurrent = MaxOf(target.HealthCurrent-amount, 0)
	}
}

func (sim *Simulation) CleaveDamage(targets int32, falloff float64) {
	if sim.castCaster == nil || sim.castSpell == 0 {
		return
	}
	def, ok := sim.spellDefs[sim.castSpell]
	if !ok || def.Damage == nil {
		return
	}
	n := int(targets)
	if n > len(sim.Enemies)-1 {
		n = len(sim.Enemies) - 1
	}
	for i := 1; i <= n; i++ {
		secondary := sim.Enemies[i]
		in := *def.Damage
		in.BaseMin *= falloff
		in.BaseMax *= falloff
		in.ApCoef *= falloff
		in.SpCoef *= falloff
		sim.rollDamage(in, sim.castSpell, sim.castCaster, secondary)
	}
}

func (sim *Simulation) Eval(cond EffectCondition) bool {
	return evalEffectCondition(cond, sim)
}

func evalEffectCondition(c EffectCondition, sim *Simulation) bool {
	switch c.Kind {
	case CondAlways:
		return true
	case CondBuffActive:
		return sim.castCaster != nil && sim.castCaster.Auras.Has(c.Aura)
	case CondDebuffActive:
		return sim.castTarget != nil && sim.castTarget.Auras.Has(c.Aura)
	case CondTalentEnabled:
		return sim.Player.Talents[c.Talent]
	case CondTargetHealthBelow:
		return sim.castTarget != nil && sim.castTarget.HealthPercent() < c.Percent
	case CondPlayerHealthBelow:
		return sim.Player.HealthPercent() < c.Percent
	case CondDuringBuff:
		return sim.castCaster != nil && sim.castCaster.Auras.Has(c.Aura)
	case CondPetActive:
		return len(sim.Player.ActivePets(sim.CurrentTime)) > 0
	case CondHasStacks:
		return sim.castCaster != nil && sim.castCaster.Auras.Stacks(c.Aura) >= c.MinStacks
	case CondCooldownReady:
		return sim.Player.CooldownReady(c.Spell, sim.CurrentTime)
	case CondAnd:
		for _, op := range c.Operands {
			if !evalEffectCondition(op, sim) {
				return false
			}
		}
		return true
	case CondOr:
		for _, op := range c.Operands {
			if evalEffectCondition(op, sim) {
				return true
			}
		}
		return false
	case CondNot:
		if len(c.Operands) == 0 {
			return true
		}
		return !evalEffectCondition(c.Operands[0], sim)
	default:
		return false
	}
}
