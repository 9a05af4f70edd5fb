package core

// PrimaryStat indexes the four primary attributes.
type PrimaryStat int

const (
	StatStrength PrimaryStat = iota
	StatAgility
	StatIntellect
	StatStamina
	NumPrimaryStats
)

// SecondaryRating indexes the rating-based secondary stats. Ratings are
// stored as raw rating points; StatCache converts them to percentages
// via level-dependent scaling curves.
type SecondaryRating int

const (
	RatingCrit SecondaryRating = iota
	RatingHaste
	RatingMastery
	RatingVersatility
	RatingLeech
	RatingAvoidance
	RatingSpeed
	NumSecondaryRatings
)

// MasteryKind selects how a spec's mastery effect is type-dispatched
// by StatCache, per spec.md §4.2 step 5.
type MasteryKind int

const (
	MasteryDamageMultiplier MasteryKind = iota
	MasteryDotMultiplier
	MasteryPetDamageMultiplier
	MasteryProcChance
	MasteryStatScaling
	MasteryGeneric
)

// SpecCoefficients are the immutable per-spec scaling knobs that feed
// StatCache's derived-stat computation: attack/spell power per primary
// stat, rating-to-percent conversion curves, and the mastery
// dispatch. These are supplied by SimConfig and never change mid-sim.
type SpecCoefficients struct {
	ApPerStat     [NumPrimaryStats]float64
	SpPerStat     [NumPrimaryStats]float64
	CritPerRating float64 // percent per point of crit rating
	HastePerRating float64
	MasteryPerRating float64
	VersPerRating    float64
	Level            int

	Mastery MasteryKind
	// MasteryCoefficient scales the mastery-percent into the dispatched
	// effect (damage multiplier per mastery point, etc).
	MasteryCoefficient float64

	// ExpectedValueMode selects whether DamagePipeline evaluates crit
	// and base-damage variance via their expectations (for batch-mean
	// benchmarking) instead of rolling the RNG. spec.md §4.4.
	ExpectedValueMode bool
}

// RatingBuffs accumulates flat/percent stat modifications from active
// auras; StatCache folds these in on every recompute.
type RatingBuffs struct {
	FlatPrimary   [NumPrimaryStats]float64
	PercentPrimary [NumPrimaryStats]float64
	FlatRating    [NumSecondaryRatings]float64
	HasteMultipliers []float64 // multiplicative haste buffs beyond rating-derived haste
	AllDamageMultipliers []float64
}

// StatCache holds derived values recomputed only when inputs change: a
// rating, a stat-buff aura applied/removed, or an equipment swap.
// Computation order follows spec.md §4.2, leaves first.
type StatCache struct {
	dirty bool

	PrimaryTotal [NumPrimaryStats]float64
	RatingPercent [NumSecondaryRatings]float64

	AttackPower float64
	SpellPower  float64

	HasteMultiplier float64
	CritChance      float64
	CritMultiplier  float64

	MasteryEffect float64 // the type-dispatched mastery value itself

	VersatilityDamageBonus float64
	VersatilityDamageReduction float64
}

// MarkDirty flags the cache for recompute on next Recompute() call.
// Handlers must call this after mutating a rating, primary stat, or
// stat-buff aura; they must never write derived fields directly
// (spec.md §4.2 contract).
func (c *StatCache) MarkDirty() { c.dirty = true }

// Recompute is idempotent and finite: calling it twice without an
// intervening MarkDirty produces identical output and does no work the
// second time.
func (c *StatCache) Recompute(base [NumPrimaryStats]float64, baseRating [NumSecondaryRatings]float64, buffs RatingBuffs, coef SpecCoefficients) {
	if !c.dirty {
		return
	}
	c.dirty = false

	// 1. Primary stat totals = base + item + buff flat + buff percent.
	for i := range c.PrimaryTotal {
		flat := base[i] + buffs.FlatPrimary[i]
		c.PrimaryTotal[i] = flat * (1 + buffs.PercentPrimary[i]/100)
	}

	// 2. Rating -> percent via level-dependent scaling curves.
	ratingTotal := [NumSecondaryRatings]float64{}
	for i := range ratingTotal {
		ratingTotal[i] = baseRating[i] + buffs.FlatRating[i]
	}
	c.RatingPercent[RatingCrit] = ratingTotal[RatingCrit] * coef.CritPerRating
	c.RatingPercent[RatingHaste] = ratingTotal[RatingHaste] * coef.HastePerRating
	c.RatingPercent[RatingMastery] = ratingTotal[RatingMastery] * coef.MasteryPerRating
	c.RatingPercent[RatingVersatility] = ratingTotal[RatingVersatility] * coef.VersPerRating
	c.RatingPercent[RatingLeech] = ratingTotal[RatingLeech]
	c.RatingPercent[RatingAvoidance] = ratingTotal[RatingAvoidance]
	c.RatingPercent[RatingSpeed] = ratingTotal[RatingSpeed]

	// 3. Attack power / spell power = sum(primary_stat * coefficient).
	ap, sp := 0.0, 0.0
	for i := 0; i < int(NumPrimaryStats); i++ {
		ap += c.PrimaryTotal[i] * coef.ApPerStat[i]
		sp += c.PrimaryTotal[i] * coef.SpPerStat[i]
	}
	c.AttackPower = ap
	c.SpellPower = sp

	// 4. Haste multiplier: (1 + haste_pct/100) * product(haste buffs).
	hasteMult := 1 + c.RatingPercent[RatingHaste]/100
	for _, m := range buffs.HasteMultipliers {
		hasteMult *= m
	}
	c.HasteMultiplier = hasteMult

	// 5. Crit chance, mastery dispatch, versatility.
	c.CritChance = c.RatingPercent[RatingCrit] / 100
	c.VersatilityDamageBonus = c.RatingPercent[RatingVersatility] / 100
	// Versatility's damage-reduction leg is half the damage-bonus leg,
	// matching the retail asymmetric versatility curve.
	c.VersatilityDamageReduction = c.VersatilityDamageBonus / 2

	switch coef.Mastery {
	case MasteryDamageMultiplier, MasteryDotMultiplier, MasteryPetDamageMultiplier:
		c.MasteryEffect = c.RatingPercent[RatingMastery] * coef.MasteryCoefficient / 100
	case MasteryProcChance:
		c.MasteryEffect = c.RatingPercent[RatingMastery] * coef.MasteryCoefficient / 100
	case MasteryStatScaling:
		c.MasteryEffect = c.RatingPercent[RatingMastery] * coef.MasteryCoefficient / 100
	default:
		c.MasteryEffect = c.RatingPercent[RatingMastery]
	}

	// 6. Pre-computed crit_mult: the standard 2x bonus multiplier a hit
	// receives when it crits. DamagePipeline.Roll collapses this into
	// an expectation itself for expected-value mode (1 +
	// crit_chance*(crit_mult-1)); StatCache must not also collapse it
	// here, or expected-value mode ends up with crit_chance² instead of
	// crit_chance applied.
	c.CritMultiplier = 2.0
}
