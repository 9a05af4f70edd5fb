package core

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// DamageEvent is one recorded hit, kept for post-sim analysis
// (DPS-by-spell breakdowns, proc uptime, etc).
type DamageEvent struct {
	At       time.Duration
	Spell    SpellId
	Source   UnitId
	Target   TargetId
	Amount   float64
	HitResult HitResult
	School   DamageSchool
}

// CastEvent is one recorded cast completion.
type CastEvent struct {
	At    time.Duration
	Spell SpellId
	Source UnitId
}

// SimResult is the immutable output of one Simulation.Run call.
type SimResult struct {
	Duration time.Duration
	Seed     int64

	TotalDamage float64
	Dps         float64

	DamageBySpell map[SpellId]float64
	CastsBySpell  map[SpellId]int

	Damage []DamageEvent
	Casts  []CastEvent
}

// BatchResult aggregates N independent SimResults. Per-iteration
// results are written by index, not appended, so the aggregate is
// identical regardless of which goroutine finished first (spec.md
// §5, batch determinism).
type BatchResult struct {
	BatchID uuid.UUID

	Iterations []SimResult

	MeanDps   float64
	MinDps    float64
	MaxDps    float64
	StdDevDps float64
}

// NewBatchResult reduces a slice of per-iteration results (already in
// iteration-index order) into summary statistics.
func NewBatchResult(results []SimResult) BatchResult {
	b := BatchResult{
		BatchID:    uuid.New(),
		Iterations: results,
	}
	if len(results) == 0 {
		return b
	}

	sum := 0.0
	b.MinDps = results[0].Dps
	b.MaxDps = results[0].Dps
	for _, r := range results {
		sum += r.Dps
		if r.Dps < b.MinDps {
			b.MinDps = r.Dps
		}
		if r.Dps > b.MaxDps {
			b.MaxDps = r.Dps
		}
	}
	b.MeanDps = sum / float64(len(results))

	variance := 0.0
	for _, r := range results {
		d := r.Dps - b.MeanDps
		variance += d * d
	}
	variance /= float64(len(results))
	b.StdDevDps = math.Sqrt(variance)

	return b
}
