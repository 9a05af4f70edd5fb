package core

import "math/rand"

// Rand wraps math/rand's algorithmic generator (not crypto/rand): the
// whole point is a reproducible sequence from a given seed, so every
// DamagePipeline roll, proc check, and variance sample in a Simulation
// draws from the one stream threaded in at construction (spec.md §5,
// "same seed, same SimConfig -> byte-identical SimResult").
type Rand struct {
	src *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

func (r *Rand) Float64() float64 { return r.src.Float64() }

func (r *Rand) Int63() int64 { return r.src.Int63() }

// Seeded derives a new independent stream from this one, used when a
// component (e.g. a pet) needs its own deterministic substream without
// perturbing the parent's draw sequence.
func (r *Rand) Seeded() *Rand {
	return NewRand(r.src.Int63())
}
