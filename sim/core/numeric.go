package core

import "golang.org/x/exp/constraints"

// Clamp restricts v to [lo, hi]. Mirrors the teacher's use of
// golang.org/x/exp/constraints for small generic numeric helpers
// (sim/core/aura.go imports the same package for its stack/charge
// bookkeeping).
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func MinOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func MaxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
