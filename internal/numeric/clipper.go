// Package numeric implements small defensive clipping guards, grounded
// on original_source/src/draft/algebra/clipper.hpp's clipper<T>.
package numeric

import "math"

// Float is the set of types the clipping guards operate on.
type Float interface {
	~float32 | ~float64
}

// WasFinite replaces *value with fallback if it is NaN or infinite,
// reporting whether the original value was already finite.
func WasFinite[T Float](value *T, fallback T) bool {
	if v := float64(*value); math.IsNaN(v) || math.IsInf(v, 0) {
		*value = fallback
		return false
	}
	return true
}

// WasBelow clips *value down to upperBound if it exceeds it, reporting
// whether the original value was already within bound.
func WasBelow[T Float](value *T, upperBound T) bool {
	if *value > upperBound {
		*value = upperBound
		return false
	}
	return true
}

// WasAbove clips *value up to lowerBound if it falls short of it,
// reporting whether the original value was already within bound.
func WasAbove[T Float](value *T, lowerBound T) bool {
	if *value < lowerBound {
		*value = lowerBound
		return false
	}
	return true
}

// WasBetween clips *value into [lowerBound, upperBound]. It checks
// WasAbove first and returns immediately if that clips, without also
// checking WasBelow: a value already raised to lowerBound can't still
// exceed upperBound when lowerBound <= upperBound.
func WasBetween[T Float](value *T, lowerBound, upperBound T) bool {
	if !WasAbove(value, lowerBound) {
		return false
	}
	if !WasBelow(value, upperBound) {
		return false
	}
	return true
}
