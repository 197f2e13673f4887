package config

import (
	"fmt"
	"math"
)

// Spacing describes a 1-D threshold grid generator, grounded on
// original_source/src/gaussian_mean_hypotheses/config.hpp's
// vector_initializer_t<linear_spacing, logarithmic_spacing,
// exponential_spacing>. Go has no std::variant; a flat struct
// discriminated by Type plays the same role and unmarshals directly
// from the config JSON's spacing objects.
type Spacing struct {
	Type  string  `json:"type"`
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

const (
	spacingLinear      = "linear"
	spacingLogarithmic = "logarithmic"
	spacingExponential = "exponential"
)

// Validate checks the invariants spec.md requires of every spacing
// object: from <= to, and count >= 1.
func (s Spacing) Validate() error {
	if math.IsNaN(s.From) || math.IsNaN(s.To) {
		return fmt.Errorf("spacing bounds must not be NaN")
	}
	if s.From > s.To {
		return fmt.Errorf("spacing 'from' (%v) must not exceed 'to' (%v)", s.From, s.To)
	}
	if s.Count < 1 {
		return fmt.Errorf("spacing 'count' must be >= 1, got %d", s.Count)
	}
	switch s.Type {
	case spacingLinear, spacingLogarithmic, spacingExponential:
	default:
		return fmt.Errorf("unrecognized spacing type %q", s.Type)
	}
	if (s.Type == spacingLogarithmic || s.Type == spacingExponential) && s.From <= 0 {
		return fmt.Errorf("%s spacing requires a strictly positive 'from', got %v", s.Type, s.From)
	}
	return nil
}

// Explode materializes the grid: count points spanning [From, To]. For
// count == 1 the single point is From. For count >= 2, both endpoints
// are included exactly, matching spec.md's explicit invariant.
func (s Spacing) Explode() []float64 {
	if s.Count == 1 {
		return []float64{s.From}
	}

	points := make([]float64, s.Count)
	step := 1.0 / float64(s.Count-1)

	switch s.Type {
	case spacingLogarithmic:
		// N points with log10 spacing: log10(value) is linear between
		// log10(from) and log10(to).
		lo, hi := math.Log10(s.From), math.Log10(s.To)
		for i := range points {
			u := float64(i) * step
			points[i] = math.Pow(10, lo+u*(hi-lo))
		}
	case spacingExponential:
		// N points with 10^x inverse spacing: a linear fraction u in
		// [0, 1] is warped through 10^u (normalized back to [0, 1])
		// before being mapped onto [from, to], bunching points toward
		// 'from'.
		for i := range points {
			u := float64(i) * step
			warped := (math.Pow(10, u) - 1) / 9
			points[i] = s.From + warped*(s.To-s.From)
		}
	default: // spacingLinear
		for i := range points {
			u := float64(i) * step
			points[i] = s.From + u*(s.To-s.From)
		}
	}

	points[len(points)-1] = s.To
	return points
}
