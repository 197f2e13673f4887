// Package model describes the signal shape and weakest detectable
// signal strength that the sequential core tests against, grounded on
// original_source/src/gaussian_mean_hypotheses/model.hpp.
package model

import (
	"math"

	"gohyposeq/internal/xerr"
)

// Model is immutable after construction: a Gaussian-mean-shift model
// with constant signal shape s(t) == 1 and a weakest detectable
// alternative signal strength mu1 > 0.
type Model struct {
	weakestSignalStrength float64
}

// New validates and constructs a Model. mu1 must be finite and positive.
func New(weakestSignalStrength float64) (Model, error) {
	if math.IsNaN(weakestSignalStrength) || math.IsInf(weakestSignalStrength, 0) {
		return Model{}, xerr.New(xerr.KindLogic, "weakest signal strength must be finite")
	}
	if weakestSignalStrength <= 0 {
		return Model{}, xerr.New(xerr.KindLogic, "weakest signal strength must be positive")
	}
	return Model{weakestSignalStrength: weakestSignalStrength}, nil
}

// SignalAt returns the signal shape s(t) for observation index t >= 1.
// The Gaussian-mean-hypotheses core uses a constant unit signal; the
// method (rather than a package constant) exists so a future signal
// shape only requires a new Model value, per original_source's member
// function.
func (m Model) SignalAt(t uint64) float64 {
	_ = t
	return 1
}

// WeakestSignalStrength returns mu1, the weakest alternative signal
// strength under which the model is expected to detect a change.
func (m Model) WeakestSignalStrength() float64 {
	return m.weakestSignalStrength
}
