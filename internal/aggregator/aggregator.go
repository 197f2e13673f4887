// Package aggregator folds a stream of per-replication xsprt.Output
// values into running mean/variance estimates of expected sample size
// and error probability for each stopping rule, grounded on
// original_source/hypotheses/aggregator.hpp.
package aggregator

import (
	"gohyposeq/internal/xsprt"
)

// Aggregator accumulates three Moment statistics per stopping rule
// (ASPRT, GSPRT): expected sample size (shifted by the configured
// anticipated sample size), direct-simulation error indicator, and
// importance-sampling error indicator. It lazy-initializes its matrix
// shapes and shifts from the first Output it sees, since those are not
// known until a replication actually runs.
type Aggregator struct {
	initialized     bool
	sampleSize      xsprt.Pair[Moment]
	directError     xsprt.Pair[Moment]
	importanceError xsprt.Pair[Moment]
}

// New returns an empty Aggregator, ready to receive Observe calls.
func New() *Aggregator {
	return &Aggregator{}
}

// Observe folds one replication's output into the running statistics.
func (a *Aggregator) Observe(out xsprt.Output) {
	if !a.initialized {
		a.init(out.Height(), out.Width(), out.AnticipatedSampleSize)
	}

	a.sampleSize.ASPRT.ObserveUint64(out.WhenStopped.ASPRT)
	a.sampleSize.GSPRT.ObserveUint64(out.WhenStopped.GSPRT)

	a.directError.ASPRT.ObserveFloat64(out.DirectErrorIndicator.ASPRT)
	a.directError.GSPRT.ObserveFloat64(out.DirectErrorIndicator.GSPRT)

	a.importanceError.ASPRT.ObserveFloat64(out.ImportanceErrorIndicator.ASPRT)
	a.importanceError.GSPRT.ObserveFloat64(out.ImportanceErrorIndicator.GSPRT)
}

func (a *Aggregator) init(height, width int, anticipatedSampleSize float64) {
	a.sampleSize = xsprt.Pair[Moment]{
		ASPRT: NewMoment(height, width, anticipatedSampleSize),
		GSPRT: NewMoment(height, width, anticipatedSampleSize),
	}
	a.directError = xsprt.Pair[Moment]{
		ASPRT: NewMoment(height, width, 0),
		GSPRT: NewMoment(height, width, 0),
	}
	a.importanceError = xsprt.Pair[Moment]{
		ASPRT: NewMoment(height, width, 0),
		GSPRT: NewMoment(height, width, 0),
	}
	a.initialized = true
}

// Merge folds other into a. The merge is commutative and associative,
// so workers may build independent Aggregators over disjoint partitions
// of the replication count and fold them together afterward in any
// order.
func (a *Aggregator) Merge(other *Aggregator) {
	if other == nil || !other.initialized {
		return
	}
	if !a.initialized {
		*a = *other
		return
	}

	a.sampleSize.ASPRT.Merge(other.sampleSize.ASPRT)
	a.sampleSize.GSPRT.Merge(other.sampleSize.GSPRT)

	a.directError.ASPRT.Merge(other.directError.ASPRT)
	a.directError.GSPRT.Merge(other.directError.GSPRT)

	a.importanceError.ASPRT.Merge(other.importanceError.ASPRT)
	a.importanceError.GSPRT.Merge(other.importanceError.GSPRT)
}

// Count returns the number of replications folded in so far.
func (a *Aggregator) Count() uint64 {
	if !a.initialized {
		return 0
	}
	return a.sampleSize.ASPRT.Count()
}

// SampleSize returns the expected-sample-size moment statistics.
func (a *Aggregator) SampleSize() xsprt.Pair[Moment] { return a.sampleSize }

// DirectError returns the direct-simulation error-probability moment
// statistics.
func (a *Aggregator) DirectError() xsprt.Pair[Moment] { return a.directError }

// ImportanceError returns the importance-sampling error-probability
// moment statistics.
func (a *Aggregator) ImportanceError() xsprt.Pair[Moment] { return a.importanceError }
