// Package xsprt implements the incremental sequential statistic that
// drives two stopping rules — Adaptive SPRT (ASPRT) and Generalized
// SPRT (GSPRT) — from a shared set of running sufficient statistics,
// grounded on original_source/src/gaussian_mean_hypotheses/xsprt.hpp.
package xsprt

import (
	"math"

	"gohyposeq/internal/matrix"
	"gohyposeq/internal/model"
	"gohyposeq/internal/numeric"
	"gohyposeq/internal/stoppingtime"
	"gohyposeq/internal/xerr"
)

// maxImportanceExponent bounds the argument to math.Exp in
// importanceErrorIndicator: a stopped change-of-measure statistic far
// below zero would otherwise overflow the re-weighting to +Inf.
// math.Exp(x) overflows float64 once x exceeds roughly 709.78.
const maxImportanceExponent = 700

// Pair holds one value per stopping rule.
type Pair[T any] struct {
	ASPRT T
	GSPRT T
}

// Thresholds is the (alt, null) pair of sorted threshold vectors handed
// to one of the two ParallelStoppingTime children.
type Thresholds struct {
	Alt  []float64
	Null []float64
}

// Output is the per-replication result XSPRT hands to the Aggregator.
type Output struct {
	AnticipatedSampleSize    float64
	WhenStopped              Pair[matrix.Matrix[uint64]]
	DirectErrorIndicator     Pair[matrix.Matrix[float64]]
	ImportanceErrorIndicator Pair[matrix.Matrix[float64]]
}

func (o Output) Height() int { return o.WhenStopped.ASPRT.Height() }
func (o Output) Width() int  { return o.WhenStopped.ASPRT.Width() }

// XSPRT maintains the running sufficient statistics shared by ASPRT and
// GSPRT, and wraps one ParallelStoppingTime child per rule.
type XSPRT struct {
	model model.Model
	count uint64
	state state

	asprt *stoppingtime.ParallelStoppingTime
	gsprt *stoppingtime.ParallelStoppingTime

	simulatedSignalStrength       float64
	changeOfMeasureSignalStrength float64
	anticipatedSampleSize         float64
}

// New constructs an XSPRT instance. simulatedSignalStrength is the
// signal strength used to generate observations (mu_sim);
// changeOfMeasureSignalStrength is the alternative measure used for
// importance-sampling re-weighting (mu_cm).
func New(
	m model.Model,
	asprtThresholds, gsprtThresholds Thresholds,
	simulatedSignalStrength, changeOfMeasureSignalStrength, anticipatedSampleSize float64,
) (*XSPRT, error) {
	asprt, err := stoppingtime.New(asprtThresholds.Alt, asprtThresholds.Null)
	if err != nil {
		return nil, err
	}
	gsprt, err := stoppingtime.New(gsprtThresholds.Alt, gsprtThresholds.Null)
	if err != nil {
		return nil, err
	}

	return &XSPRT{
		model:                         m,
		asprt:                         asprt,
		gsprt:                         gsprt,
		simulatedSignalStrength:       simulatedSignalStrength,
		changeOfMeasureSignalStrength: changeOfMeasureSignalStrength,
		anticipatedSampleSize:         anticipatedSampleSize,
	}, nil
}

// Model returns the underlying model.
func (x *XSPRT) Model() model.Model { return x.model }

// SimulatedSignalStrength returns mu_sim.
func (x *XSPRT) SimulatedSignalStrength() float64 { return x.simulatedSignalStrength }

// ChangeOfMeasureSignalStrength returns mu_cm.
func (x *XSPRT) ChangeOfMeasureSignalStrength() float64 { return x.changeOfMeasureSignalStrength }

// AnticipatedSampleSize returns the shift used to stabilize the
// sample-size moment statistic in the Aggregator.
func (x *XSPRT) AnticipatedSampleSize() float64 { return x.anticipatedSampleSize }

// IsRunning reports whether either child stopping time is still open.
func (x *XSPRT) IsRunning() bool {
	return x.asprt.IsRunning() || x.gsprt.IsRunning()
}

// Reset clears all running state, returning the statistic to its
// just-constructed condition.
func (x *XSPRT) Reset() {
	x.count = 0
	x.state = state{}
	x.asprt.Reset()
	x.gsprt.Reset()
}

// Observe folds one new observation into the running statistics and
// delegates the resulting decision values to both child stopping
// times. x must be called in strict observation order.
func (x *XSPRT) Observe(observation float64) error {
	x.count++
	t := x.count
	s := x.model.SignalAt(t)

	x.state.sumSignalTimesObservation += s * observation
	x.state.sumSignalSquared += s * s

	unconstrained := 0.0
	if x.state.sumSignalSquared != 0 {
		unconstrained = x.state.sumSignalTimesObservation / x.state.sumSignalSquared
	}
	if unconstrained < 0 {
		unconstrained = 0
	}

	constrainedAlt := unconstrained
	if constrainedAlt < x.model.WeakestSignalStrength() {
		constrainedAlt = x.model.WeakestSignalStrength()
	}

	if t == 1 {
		y := constrainedAlt * s
		x.state.initNull = 0
		x.state.initAlt = y * (observation - y/2)
	} else {
		y := x.state.delayedMuHat * s
		x.state.sumAdaptive += y * (observation - y/2)
	}

	changeOfMeasure := x.state.logLikelihoodRatio(x.simulatedSignalStrength, x.changeOfMeasureSignalStrength)
	x.asprt.IfStopped(changeOfMeasure)
	x.gsprt.IfStopped(changeOfMeasure)

	adaptiveNull := x.state.initNull + x.state.sumAdaptive
	adaptiveAlt := x.state.initAlt + x.state.sumAdaptive + x.state.logLikelihoodRatio(0, constrainedAlt)
	if err := checkFinite(adaptiveNull, adaptiveAlt); err != nil {
		return err
	}
	if err := x.asprt.Observe(adaptiveAlt, adaptiveNull, t); err != nil {
		return err
	}

	generalizedNull := x.state.logLikelihoodRatio(unconstrained, 0)
	generalizedAlt := x.state.logLikelihoodRatio(unconstrained, constrainedAlt)
	if err := checkFinite(generalizedNull, generalizedAlt); err != nil {
		return err
	}
	if err := x.gsprt.Observe(generalizedAlt, generalizedNull, t); err != nil {
		return err
	}

	x.state.delayedMuHat = unconstrained
	return nil
}

func checkFinite(values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return xerr.NonFinite("decision value became non-finite")
		}
	}
	return nil
}

// truth returns the ground-truth decision for a given signal strength,
// under the simulation convention that only mu_sim in {0, mu1} is ever
// used (the "ambiguous zone" in between is omitted by construction).
func (x *XSPRT) truth(signalStrength float64) byte {
	if signalStrength == 0 {
		return stoppingtime.DecisionVertical
	}
	if signalStrength >= x.model.WeakestSignalStrength() {
		return stoppingtime.DecisionHorizontal
	}
	return stoppingtime.DecisionNone
}

func directErrorIndicator(which matrix.Matrix[byte], correct byte) matrix.Matrix[float64] {
	return matrix.Generate(which.Height(), which.Width(), func(i, j int) float64 {
		if which.At(i, j) == correct {
			return 0
		}
		return 1
	})
}

func importanceErrorIndicator(which matrix.Matrix[byte], stoppedStatistic matrix.Matrix[float64], correct byte) matrix.Matrix[float64] {
	return matrix.Generate(which.Height(), which.Width(), func(i, j int) float64 {
		if which.At(i, j) == correct {
			return 0
		}
		exponent := -stoppedStatistic.At(i, j)
		numeric.WasBelow(&exponent, maxImportanceExponent)
		return math.Exp(exponent)
	})
}

// Output snapshots the current state of both stopping times into a
// SimulationOutput.
func (x *XSPRT) Output() Output {
	directTruth := x.truth(x.simulatedSignalStrength)
	importanceTruth := x.truth(x.changeOfMeasureSignalStrength)

	return Output{
		AnticipatedSampleSize: x.anticipatedSampleSize,
		WhenStopped: Pair[matrix.Matrix[uint64]]{
			ASPRT: x.asprt.When(),
			GSPRT: x.gsprt.When(),
		},
		DirectErrorIndicator: Pair[matrix.Matrix[float64]]{
			ASPRT: directErrorIndicator(x.asprt.Which(), directTruth),
			GSPRT: directErrorIndicator(x.gsprt.Which(), directTruth),
		},
		ImportanceErrorIndicator: Pair[matrix.Matrix[float64]]{
			ASPRT: importanceErrorIndicator(x.asprt.Which(), x.asprt.StoppedStatistic(), importanceTruth),
			GSPRT: importanceErrorIndicator(x.gsprt.Which(), x.gsprt.StoppedStatistic(), importanceTruth),
		},
	}
}
