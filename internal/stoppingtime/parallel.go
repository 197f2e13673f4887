// Package stoppingtime implements the parallel stopping-time grid that
// XSPRT drives: given a pair of decision values per observation, it
// evaluates an m x n grid of (alt-threshold, null-threshold) pairs and
// records, per cell, when and which boundary was crossed first.
//
// Grounded on original_source/hypotheses/two_sprt.hpp's threshold-matrix
// bookkeeping (have_crossed_null/have_crossed_alt/counts, sorted and
// independently-paired thresholds, first-uncrossed-index frontier) and
// spec.md §4.3/§3's ParallelStoppingTime description; the CRTP-based
// static polymorphism in two_sprt.hpp is deliberately not replicated —
// see DESIGN.md.
package stoppingtime

import (
	"fmt"

	"gohyposeq/internal/matrix"
	"gohyposeq/internal/xerr"
)

// Decision values stored in the `which` matrix.
const (
	DecisionNone       byte = 0
	DecisionVertical   byte = 'V' // accept null
	DecisionHorizontal byte = 'H' // reject null, decide alt
)

// ParallelStoppingTime owns an m x n grid of cells: m alt-side
// thresholds (A) crossed by a shared v_alt value, n null-side
// thresholds (B) crossed by a shared v_null value. A cell decides 'H'
// when v_alt > A[i], and 'V' when v_null > B[j]; 'H' wins on a tie.
type ParallelStoppingTime struct {
	altThresholds  []float64 // A, length m, sorted non-decreasing
	nullThresholds []float64 // B, length n, sorted non-decreasing

	which            matrix.Matrix[byte]
	when             matrix.Matrix[uint64]
	stoppedStatistic matrix.Matrix[float64]

	firstOpen []int // per-row frontier: smallest column that may still be open
	openCount int

	pendingStatistic float64
	lastT            uint64 // observation count passed to the previous Observe call
}

// New validates the threshold vectors and constructs a stopping time
// over the resulting |altThresholds| x |nullThresholds| grid. Thresholds
// must be non-decreasing and each vector must have at least one entry;
// they need not be finite (an all-infinite grid is a valid boundary
// case exercised by tests).
func New(altThresholds, nullThresholds []float64) (*ParallelStoppingTime, error) {
	if len(altThresholds) == 0 {
		return nil, xerr.InvalidThresholds("alt threshold vector must be non-empty")
	}
	if len(nullThresholds) == 0 {
		return nil, xerr.InvalidThresholds("null threshold vector must be non-empty")
	}
	if !isNonDecreasing(altThresholds) {
		return nil, xerr.InvalidThresholds("alt thresholds must be sorted non-decreasing")
	}
	if !isNonDecreasing(nullThresholds) {
		return nil, xerr.InvalidThresholds("null thresholds must be sorted non-decreasing")
	}

	p := &ParallelStoppingTime{
		altThresholds:  append([]float64(nil), altThresholds...),
		nullThresholds: append([]float64(nil), nullThresholds...),
	}
	p.Reset()
	return p, nil
}

func isNonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}

// Reset clears all decisions, returning the grid to fully-running state.
func (p *ParallelStoppingTime) Reset() {
	m := len(p.altThresholds)
	n := len(p.nullThresholds)

	p.which = matrix.New[byte](m, n)
	p.when = matrix.New[uint64](m, n)
	p.stoppedStatistic = matrix.New[float64](m, n)
	p.firstOpen = make([]int, m)
	p.openCount = m * n
	p.pendingStatistic = 0
	p.lastT = 0
}

// IsRunning reports whether at least one cell is still undecided.
func (p *ParallelStoppingTime) IsRunning() bool {
	return p.openCount > 0
}

// IfStopped latches the change-of-measure statistic C to be recorded
// against every cell that crosses on the next call to Observe. The
// caller must invoke this before Observe at the same step, so the
// latched value matches the step at which a cell's crossing occurs.
func (p *ParallelStoppingTime) IfStopped(changeOfMeasure float64) {
	p.pendingStatistic = changeOfMeasure
}

// Observe evaluates every still-open cell against the shared decision
// values (vAlt, vNull) at observation count t, recording crossings. It
// is a no-op once IsRunning is false. t must strictly increase from
// one call to the next; a non-increasing t indicates the caller has
// desynchronized the stopping time from the statistic driving it, and
// Observe returns xerr.Desynchronized instead of recording anything.
func (p *ParallelStoppingTime) Observe(vAlt, vNull float64, t uint64) error {
	if !p.IsRunning() {
		return nil
	}
	if t <= p.lastT {
		return xerr.Desynchronized(fmt.Sprintf("observation count did not increase: last=%d, got=%d", p.lastT, t))
	}
	p.lastT = t

	n := len(p.nullThresholds)
	for i, a := range p.altThresholds {
		crossAlt := vAlt > a
		j := p.firstOpen[i]
		for j < n {
			crossNull := vNull > p.nullThresholds[j]
			if !crossAlt && !crossNull {
				// Thresholds are sorted: since this column didn't cross,
				// no higher column (higher B) can cross this step either.
				break
			}

			decision := DecisionVertical
			if crossAlt {
				decision = DecisionHorizontal // tie-break: reject-null wins
			}
			p.which.Set(i, j, decision)
			p.when.Set(i, j, t)
			p.stoppedStatistic.Set(i, j, p.pendingStatistic)
			p.openCount--
			j++
		}
		p.firstOpen[i] = j
	}
	return nil
}

func (p *ParallelStoppingTime) Which() matrix.Matrix[byte]             { return p.which }
func (p *ParallelStoppingTime) When() matrix.Matrix[uint64]            { return p.when }
func (p *ParallelStoppingTime) StoppedStatistic() matrix.Matrix[float64] { return p.stoppedStatistic }

func (p *ParallelStoppingTime) AltThresholds() []float64  { return p.altThresholds }
func (p *ParallelStoppingTime) NullThresholds() []float64 { return p.nullThresholds }
