package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gohyposeq/internal/matrix"
	"gohyposeq/internal/stoppingtime"
	"gohyposeq/internal/xsprt"
)

func output(when uint64, directASPRT, directGSPRT float64) xsprt.Output {
	whenM := matrix.Fill(1, 1, when)
	directA := matrix.Fill(1, 1, directASPRT)
	directG := matrix.Fill(1, 1, directGSPRT)
	zero := matrix.Fill(1, 1, 0.0)
	return xsprt.Output{
		AnticipatedSampleSize: 10,
		WhenStopped: xsprt.Pair[matrix.Matrix[uint64]]{
			ASPRT: whenM,
			GSPRT: whenM,
		},
		DirectErrorIndicator: xsprt.Pair[matrix.Matrix[float64]]{
			ASPRT: directA,
			GSPRT: directG,
		},
		ImportanceErrorIndicator: xsprt.Pair[matrix.Matrix[float64]]{
			ASPRT: zero,
			GSPRT: zero,
		},
	}
}

func TestAggregatorMeanOverReplications(t *testing.T) {
	a := New()
	a.Observe(output(8, 0, 1))
	a.Observe(output(12, 0, 0))
	a.Observe(output(10, 1, 0))

	assert.EqualValues(t, 3, a.Count())
	assert.InDelta(t, 10, a.SampleSize().ASPRT.Mean().At(0, 0), 1e-9)
	assert.InDelta(t, 1.0/3.0, a.DirectError().ASPRT.Mean().At(0, 0), 1e-9)
}

func TestAggregatorMergeAssociative(t *testing.T) {
	replications := []xsprt.Output{
		output(8, 0, 1),
		output(12, 0, 0),
		output(10, 1, 0),
		output(14, 1, 1),
	}

	whole := New()
	for _, r := range replications {
		whole.Observe(r)
	}

	left := New()
	left.Observe(replications[0])
	left.Observe(replications[1])

	right := New()
	right.Observe(replications[2])
	right.Observe(replications[3])

	left.Merge(right)

	assert.Equal(t, whole.Count(), left.Count())
	assert.InDelta(t, whole.SampleSize().ASPRT.Mean().At(0, 0), left.SampleSize().ASPRT.Mean().At(0, 0), 1e-9)
	assert.InDelta(t, whole.SampleSize().ASPRT.Variance().At(0, 0), left.SampleSize().ASPRT.Variance().At(0, 0), 1e-9)
}

func TestAggregatorMergeIntoEmpty(t *testing.T) {
	a := New()
	b := New()
	b.Observe(output(8, 0, 1))

	a.Merge(b)

	assert.EqualValues(t, 1, a.Count())
}

func TestAggregatorVarianceUndefinedBelowTwoObservations(t *testing.T) {
	a := New()
	a.Observe(output(8, 0, 0))

	assert.Zero(t, a.SampleSize().ASPRT.Variance().At(0, 0),
		"variance with one observation is undefined, reported as zero")
}

func TestAggregatorDecisionConstantsUsedConsistently(t *testing.T) {
	// sanity check that the two decision bytes the stoppingtime package
	// defines are distinct: the error indicators compare each cell's
	// decision against one of them as the ground truth.
	assert.NotEqual(t, stoppingtime.DecisionVertical, stoppingtime.DecisionHorizontal)
}
