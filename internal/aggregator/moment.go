package aggregator

import "gohyposeq/internal/matrix"

// Moment is a numerically-stable mean/variance accumulator over an m x n
// grid, grounded on original_source/hypotheses/moment_statistic.hpp: it
// tracks count, running sum, and the sum of squared deviations from a
// fixed shift (an anticipated value), so that cells whose true mean sits
// near the shift accumulate a smaller sum of squares than a naive
// sum-of-x-squared accumulator would.
type Moment struct {
	count   uint64
	shift   matrix.Matrix[float64]
	sum     matrix.Matrix[float64]
	sumShSq matrix.Matrix[float64] // sum((x - shift)^2)
}

// NewMoment allocates a height x width accumulator shifted by shift.
func NewMoment(height, width int, shift float64) Moment {
	return Moment{
		shift:   matrix.Fill(height, width, shift),
		sum:     matrix.New[float64](height, width),
		sumShSq: matrix.New[float64](height, width),
	}
}

// Count returns the number of observations folded in so far.
func (m Moment) Count() uint64 { return m.count }

// ObserveFloat64 folds a float64-valued matrix into the accumulator.
func (m *Moment) ObserveFloat64(value matrix.Matrix[float64]) {
	m.observe(value.Height(), value.Width(), value.At)
}

// ObserveUint64 folds a uint64-valued matrix into the accumulator.
func (m *Moment) ObserveUint64(value matrix.Matrix[uint64]) {
	m.observe(value.Height(), value.Width(), func(i, j int) float64 {
		return float64(value.At(i, j))
	})
}

func (m *Moment) observe(h, w int, at func(i, j int) float64) {
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			x := at(i, j)
			d := x - m.shift.At(i, j)
			m.sum.Set(i, j, m.sum.At(i, j)+x)
			m.sumShSq.Set(i, j, m.sumShSq.At(i, j)+d*d)
		}
	}
	m.count++
}

// Merge folds another accumulator into m. Both must share shape and
// shift (guaranteed since every worker's Aggregator is initialized from
// the same config); the merge is purely associative addition of counts,
// sums, and shifted sums of squares.
func (m *Moment) Merge(other Moment) {
	h, w := other.sum.Height(), other.sum.Width()
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			m.sum.Set(i, j, m.sum.At(i, j)+other.sum.At(i, j))
			m.sumShSq.Set(i, j, m.sumShSq.At(i, j)+other.sumShSq.At(i, j))
		}
	}
	m.count += other.count
}

// Mean returns the element-wise sample mean.
func (m Moment) Mean() matrix.Matrix[float64] {
	if m.count == 0 {
		return m.sum
	}
	n := float64(m.count)
	return matrix.Map(m.sum, func(s float64) float64 { return s / n })
}

// Variance returns the element-wise unbiased sample variance:
// (sum_shifted_sq - n*(mean-shift)^2) / (n-1).
func (m Moment) Variance() matrix.Matrix[float64] {
	h, w := m.sum.Height(), m.sum.Width()
	if m.count < 2 {
		return matrix.New[float64](h, w)
	}
	n := float64(m.count)
	return matrix.Generate(h, w, func(i, j int) float64 {
		mean := m.sum.At(i, j) / n
		centered := mean - m.shift.At(i, j)
		v := m.sumShSq.At(i, j) - n*centered*centered
		return v / (n - 1)
	})
}
