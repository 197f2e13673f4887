package simulator

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// blockSize matches original_source's simulator.hpp block_size: observations
// are drawn and fed in fixed-size blocks rather than one at a time, to
// amortize the cost of crossing into the statistic on every draw.
const blockSize = 100

// noiseSource is an IID standard-normal variate stream, the black-box
// random-variate source spec.md §1 treats as an external collaborator.
// It is backed by gonum's distuv.Normal, the distribution type the rest
// of the pack already reaches for (internal/analysis/brief uses distuv
// for normality testing) rather than a hand-rolled Box-Muller.
type noiseSource struct {
	dist  distuv.Normal
	count uint64
}

func newNoiseSource() *noiseSource {
	return &noiseSource{
		dist: distuv.Normal{Mu: 0, Sigma: 1, Src: rand.New(rand.NewSource(1))},
	}
}

// Seed re-seeds the underlying stream deterministically.
func (n *noiseSource) Seed(seed int64) {
	n.dist.Src = rand.New(rand.NewSource(seed))
}

// Clear resets the draw count without reseeding.
func (n *noiseSource) Clear() {
	n.count = 0
}

// Count returns the number of values drawn since the last Clear.
func (n *noiseSource) Count() uint64 {
	return n.count
}

// NextBlock fills block with fresh IID N(0,1) draws.
func (n *noiseSource) NextBlock(block []float64) {
	for i := range block {
		block[i] = n.dist.Rand()
	}
	n.count += uint64(len(block))
}
