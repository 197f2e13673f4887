// Package montecarlo runs many independent simulator replications across
// a fixed-size worker pool and reduces their outputs into one Aggregator,
// grounded on original_source/src/gaussian_mean_hypotheses/main.cpp's
// program::execute, which seeds count_threads simulators off one
// seed_seq derived from fixed salts plus a time-based seed.
package montecarlo

import (
	"context"

	"golang.org/x/sync/errgroup"

	"gohyposeq/internal/aggregator"
	"gohyposeq/internal/simulator"
)

// masterSalts mirrors main.cpp's std::seed_seq main_sequence{1, 1, 2, 3,
// 5, 8, 1729, time_seed}.
var masterSalts = []int64{1, 1, 2, 3, 5, 8, 1729}

// workerSalts mirrors main.cpp's per-worker std::seed_seq
// threaded_sequence{1, 7, 2, 9, draw1, draw2}.
var workerSalts = []int64{1, 7, 2, 9}

// mix combines a sequence of salts into one deterministic seed, standing
// in for std::seed_seq's mixing step.
func mix(salts ...int64) int64 {
	var h int64 = 14695981039346656037 >> 1 // FNV-1 64-bit offset basis, halved to fit in int64
	for _, s := range salts {
		h ^= s
		h *= 1099511628211
	}
	if h < 0 {
		h = -h
	}
	return h
}

// DeriveSeeds produces one deterministic per-worker seed from a
// time-based (or test-fixed) seed, by first mixing the fixed master
// salts with timeSeed into a master seed, then drawing two int63 values
// from a master-seeded source per worker and mixing those with the fixed
// worker salts. Two runs given the same timeSeed and workerCount produce
// identical seed sequences.
func DeriveSeeds(timeSeed int64, workerCount int) []int64 {
	master := mix(append(append([]int64{}, masterSalts...), timeSeed)...)
	source := newSplitMix(master)

	seeds := make([]int64, workerCount)
	for i := range seeds {
		draw1 := source.next()
		draw2 := source.next()
		seeds[i] = mix(append(append([]int64{}, workerSalts...), draw1, draw2)...)
	}
	return seeds
}

// splitMix is a minimal deterministic 64-bit generator used only to
// derive per-worker seeds from the master seed; it is not used as the
// noise source itself (that is gonum's distuv.Normal).
type splitMix struct{ state uint64 }

func newSplitMix(seed int64) *splitMix { return &splitMix{state: uint64(seed)} }

func (s *splitMix) next() int64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return int64(z & 0x7FFFFFFFFFFFFFFF)
}

// Config describes one Monte-Carlo run: how many replications to
// execute, how many workers to spread them across, and the time-based
// seed that, combined with the fixed salts above, makes the whole run
// reproducible.
type Config struct {
	Replications int
	Workers      int
	TimeSeed     int64
}

// Run partitions cfg.Replications as evenly as possible across
// cfg.Workers goroutines, each driving its own Simulator built by
// newSimulator, and reduces their per-worker Aggregators into one. The
// reduction order is irrelevant: Aggregator.Merge is commutative and
// associative, so the result does not depend on goroutine scheduling.
func Run(ctx context.Context, cfg Config, newSimulator func() (*simulator.Simulator, error)) (*aggregator.Aggregator, error) {
	seeds := DeriveSeeds(cfg.TimeSeed, cfg.Workers)
	shares := partition(cfg.Replications, cfg.Workers)

	partials := make([]*aggregator.Aggregator, cfg.Workers)
	g, ctx := errgroup.WithContext(ctx)

	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			sim, err := newSimulator()
			if err != nil {
				return err
			}
			sim.Seed(seeds[w])

			local := aggregator.New()
			for i := 0; i < shares[w]; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out, err := sim.RunOnce()
				if err != nil {
					return err
				}
				local.Observe(out)
			}
			partials[w] = local
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := aggregator.New()
	for _, p := range partials {
		total.Merge(p)
	}
	return total, nil
}

// partition splits n as evenly as possible across k buckets; the first
// n%k buckets get one extra item.
func partition(n, k int) []int {
	shares := make([]int, k)
	base := n / k
	remainder := n % k
	for i := range shares {
		shares[i] = base
		if i < remainder {
			shares[i]++
		}
	}
	return shares
}
