// Package simulator owns one noise source and one XSPRT statistic and
// runs replications to stopping, grounded on
// original_source/src/gaussian_mean_hypotheses/simulator.hpp.
package simulator

import (
	"gohyposeq/internal/model"
	"gohyposeq/internal/xsprt"
)

// Config describes the fixed parameters of every replication a
// Simulator runs: the model, both stopping-rule threshold grids, the
// simulated and change-of-measure signal strengths, and the
// variance-stabilizing shift handed through to the Aggregator.
type Config struct {
	Model                         model.Model
	ASPRTThresholds               xsprt.Thresholds
	GSPRTThresholds               xsprt.Thresholds
	SimulatedSignalStrength       float64
	ChangeOfMeasureSignalStrength float64
	AnticipatedSampleSize         float64
}

// Simulator is not thread-safe; each worker owns one.
type Simulator struct {
	cfg       Config
	statistic *xsprt.XSPRT
	noise     *noiseSource
}

// New constructs a Simulator from cfg.
func New(cfg Config) (*Simulator, error) {
	statistic, err := xsprt.New(
		cfg.Model,
		cfg.ASPRTThresholds, cfg.GSPRTThresholds,
		cfg.SimulatedSignalStrength, cfg.ChangeOfMeasureSignalStrength,
		cfg.AnticipatedSampleSize,
	)
	if err != nil {
		return nil, err
	}
	return &Simulator{
		cfg:       cfg,
		statistic: statistic,
		noise:     newNoiseSource(),
	}, nil
}

// Seed re-seeds the driving noise process deterministically.
func (s *Simulator) Seed(seed int64) {
	s.noise.Seed(seed)
}

// RunOnce runs one replication to stopping and returns its output.
func (s *Simulator) RunOnce() (xsprt.Output, error) {
	s.noise.Clear()
	s.statistic.Reset()

	block := make([]float64, blockSize)
	for s.statistic.IsRunning() {
		t := s.noise.Count()
		s.noise.NextBlock(block)
		for i := range block {
			t++
			block[i] += s.cfg.SimulatedSignalStrength * s.cfg.Model.SignalAt(t)
		}
		for _, x := range block {
			if err := s.statistic.Observe(x); err != nil {
				return xsprt.Output{}, err
			}
		}
	}

	return s.statistic.Output(), nil
}
