package xsprt

// state holds the running sufficient statistics shared between the
// ASPRT and GSPRT decision streams, grounded on
// original_source/src/gaussian_mean_hypotheses/xsprt.hpp's xsprt_state.
type state struct {
	sumSignalTimesObservation float64 // sum_sy
	sumSignalSquared          float64 // sum_ss
	sumAdaptive               float64 // sum_adaptive, accumulated from t>=2
	initNull                  float64 // one-shot term fixed at t=1
	initAlt                   float64 // one-shot term fixed at t=1
	delayedMuHat              float64 // mu-hat from the previous step
}

// logLikelihoodRatio computes L(a, b) = (a-b) * (sum_sy - ((a+b)/2) * sum_ss),
// the log-likelihood ratio kernel between two candidate signal strengths.
func (s state) logLikelihoodRatio(a, b float64) float64 {
	delta := a - b
	mean := (a + b) / 2
	return delta * (s.sumSignalTimesObservation - mean*s.sumSignalSquared)
}
