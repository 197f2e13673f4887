package stoppingtime

import (
	"errors"
	"math"
	"testing"

	"gohyposeq/internal/xerr"
)

func TestNewRejectsEmptyThresholds(t *testing.T) {
	if _, err := New(nil, []float64{1}); err == nil {
		t.Fatal("expected an error for an empty alt threshold vector")
	}
	if _, err := New([]float64{1}, nil); err == nil {
		t.Fatal("expected an error for an empty null threshold vector")
	}
}

func TestNewRejectsUnsortedThresholds(t *testing.T) {
	if _, err := New([]float64{2, 1}, []float64{1, 2}); err == nil {
		t.Fatal("expected an error for a non-sorted alt threshold vector")
	}
}

func TestWhenNeverChangesOnceSet(t *testing.T) {
	p, err := New([]float64{1}, []float64{1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := p.Observe(2, 0, 1); err != nil { // crosses alt at t=1
		t.Fatalf("Observe: %v", err)
	}
	firstWhen := p.When().At(0, 0)
	if firstWhen != 1 {
		t.Fatalf("When() = %d, want 1", firstWhen)
	}

	if err := p.Observe(2, 0, 2); err != nil { // cell already closed; must not move
		t.Fatalf("Observe: %v", err)
	}
	if p.When().At(0, 0) != firstWhen {
		t.Fatalf("When() changed after the cell closed: %d -> %d", firstWhen, p.When().At(0, 0))
	}
}

func TestDecisionRequiresTheThresholdItClaims(t *testing.T) {
	p, err := New([]float64{1, 2}, []float64{1, 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := p.Observe(1.5, 0, 1); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	if p.Which().At(0, 0) != DecisionHorizontal {
		t.Fatalf("cell (0,0) decision = %v, want H", p.Which().At(0, 0))
	}
	if p.Which().At(1, 0) != DecisionNone {
		t.Fatalf("cell (1,0) should still be open (vAlt=1.5 does not exceed A[1]=2)")
	}
}

func TestWhenMonotoneInThresholds(t *testing.T) {
	// Larger thresholds must stop no earlier than smaller ones, for the
	// same decision-value sequence.
	low, err := New([]float64{1}, []float64{1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	high, err := New([]float64{5}, []float64{5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	sequence := []float64{0.5, 1.2, 2.0, 3.5, 4.0, 6.0}
	for idx, v := range sequence {
		step := uint64(idx + 1)
		if err := low.Observe(v, 0, step); err != nil {
			t.Fatalf("low.Observe: %v", err)
		}
		if err := high.Observe(v, 0, step); err != nil {
			t.Fatalf("high.Observe: %v", err)
		}
	}

	lowWhen := low.When().At(0, 0)
	highWhen := high.When().At(0, 0)
	if highWhen != 0 && lowWhen != 0 && highWhen < lowWhen {
		t.Errorf("higher threshold stopped earlier: low=%d high=%d", lowWhen, highWhen)
	}
	if lowWhen == 0 {
		t.Fatal("expected the low-threshold cell to have stopped")
	}
}

func TestPositiveInfiniteThresholdsNeverStop(t *testing.T) {
	p, err := New([]float64{math.Inf(1)}, []float64{math.Inf(1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for step := uint64(1); step <= 1000; step++ {
		if err := p.Observe(1e18, 1e18, step); err != nil {
			t.Fatalf("Observe: %v", err)
		}
	}

	if !p.IsRunning() {
		t.Fatal("a grid with infinite thresholds must never stop")
	}
}

func TestNegativeInfiniteThresholdsStopImmediatelyWithTieBreak(t *testing.T) {
	p, err := New([]float64{math.Inf(-1)}, []float64{math.Inf(-1)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := p.Observe(0, 0, 1); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	if p.IsRunning() {
		t.Fatal("a grid with -Inf thresholds must stop on the first observation")
	}
	if p.When().At(0, 0) != 1 {
		t.Errorf("When() = %d, want 1", p.When().At(0, 0))
	}
	if p.Which().At(0, 0) != DecisionHorizontal {
		t.Errorf("Which() = %v, want H (reject-null wins the tie)", p.Which().At(0, 0))
	}
}

func TestIfStoppedLatchesStatisticForNextObserve(t *testing.T) {
	p, err := New([]float64{1}, []float64{1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	p.IfStopped(42)
	if err := p.Observe(2, 0, 1); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	if got := p.StoppedStatistic().At(0, 0); got != 42 {
		t.Errorf("StoppedStatistic() = %v, want 42", got)
	}
}

func TestObserveRejectsNonIncreasingObservationCount(t *testing.T) {
	p, err := New([]float64{100}, []float64{100})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := p.Observe(0, 0, 5); err != nil {
		t.Fatalf("Observe: %v", err)
	}

	if err := p.Observe(0, 0, 5); !errors.Is(err, xerr.ErrDesynchronized) {
		t.Fatalf("Observe with repeated t: got %v, want ErrDesynchronized", err)
	}

	if err := p.Observe(0, 0, 3); !errors.Is(err, xerr.ErrDesynchronized) {
		t.Fatalf("Observe with decreasing t: got %v, want ErrDesynchronized", err)
	}
}
