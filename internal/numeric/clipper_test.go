package numeric

import (
	"math"
	"testing"
)

func TestWasFiniteReplacesNaNAndInf(t *testing.T) {
	v := math.NaN()
	if WasFinite(&v, 7) {
		t.Fatal("WasFinite(NaN) should report false")
	}
	if v != 7 {
		t.Errorf("v = %v, want fallback 7", v)
	}

	v = math.Inf(1)
	if WasFinite(&v, -1) {
		t.Fatal("WasFinite(+Inf) should report false")
	}
	if v != -1 {
		t.Errorf("v = %v, want fallback -1", v)
	}

	v = 3.5
	if !WasFinite(&v, 0) {
		t.Fatal("WasFinite(3.5) should report true")
	}
	if v != 3.5 {
		t.Errorf("v = %v, want unchanged 3.5", v)
	}
}

func TestWasBelowClipsAboveUpperBound(t *testing.T) {
	v := 10.0
	if WasBelow(&v, 5.0) {
		t.Fatal("WasBelow(10, upper=5) should report false")
	}
	if v != 5.0 {
		t.Errorf("v = %v, want clipped to 5", v)
	}

	v = 3.0
	if !WasBelow(&v, 5.0) {
		t.Fatal("WasBelow(3, upper=5) should report true")
	}
	if v != 3.0 {
		t.Errorf("v = %v, want unchanged 3", v)
	}
}

func TestWasAboveClipsBelowLowerBound(t *testing.T) {
	v := -10.0
	if WasAbove(&v, -5.0) {
		t.Fatal("WasAbove(-10, lower=-5) should report false")
	}
	if v != -5.0 {
		t.Errorf("v = %v, want clipped to -5", v)
	}

	v = 0.0
	if !WasAbove(&v, -5.0) {
		t.Fatal("WasAbove(0, lower=-5) should report true")
	}
}

func TestWasBetweenClipsBothSides(t *testing.T) {
	v := 100.0
	if WasBetween(&v, 0, 10) {
		t.Fatal("WasBetween(100, [0,10]) should report false")
	}
	if v != 10 {
		t.Errorf("v = %v, want clipped to upper bound 10", v)
	}

	v = -100.0
	if WasBetween(&v, 0, 10) {
		t.Fatal("WasBetween(-100, [0,10]) should report false")
	}
	if v != 0 {
		t.Errorf("v = %v, want clipped to lower bound 0", v)
	}

	v = 5.0
	if !WasBetween(&v, 0, 10) {
		t.Fatal("WasBetween(5, [0,10]) should report true")
	}
	if v != 5 {
		t.Errorf("v = %v, want unchanged 5", v)
	}
}
