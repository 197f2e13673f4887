package config

import (
	"math"
	"testing"
)

func TestSpacingLinearEndpointsExact(t *testing.T) {
	s := Spacing{Type: spacingLinear, From: 1, To: 10, Count: 5}
	points := s.Explode()
	if len(points) != 5 {
		t.Fatalf("len(points) = %d, want 5", len(points))
	}
	if points[0] != 1 {
		t.Errorf("first point = %v, want 1", points[0])
	}
	if points[len(points)-1] != 10 {
		t.Errorf("last point = %v, want 10", points[len(points)-1])
	}
}

func TestSpacingLinearSingleCount(t *testing.T) {
	s := Spacing{Type: spacingLinear, From: 3, To: 7, Count: 1}
	points := s.Explode()
	if len(points) != 1 || points[0] != 3 {
		t.Fatalf("single-count grid = %v, want [3]", points)
	}
}

func TestSpacingLogarithmicEndpointsExact(t *testing.T) {
	s := Spacing{Type: spacingLogarithmic, From: 1, To: 1000, Count: 4}
	points := s.Explode()
	if math.Abs(points[0]-1) > 1e-9 {
		t.Errorf("first point = %v, want 1", points[0])
	}
	if math.Abs(points[len(points)-1]-1000) > 1e-6 {
		t.Errorf("last point = %v, want 1000", points[len(points)-1])
	}
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			t.Fatalf("logarithmic grid not increasing at %d: %v", i, points)
		}
	}
}

func TestSpacingExponentialEndpointsExact(t *testing.T) {
	s := Spacing{Type: spacingExponential, From: 1, To: 100, Count: 6}
	points := s.Explode()
	if math.Abs(points[0]-1) > 1e-9 {
		t.Errorf("first point = %v, want 1", points[0])
	}
	if math.Abs(points[len(points)-1]-100) > 1e-6 {
		t.Errorf("last point = %v, want 100", points[len(points)-1])
	}
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			t.Fatalf("exponential grid not increasing at %d: %v", i, points)
		}
	}
}

func TestSpacingValidateRejectsDecreasingBounds(t *testing.T) {
	s := Spacing{Type: spacingLinear, From: 10, To: 1, Count: 3}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for from > to")
	}
}

func TestSpacingValidateRejectsZeroCount(t *testing.T) {
	s := Spacing{Type: spacingLinear, From: 0, To: 1, Count: 0}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for count < 1")
	}
}

func TestSpacingValidateRejectsNonPositiveFromForLogarithmic(t *testing.T) {
	s := Spacing{Type: spacingLogarithmic, From: 0, To: 10, Count: 3}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for non-positive 'from' under logarithmic spacing")
	}
}

func TestSpacingValidateRejectsUnknownType(t *testing.T) {
	s := Spacing{Type: "quadratic", From: 0, To: 1, Count: 3}
	if err := s.Validate(); err == nil {
		t.Fatal("expected error for unrecognized spacing type")
	}
}
