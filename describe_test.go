package meanlaw

import (
	"errors"
	"math"
	"testing"
)

func TestDescribe_KnownValues(t *testing.T) {
	s, err := Describe([]float64{5, 3, 1, 4, 2})
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	if s.N != 5 {
		t.Errorf("N = %d, want 5", s.N)
	}
	if s.Sum != 15 {
		t.Errorf("Sum = %v, want 15", s.Sum)
	}
	if math.Abs(s.Mean-3) > 1e-12 {
		t.Errorf("Mean = %v, want 3", s.Mean)
	}
	if s.Min != 1 || s.Max != 5 {
		t.Errorf("Min/Max = %v/%v, want 1/5", s.Min, s.Max)
	}
	if s.Median != 3 {
		t.Errorf("Median = %v, want 3", s.Median)
	}
	if math.Abs(s.Variance-2.5) > 1e-12 {
		t.Errorf("Variance = %v, want 2.5", s.Variance)
	}
	if math.Abs(s.StdDev-math.Sqrt(2.5)) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, math.Sqrt(2.5))
	}

	t.Logf("✓ {1..5}: mean %.4f, median %.4f, std dev %.4f", s.Mean, s.Median, s.StdDev)
}

func TestDescribe_QuantileLadderOrdered(t *testing.T) {
	pop := twoPeriodPopulation(t, 1000)
	s, err := DescribeField(pop.Individuals, FieldNeed(1))
	if err != nil {
		t.Fatalf("DescribeField failed: %v", err)
	}

	ladder := []struct {
		label string
		value float64
	}{
		{"min", s.Min}, {"p1", s.P1}, {"p5", s.P5}, {"p25", s.P25},
		{"median", s.Median}, {"p75", s.P75}, {"p95", s.P95},
		{"p99", s.P99}, {"max", s.Max},
	}
	for i := 1; i < len(ladder); i++ {
		if ladder[i-1].value > ladder[i].value {
			t.Errorf("Quantile ladder inverted: %s (%.4f) > %s (%.4f)",
				ladder[i-1].label, ladder[i-1].value, ladder[i].label, ladder[i].value)
		}
	}

	if s.N != 1000 {
		t.Errorf("N = %d, want 1000", s.N)
	}
	if s.Mean < s.Min || s.Mean > s.Max {
		t.Errorf("Mean %.4f outside [min, max] = [%.4f, %.4f]", s.Mean, s.Min, s.Max)
	}

	// need_1 = propensity + luck_1, two independent standard normals.
	AssertMeanNear(t, "need_1", mustValues(t, pop.Individuals, FieldNeed(1)), 0, 0.15)
	AssertStdDevNear(t, "need_1", mustValues(t, pop.Individuals, FieldNeed(1)), math.Sqrt2, 0.15)

	t.Logf("✓ Ladder min %.4f → median %.4f → max %.4f", s.Min, s.Median, s.Max)
}

func TestDescribe_InsufficientSample(t *testing.T) {
	if _, err := Describe(nil); !errors.Is(err, ErrInsufficientSample) {
		t.Errorf("Empty input: expected ErrInsufficientSample, got %v", err)
	}
	if _, err := Describe([]float64{1.5}); !errors.Is(err, ErrInsufficientSample) {
		t.Errorf("Single value: expected ErrInsufficientSample, got %v", err)
	}
}

func TestDescribe_DoesNotMutateInput(t *testing.T) {
	xs := []float64{9, 1, 7, 3}
	want := []float64{9, 1, 7, 3}

	if _, err := Describe(xs); err != nil {
		t.Fatalf("Describe failed: %v", err)
	}

	for i := range xs {
		if xs[i] != want[i] {
			t.Fatalf("Describe reordered its input: %v", xs)
		}
	}
}

func TestDescribeField_PropagatesFieldErrors(t *testing.T) {
	pop := twoPeriodPopulation(t, 10)

	if _, err := DescribeField(pop.Individuals, FieldNeed(5)); !errors.Is(err, ErrOrderingViolation) {
		t.Errorf("Unsimulated period: expected ErrOrderingViolation, got %v", err)
	}
	if _, err := DescribeField(pop.Individuals, "nonsense"); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Unknown field: expected ErrInvalidConfiguration, got %v", err)
	}
}
