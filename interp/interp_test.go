package interp

import (
	"errors"
	"testing"
)

func TestInterpolate(t *testing.T) {
	time := []float64{0, 1, 3}
	prop := []float64{0, 10, 30}
	samples := []float64{-1, 0, 0.5, 2, 3, 5}
	target := []float64{0, 0, 5, 20, 30, 30}

	pts, vals, err := Interpolate(prop, time, samples)
	if err != nil {
		t.Fatalf("Interpolate() returned %v", err)
	}
	if len(pts) != len(samples) {
		t.Errorf("Interpolate() returned %d points, wanted %d",
			len(pts), len(samples))
	}
	for i := range target {
		if vals[i] != target[i] {
			t.Errorf("value at %g = %g, wanted %g", samples[i], vals[i], target[i])
		}
	}
}

func TestInterpolateErrors(t *testing.T) {
	tests := []struct {
		prop, time []float64
		err        error
	}{
		{[]float64{1, 2}, []float64{1, 2, 3}, ErrLength},
		{[]float64{1}, []float64{1}, ErrLength},
		{[]float64{1, 2, 3}, []float64{1, 1, 2}, ErrNotMonotonic},
		{[]float64{1, 2, 3}, []float64{3, 2, 1}, ErrNotMonotonic},
	}

	for i := range tests {
		_, _, err := Interpolate(tests[i].prop, tests[i].time, []float64{1})
		if !errors.Is(err, tests[i].err) {
			t.Errorf("%d) Interpolate() gave error %v, wanted %v",
				i+1, err, tests[i].err)
		}
	}
}
