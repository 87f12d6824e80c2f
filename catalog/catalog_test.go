package catalog

import (
	"errors"
	"math"
	"testing"
)

func TestVector(t *testing.T) {
	v, err := Vector("shrink_center", []float64{1, 2, 3})
	if err != nil || v != [3]float64{1, 2, 3} {
		t.Errorf("Vector() = %g, %v", v, err)
	}

	bad := [][]float64{{1, 2}, {1, 2, 3, 4}, {1, math.NaN(), 3}, {math.Inf(1), 0, 0}}
	for i := range bad {
		if _, err := Vector("shrink_center", bad[i]); !errors.Is(err, ErrBadProperty) {
			t.Errorf("%d) Vector(%g) gave error %v, wanted ErrBadProperty",
				i+1, bad[i], err)
		}
	}
}

func TestVectors(t *testing.T) {
	vs, err := Vectors("x", [][]float64{{1, 2, 3}, {4, 5, 6}})
	if err != nil || len(vs) != 2 || vs[1] != [3]float64{4, 5, 6} {
		t.Errorf("Vectors() = %g, %v", vs, err)
	}
	if _, err := Vectors("x", [][]float64{{1, 2, 3}, {4}}); err == nil {
		t.Errorf("Vectors() accepted a short vector")
	}
}
