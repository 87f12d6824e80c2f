/*package array provides small slice utilities used when handling per-halo
columns: reversing time series, checking monotonicity and computing offsets
of vectors relative to a center.
*/
package array

import (
	"fmt"
)

// Reverse reverses a slice in place (and returns it for convenience).
func Reverse(xs []float64) []float64 {
	n1, n2 := len(xs)-1, len(xs)/2
	for i := 0; i < n2; i++ {
		xs[i], xs[n1-i] = xs[n1-i], xs[i]
	}
	return xs
}

// StrictlyIncreasing returns true if every element of xs is larger than the
// one before it. Slices of length zero or one are increasing.
func StrictlyIncreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if !(xs[i] > xs[i-1]) {
			return false
		}
	}
	return true
}

// getOutput is a utility function that gets the output array from an optional
// argument or allocates a new one.
func getOutput(out [][][3]float64, n int) [][3]float64 {
	if len(out) == 0 {
		return make([][3]float64, n)
	}
	buf := out[0]
	if len(buf) != n {
		panic(fmt.Sprintf("len(x) = %d, but len(out) = %d", n, len(buf)))
	}
	return buf
}

// Offsets returns x[i] - center for every vector in x. It takes an output
// target as an optional argument to avoid excess allocations.
func Offsets(x [][3]float64, center [3]float64, out ...[][3]float64) [][3]float64 {
	dx := getOutput(out, len(x))
	for i := range x {
		for k := 0; k < 3; k++ {
			dx[i][k] = x[i][k] - center[k]
		}
	}
	return dx
}

// MaxAbs returns the largest component magnitude of any vector in x.
func MaxAbs(x [][3]float64) float64 {
	max := 0.0
	for i := range x {
		for k := 0; k < 3; k++ {
			v := x[i][k]
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
	}
	return max
}
