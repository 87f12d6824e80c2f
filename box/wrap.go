/*package box contains routines for dealing with the periodic geometry of
cosmological simulations boxes and for finding the points which lie within a
given radius of a target.*/
package box

import (
	"math"
)

// SymBound returns the periodic image of x which lies within [-L/2, L/2].
// Values already inside that range, zero, and any value in a box with a
// non-positive width are returned unchanged.
func SymBound(x, L float64) float64 {
	if L <= 0 || x == 0 || math.Abs(x) <= L/2 {
		return x
	}
	// For L/2 < |x| <= L this is -sign(x) * (L - |x|).
	return math.Remainder(x, L)
}

// Wrap periodically wraps a set of vectors which are relative to some center
// point, replacing every component outside [-L/2, L/2] with its nearest
// periodic image. x is modified in place.
func Wrap(x [][3]float64, L float64) {
	WrapAxes(x, [3]float64{L, L, L})
}

// WrapAxes is identical to Wrap, except that every axis has its own box
// width. An axis with a non-positive width is left alone.
func WrapAxes(x [][3]float64, L [3]float64) {
	for i := range x {
		for k := 0; k < 3; k++ {
			x[i][k] = SymBound(x[i][k], L[k])
		}
	}
}
