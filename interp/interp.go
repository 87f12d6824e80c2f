/*package interp interpolates halo properties over time.*/
package interp

import (
	"errors"
	"fmt"

	gonuminterp "gonum.org/v1/gonum/interp"

	"github.com/adam-broussard/SoundNebula/array"
)

var (
	ErrLength       = errors.New("interp: bad input length")
	ErrNotMonotonic = errors.New("interp: time is not strictly increasing")
)

// Interpolate linearly interpolates prop, sampled at time, onto the points
// samples. Samples outside the range of time take the value at the nearest
// end. It returns samples alongside the interpolated values.
func Interpolate(prop, time, samples []float64) ([]float64, []float64, error) {
	if len(prop) != len(time) {
		return nil, nil, fmt.Errorf("%w: len(prop) = %d, but len(time) = %d",
			ErrLength, len(prop), len(time))
	} else if len(time) < 2 {
		return nil, nil, fmt.Errorf("%w: need at least two points, got %d",
			ErrLength, len(time))
	} else if !array.StrictlyIncreasing(time) {
		return nil, nil, ErrNotMonotonic
	}

	pl := &gonuminterp.PiecewiseLinear{}
	if err := pl.Fit(time, prop); err != nil {
		return nil, nil, err
	}

	vals := make([]float64, len(samples))
	for i := range samples {
		vals[i] = pl.Predict(samples[i])
	}
	return samples, vals, nil
}
