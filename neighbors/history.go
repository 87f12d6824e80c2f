package neighbors

import (
	"fmt"

	"github.com/adam-broussard/SoundNebula/array"
	"github.com/adam-broussard/SoundNebula/catalog"
	"github.com/adam-broussard/SoundNebula/property"
)

// History evaluates p for the center halo and its main progenitors over the
// Query's timestep range. Times and values are returned in order of
// increasing time, ready for interp.Interpolate. Like Walk, a progenitor
// line that ends early produces partial output and ErrProgenitorExhausted.
func History(
	sim catalog.Simulation, q Query, p property.Property,
) (time, values []float64, err error) {
	center, n, err := start(sim, q)
	if err != nil {
		return nil, nil, err
	}
	ts := center.Timestep()

	for i := 0; i < n; i++ {
		v, err := p.Calculate(center)
		if err != nil {
			return nil, nil, fmt.Errorf("%s of halo %d in %s: %w",
				p.Name(), center.Number(), ts.Label(), err)
		}
		time, values = append(time, ts.Time()), append(values, v)

		if i == n-1 {
			break
		}
		if ts, center, err = previous(ts, center); err != nil {
			err = fmt.Errorf("after %d of %d timesteps: %w", i+1, n, err)
			return array.Reverse(time), array.Reverse(values), err
		}
	}
	return array.Reverse(time), array.Reverse(values), nil
}
