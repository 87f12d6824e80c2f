/*package catalog defines the read-only view of a halo catalogue database
that the rest of SoundNebula works against. A catalogue holds simulations, a
simulation holds an ordered list of timesteps, and each timestep holds halos
linked to their main progenitors in the previous timestep.

Implementations live in the subpackages: tangos reads a Tangos SQLite
database, ascii reads plain-text halo catalogues and memory holds everything
in slices.*/
package catalog

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrSimulationNotFound = errors.New("catalog: simulation not found")
	ErrHaloNotFound       = errors.New("catalog: halo not found")
	ErrPropertyNotFound   = errors.New("catalog: property not found")
	// ErrNoPrevious is returned by Previous when a timestep is the earliest
	// one in its simulation or when a halo has no main progenitor.
	ErrNoPrevious = errors.New("catalog: no previous entry")
	// ErrBadProperty is returned when a property exists but can't be used
	// the way the caller asked (wrong length, non-finite values).
	ErrBadProperty = errors.New("catalog: malformed property")
)

// Catalog is an open halo catalogue.
type Catalog interface {
	Simulation(name string) (Simulation, error)
	Close() error
}

// Simulation is a single simulation within a Catalog.
type Simulation interface {
	Name() string
	// Timesteps returns every timestep, ordered from earliest to latest.
	Timesteps() ([]Timestep, error)
}

// Timestep is one simulation output.
type Timestep interface {
	Label() string
	Redshift() float64
	// Time is the age of the universe at this output in Gyr.
	Time() float64

	// Halo looks up a halo by its halo number.
	Halo(number int) (Halo, error)
	// CalculateAll evaluates a property for every halo in the timestep which
	// has it. numbers[i] is the halo number whose value is values[i].
	CalculateAll(property string) (numbers []int, values [][]float64, err error)
	Previous() (Timestep, error)
}

// Halo is a single halo within a Timestep.
type Halo interface {
	Number() int
	Timestep() Timestep
	Calculate(property string) ([]float64, error)
	// Previous returns the main progenitor of the halo.
	Previous() (Halo, error)
}

// Vector converts a property value to a 3-vector.
func Vector(name string, v []float64) ([3]float64, error) {
	out := [3]float64{}
	if len(v) != 3 {
		return out, fmt.Errorf("%w: %s has %d components, not 3",
			ErrBadProperty, name, len(v))
	}
	for k := range out {
		if math.IsNaN(v[k]) || math.IsInf(v[k], 0) {
			return out, fmt.Errorf("%w: %s = %g", ErrBadProperty, name, v)
		}
		out[k] = v[k]
	}
	return out, nil
}

// Vectors converts a column of property values to 3-vectors.
func Vectors(name string, vs [][]float64) ([][3]float64, error) {
	out := make([][3]float64, len(vs))
	for i := range vs {
		var err error
		if out[i], err = Vector(name, vs[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}
