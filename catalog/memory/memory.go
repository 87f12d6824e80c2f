/*package memory is a catalog.Catalog that holds everything in memory. It's
used by the ascii backend once files are parsed and by tests which need small
hand-built catalogues.*/
package memory

import (
	"fmt"
	"sort"

	"github.com/adam-broussard/SoundNebula/catalog"
)

// Catalog is an in-memory collection of simulations.
type Catalog struct {
	sims map[string]*Simulation
}

// New creates an empty Catalog.
func New() *Catalog {
	return &Catalog{sims: map[string]*Simulation{}}
}

// AddSimulation creates a new, empty simulation. Adding a name twice replaces
// the earlier simulation.
func (c *Catalog) AddSimulation(name string) *Simulation {
	sim := &Simulation{name: name}
	c.sims[name] = sim
	return sim
}

func (c *Catalog) Simulation(name string) (catalog.Simulation, error) {
	sim, ok := c.sims[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", catalog.ErrSimulationNotFound, name)
	}
	return sim, nil
}

func (c *Catalog) Close() error { return nil }

// Simulation is an ordered list of timesteps.
type Simulation struct {
	name  string
	steps []*Timestep
}

func (s *Simulation) Name() string { return s.name }

// AddTimestep appends a timestep. Timesteps must be added from earliest to
// latest.
func (s *Simulation) AddTimestep(label string, z, t float64) *Timestep {
	ts := &Timestep{
		sim: s, idx: len(s.steps),
		label: label, z: z, t: t,
		halos: map[int]*Halo{},
	}
	s.steps = append(s.steps, ts)
	return ts
}

func (s *Simulation) Timesteps() ([]catalog.Timestep, error) {
	out := make([]catalog.Timestep, len(s.steps))
	for i := range s.steps {
		out[i] = s.steps[i]
	}
	return out, nil
}

// Timestep holds the halos of one output.
type Timestep struct {
	sim   *Simulation
	idx   int
	label string
	z, t  float64
	halos map[int]*Halo
}

// AddHalo adds a halo with the given number and properties. progenitor is
// the halo number of its main progenitor in the previous timestep, or -1.
// A halo already added under the same number is replaced.
func (ts *Timestep) AddHalo(
	number, progenitor int, props map[string][]float64,
) *Halo {
	if props == nil {
		props = map[string][]float64{}
	}
	h := &Halo{ts: ts, number: number, progenitor: progenitor, props: props}
	ts.halos[number] = h
	return h
}

func (ts *Timestep) Label() string     { return ts.label }
func (ts *Timestep) Redshift() float64 { return ts.z }
func (ts *Timestep) Time() float64     { return ts.t }

func (ts *Timestep) Halo(number int) (catalog.Halo, error) {
	h, ok := ts.halos[number]
	if !ok {
		return nil, fmt.Errorf("%w: halo %d in %s",
			catalog.ErrHaloNotFound, number, ts.label)
	}
	return h, nil
}

// CalculateAll returns values in ascending halo number order.
func (ts *Timestep) CalculateAll(property string) ([]int, [][]float64, error) {
	numbers := make([]int, 0, len(ts.halos))
	for n, h := range ts.halos {
		if _, ok := h.props[property]; ok {
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)

	values := make([][]float64, len(numbers))
	for i, n := range numbers {
		values[i] = ts.halos[n].props[property]
	}
	return numbers, values, nil
}

func (ts *Timestep) Previous() (catalog.Timestep, error) {
	if ts.idx == 0 {
		return nil, fmt.Errorf("%w: %s is the first timestep",
			catalog.ErrNoPrevious, ts.label)
	}
	return ts.sim.steps[ts.idx-1], nil
}

// Halo is a single halo with a fixed set of properties.
type Halo struct {
	ts         *Timestep
	number     int
	progenitor int
	props      map[string][]float64
}

func (h *Halo) Number() int                 { return h.number }
func (h *Halo) Timestep() catalog.Timestep { return h.ts }

func (h *Halo) Calculate(property string) ([]float64, error) {
	v, ok := h.props[property]
	if !ok {
		return nil, fmt.Errorf("%w: %s of halo %d in %s",
			catalog.ErrPropertyNotFound, property, h.number, h.ts.label)
	}
	return v, nil
}

func (h *Halo) Previous() (catalog.Halo, error) {
	if h.progenitor < 0 || h.ts.idx == 0 {
		return nil, fmt.Errorf("%w: halo %d in %s has no progenitor",
			catalog.ErrNoPrevious, h.number, h.ts.label)
	}
	prev := h.ts.sim.steps[h.ts.idx-1]
	p, ok := prev.halos[h.progenitor]
	if !ok {
		return nil, fmt.Errorf("%w: progenitor %d of halo %d in %s",
			catalog.ErrNoPrevious, h.progenitor, h.number, h.ts.label)
	}
	return p, nil
}
