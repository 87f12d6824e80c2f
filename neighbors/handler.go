/*package neighbors finds the halos surrounding a central halo at every
timestep of a simulation, following the central halo's main progenitor line
backwards in time.

A Handler is built once from a simulation and a set of Options and can then
be queried any number of times; all cursor state lives inside each call.*/
package neighbors

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/adam-broussard/SoundNebula/array"
	"github.com/adam-broussard/SoundNebula/box"
	"github.com/adam-broussard/SoundNebula/catalog"
)

// IndexKind names a spatial index implementation.
type IndexKind string

const (
	IndexKDTree IndexKind = "kdtree"
	IndexGrid   IndexKind = "grid"

	// DefaultBoxSize is the comoving width of the simulation box, in the
	// same units as halo centers.
	DefaultBoxSize = 25e3
	// DefaultCenterProperty is the Tangos name for shrinking-sphere centers.
	DefaultCenterProperty = "shrink_center"
)

// Options configures a Handler.
type Options struct {
	// RegionSize is the comoving search radius around the center halo.
	RegionSize float64
	// BoxSize is the comoving box width along each axis.
	BoxSize [3]float64
	// Periodic enables periodic wrapping of offsets.
	Periodic bool
	// ExcludeCenter removes the center halo from its own neighbor list.
	// By default it's included, since it sits at distance zero.
	ExcludeCenter bool
	Index         IndexKind
	// CenterProperty is the catalogue property holding halo centers.
	CenterProperty string
}

// DefaultOptions returns Options for a periodic 25 Mpc box searched with a
// k-d tree. RegionSize must still be set.
func DefaultOptions() Options {
	return Options{
		BoxSize:        [3]float64{DefaultBoxSize, DefaultBoxSize, DefaultBoxSize},
		Periodic:       true,
		Index:          IndexKDTree,
		CenterProperty: DefaultCenterProperty,
	}
}

// Validate checks that the options can be used to build a Handler.
func (o *Options) Validate() error {
	if !(o.RegionSize > 0) || math.IsInf(o.RegionSize, 0) {
		return fmt.Errorf("%w: region size %g must be positive and finite",
			ErrBadOptions, o.RegionSize)
	}
	if o.Periodic {
		for k, L := range o.BoxSize {
			if !(L > 0) || math.IsInf(L, 0) {
				return fmt.Errorf("%w: box size %g on axis %d must be positive",
					ErrBadOptions, L, k)
			}
		}
	}
	switch o.Index {
	case IndexKDTree, IndexGrid:
	default:
		return fmt.Errorf("%w %q", ErrUnknownIndex, o.Index)
	}
	if o.CenterProperty == "" {
		return fmt.Errorf("%w: center property is empty", ErrBadOptions)
	}
	return nil
}

// Handler answers surrounding-halo queries for a single simulation.
type Handler struct {
	sim catalog.Simulation
	opt Options
	log *zap.Logger
}

// New creates a Handler. A nil logger discards all log output.
func New(sim catalog.Simulation, opt Options, log *zap.Logger) (*Handler, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		sim: sim, opt: opt,
		log: log.With(zap.String("simulation", sim.Name())),
	}, nil
}

// Options returns the options the Handler was built with.
func (h *Handler) Options() Options { return h.opt }

// Query identifies the center halo and the range of timesteps to walk.
type Query struct {
	// CenterHalo is the halo number of the center halo in the latest
	// timestep.
	CenterHalo int
	// Latest and Earliest are timestep tokens, see ResolveBounds.
	Latest, Earliest string
}

// Step is the result of a surrounding-halo query at one timestep.
type Step struct {
	Label    string  `json:"timestep"`
	Redshift float64 `json:"redshift"`
	Time     float64 `json:"time_gyr"`
	// Center is the halo number of the center halo (or its progenitor).
	Center int `json:"center"`
	// Halos are the sorted halo numbers within the search radius.
	Halos []int `json:"halos"`
}

// Result is the output of a walk, ordered from the latest timestep to the
// earliest.
type Result struct {
	Simulation string  `json:"simulation"`
	RegionSize float64 `json:"region_size"`
	Steps      []Step  `json:"steps"`
}

// Bounds resolves timestep tokens against the Handler's simulation.
func (h *Handler) Bounds(latest, earliest string) (*Bounds, error) {
	steps, err := h.sim.Timesteps()
	if err != nil {
		return nil, err
	}
	return ResolveBounds(steps, latest, earliest)
}

// start resolves a Query into its center halo and step count.
func start(sim catalog.Simulation, q Query) (catalog.Halo, int, error) {
	steps, err := sim.Timesteps()
	if err != nil {
		return nil, 0, err
	}
	b, err := ResolveBounds(steps, q.Latest, q.Earliest)
	if err != nil {
		return nil, 0, err
	}
	center, err := b.Latest.Halo(q.CenterHalo)
	if err != nil {
		return nil, 0, err
	}
	return center, b.Steps, nil
}

// Run resolves the Query and walks the center halo's progenitor line
// through every timestep in range.
func (h *Handler) Run(q Query) (*Result, error) {
	center, n, err := start(h.sim, q)
	if err != nil {
		return nil, err
	}

	res, err := h.Walk(center.Timestep(), center, n)
	if err != nil {
		return res, err
	}

	h.log.Info("Walked progenitor line",
		zap.Int("center", q.CenterHalo),
		zap.Int("timesteps", len(res.Steps)))
	return res, nil
}

// Surrounding returns the sorted halo numbers of every halo in ts whose
// center is within RegionSize of center's center, including halos at
// exactly RegionSize.
func (h *Handler) Surrounding(ts catalog.Timestep, center catalog.Halo) ([]int, error) {
	prop := h.opt.CenterProperty

	v, err := center.Calculate(prop)
	if err != nil {
		return nil, err
	}
	c, err := catalog.Vector(prop, v)
	if err != nil {
		return nil, fmt.Errorf("halo %d: %w", center.Number(), err)
	}

	numbers, values, err := ts.CalculateAll(prop)
	if err != nil {
		return nil, err
	}
	x, err := catalog.Vectors(prop, values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ts.Label(), err)
	}

	dx := array.Offsets(x, c)
	if h.opt.Periodic {
		box.WrapAxes(dx, h.opt.BoxSize)
	}

	found := h.index(dx).Find([3]float64{}, h.opt.RegionSize)

	out := make([]int, 0, len(found))
	for _, i := range found {
		if h.opt.ExcludeCenter && numbers[i] == center.Number() {
			continue
		}
		out = append(out, numbers[i])
	}
	sort.Ints(out)
	return out, nil
}

// index builds the configured spatial index over offsets which have already
// been wrapped.
func (h *Handler) index(dx [][3]float64) box.Index {
	if h.opt.Index == IndexGrid {
		// The Finder wraps internally, so give it a box wide enough that
		// it never does.
		width := 2*(array.MaxAbs(dx)+h.opt.RegionSize) + 1
		return box.NewFinder(width, dx)
	}
	return box.NewKDTree(dx)
}

// Walk runs Surrounding on ts and center, then on their previous timestep
// and main progenitor, and so on for n timesteps. If the progenitor line
// ends first, the steps gathered so far are returned along with an error
// wrapping ErrProgenitorExhausted.
func (h *Handler) Walk(ts catalog.Timestep, center catalog.Halo, n int) (*Result, error) {
	res := &Result{
		Simulation: h.sim.Name(),
		RegionSize: h.opt.RegionSize,
		Steps:      make([]Step, 0, n),
	}

	for i := 0; i < n; i++ {
		halos, err := h.Surrounding(ts, center)
		if err != nil {
			return res, err
		}
		res.Steps = append(res.Steps, Step{
			Label: ts.Label(), Redshift: ts.Redshift(), Time: ts.Time(),
			Center: center.Number(), Halos: halos,
		})

		h.log.Debug("Gathered surrounding halos",
			zap.String("timestep", ts.Label()),
			zap.Int("center", center.Number()),
			zap.Int("halos", len(halos)))

		if i == n-1 {
			break
		}

		if ts, center, err = previous(ts, center); err != nil {
			return res, fmt.Errorf("after %d of %d timesteps: %w", i+1, n, err)
		}
	}

	return res, nil
}

// previous advances a timestep and halo cursor one step back in time.
func previous(
	ts catalog.Timestep, center catalog.Halo,
) (catalog.Timestep, catalog.Halo, error) {
	prevTs, err := ts.Previous()
	if err != nil {
		return nil, nil, exhausted(err)
	}
	prevHalo, err := center.Previous()
	if err != nil {
		return nil, nil, exhausted(err)
	}
	return prevTs, prevHalo, nil
}

func exhausted(err error) error {
	if errors.Is(err, catalog.ErrNoPrevious) {
		return fmt.Errorf("%w: %w", ErrProgenitorExhausted, err)
	}
	return err
}

// Progenitors returns center followed by its chain of main progenitors. The
// chain stops when there is no further progenitor or, if max > 0, once it
// holds max halos.
func Progenitors(center catalog.Halo, max int) ([]catalog.Halo, error) {
	chain := []catalog.Halo{center}
	for max <= 0 || len(chain) < max {
		prev, err := chain[len(chain)-1].Previous()
		if errors.Is(err, catalog.ErrNoPrevious) {
			break
		} else if err != nil {
			return chain, err
		}
		chain = append(chain, prev)
	}
	return chain, nil
}
