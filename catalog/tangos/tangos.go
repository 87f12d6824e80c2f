/*package tangos reads halo catalogues out of a Tangos SQLite database.

Only the tables needed to walk merger trees are touched: simulations,
timesteps, halos, dictionary, haloproperties and halolink. The database is
opened read-only.*/
package tangos

import (
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/adam-broussard/SoundNebula/catalog"
)

const (
	// EnvConnection is the environment variable Tangos itself reads the
	// database location from.
	EnvConnection = "TANGOS_DB_CONNECTION"
	defaultPath   = "data.db"

	// haloType is the halo_type of ordinary halos; other values are
	// tracker or bh objects.
	haloType = 0

	// relationLink names the halolink relation used to follow progenitors.
	relationLink = "ptcls_in_common"
)

// DefaultPath returns the database path Tangos would use when none is given.
func DefaultPath() string {
	if path := os.Getenv(EnvConnection); path != "" {
		return path
	}
	return defaultPath
}

// Catalog is an open Tangos database.
type Catalog struct {
	db *sql.DB
}

// Open opens the Tangos database at path read-only. An empty path means
// DefaultPath().
func Open(path string) (*Catalog, error) {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("tangos: open database: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("tangos: open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("tangos: open database: %w", err)
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error { return c.db.Close() }

func (c *Catalog) Simulation(name string) (catalog.Simulation, error) {
	sim := &Simulation{c: c, name: name}
	err := c.db.QueryRow(querySimulation, name).Scan(&sim.id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", catalog.ErrSimulationNotFound, name)
	} else if err != nil {
		return nil, fmt.Errorf("tangos: simulation %q: %w", name, err)
	}
	return sim, nil
}

// Simulation is a row of the simulations table.
type Simulation struct {
	c    *Catalog
	id   int64
	name string
}

func (s *Simulation) Name() string { return s.name }

func (s *Simulation) Timesteps() ([]catalog.Timestep, error) {
	rows, err := s.c.db.Query(queryTimesteps, s.id)
	if err != nil {
		return nil, fmt.Errorf("tangos: timesteps of %q: %w", s.name, err)
	}
	defer rows.Close()

	out := []catalog.Timestep{}
	for rows.Next() {
		ts, err := s.scanTimestep(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tangos: timesteps of %q: %w", s.name, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Simulation) scanTimestep(row scanner) (*Timestep, error) {
	ts := &Timestep{sim: s}
	var z, t sql.NullFloat64
	if err := row.Scan(&ts.id, &ts.label, &z, &t); err != nil {
		return nil, err
	}
	ts.z, ts.t = z.Float64, t.Float64
	return ts, nil
}

// Timestep is a row of the timesteps table.
type Timestep struct {
	sim   *Simulation
	id    int64
	label string
	z, t  float64
}

func (ts *Timestep) Label() string     { return ts.label }
func (ts *Timestep) Redshift() float64 { return ts.z }
func (ts *Timestep) Time() float64     { return ts.t }

func (ts *Timestep) Previous() (catalog.Timestep, error) {
	row := ts.sim.c.db.QueryRow(queryPreviousTimestep, ts.sim.id, ts.t)
	prev, err := ts.sim.scanTimestep(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s is the first timestep",
			catalog.ErrNoPrevious, ts.label)
	} else if err != nil {
		return nil, fmt.Errorf("tangos: timestep before %s: %w", ts.label, err)
	}
	return prev, nil
}

func (ts *Timestep) Halo(number int) (catalog.Halo, error) {
	h := &Halo{ts: ts, number: number}
	err := ts.sim.c.db.QueryRow(queryHalo, ts.id, number, haloType).Scan(&h.id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: halo %d in %s",
			catalog.ErrHaloNotFound, number, ts.label)
	} else if err != nil {
		return nil, fmt.Errorf("tangos: halo %d in %s: %w", number, ts.label, err)
	}
	return h, nil
}

func (ts *Timestep) CalculateAll(property string) ([]int, [][]float64, error) {
	rows, err := ts.sim.c.db.Query(queryCalculateAll, ts.id, haloType, property)
	if err != nil {
		return nil, nil, fmt.Errorf("tangos: %s in %s: %w", property, ts.label, err)
	}
	defer rows.Close()

	numbers, values := []int{}, [][]float64{}
	for rows.Next() {
		var number int
		v := &propertyValue{}
		if err := rows.Scan(&number, &v.f, &v.i, &v.arr); err != nil {
			return nil, nil, fmt.Errorf("tangos: %s in %s: %w",
				property, ts.label, err)
		}
		x, err := v.decode(property)
		if err != nil {
			return nil, nil, fmt.Errorf("halo %d in %s: %w", number, ts.label, err)
		}

		// Rows come ordered by halo number, then by property id, so a
		// recalculated property replaces the older value.
		if n := len(numbers); n > 0 && numbers[n-1] == number {
			values[n-1] = x
			continue
		}
		numbers, values = append(numbers, number), append(values, x)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("tangos: %s in %s: %w", property, ts.label, err)
	}
	return numbers, values, nil
}

// Halo is a row of the halos table.
type Halo struct {
	ts     *Timestep
	id     int64
	number int
}

func (h *Halo) Number() int                 { return h.number }
func (h *Halo) Timestep() catalog.Timestep { return h.ts }

func (h *Halo) Calculate(property string) ([]float64, error) {
	v := &propertyValue{}
	err := h.ts.sim.c.db.QueryRow(queryProperty, h.id, property).
		Scan(&v.f, &v.i, &v.arr)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s of halo %d in %s",
			catalog.ErrPropertyNotFound, property, h.number, h.ts.label)
	} else if err != nil {
		return nil, fmt.Errorf("tangos: %s of halo %d in %s: %w",
			property, h.number, h.ts.label, err)
	}
	return v.decode(property)
}

// Previous follows the ptcls_in_common halolink with the largest weight to an
// ordinary halo in the previous timestep.
func (h *Halo) Previous() (catalog.Halo, error) {
	prevTs, err := h.ts.Previous()
	if err != nil {
		return nil, err
	}
	prev := prevTs.(*Timestep)

	p := &Halo{ts: prev}
	err = h.ts.sim.c.db.QueryRow(queryProgenitor, h.id, prev.id, haloType, relationLink).
		Scan(&p.id, &p.number)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: halo %d in %s has no progenitor in %s",
			catalog.ErrNoPrevious, h.number, h.ts.label, prev.label)
	} else if err != nil {
		return nil, fmt.Errorf("tangos: progenitor of halo %d in %s: %w",
			h.number, h.ts.label, err)
	}
	return p, nil
}
