/*package ascii reads halo catalogues stored as whitespace-separated text
files, one file per timestep:

	<root>/<simulation>/<step>.txt

Files are ordered lexically, earliest first, so zero-padded snapshot numbers
are needed. Each file may start with "# key = value" header lines giving
label, z (redshift), t (time in Gyr) and columns (column names). Every file
needs halo_number, x, y, z and progenitor columns; progenitor is the halo
number of the main progenitor in the previous file, or -1. Any other column
is exposed as a scalar property of the same name.*/
package ascii

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adam-broussard/SoundNebula/catalog"
	"github.com/adam-broussard/SoundNebula/catalog/memory"
)

const fileExt = ".txt"

// Catalog is a directory of text catalogues. Simulations are read the first
// time they're asked for.
type Catalog struct {
	root   string
	config TextConfig
	mem    *memory.Catalog
	loaded map[string]bool
}

// Open opens the catalogue directory root. An optional config may be given,
// otherwise DefaultConfig is used.
func Open(root string, config ...TextConfig) (*Catalog, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("ascii: open catalogue: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("ascii: %s is not a directory", root)
	}

	c := &Catalog{
		root: root, config: DefaultConfig,
		mem: memory.New(), loaded: map[string]bool{},
	}
	if len(config) > 0 {
		c.config = config[0]
	}
	return c, nil
}

func (c *Catalog) Close() error { return nil }

func (c *Catalog) Simulation(name string) (catalog.Simulation, error) {
	if !c.loaded[name] {
		if err := c.load(name); err != nil {
			return nil, err
		}
		c.loaded[name] = true
	}
	return c.mem.Simulation(name)
}

func (c *Catalog) load(name string) error {
	dir := filepath.Join(c.root, name)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %q", catalog.ErrSimulationNotFound, name)
	} else if err != nil {
		return fmt.Errorf("ascii: simulation %q: %w", name, err)
	}

	fnames := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), fileExt) {
			fnames = append(fnames, e.Name())
		}
	}
	sort.Strings(fnames)

	sim := c.mem.AddSimulation(name)
	for _, fname := range fnames {
		tab, err := c.readFile(filepath.Join(dir, fname))
		if err != nil {
			return err
		}
		if tab.label == "" {
			tab.label = strings.TrimSuffix(fname, fileExt)
		}
		c.addTimestep(sim, tab)
	}
	return nil
}

func (c *Catalog) readFile(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ascii: %w", err)
	}
	defer f.Close()

	tab, err := readTable(f, c.config)
	if err != nil {
		return nil, fmt.Errorf("ascii: %s: %w", path, err)
	}
	return tab, nil
}

func (c *Catalog) addTimestep(sim *memory.Simulation, tab *table) {
	ts := sim.AddTimestep(tab.label, tab.z, tab.t)
	col := tab.columns

	for _, row := range tab.rows {
		props := map[string][]float64{
			c.config.CenterProperty: {row[col["x"]], row[col["y"]], row[col["z"]]},
		}
		for i, name := range tab.names {
			switch name {
			case "halo_number", "progenitor", "x", "y", "z":
			default:
				props[name] = []float64{row[i]}
			}
		}
		ts.AddHalo(int(row[col["halo_number"]]), int(row[col["progenitor"]]), props)
	}
}
