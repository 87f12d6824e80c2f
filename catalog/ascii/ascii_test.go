package ascii

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam-broussard/SoundNebula/catalog"
)

func TestReadTable(t *testing.T) {
	text := `# label = snap
# z = 1.5
# note without an equals sign

1 1 2 3 -1
2 4 5 6 1
`
	tab, err := readTable(strings.NewReader(text), DefaultConfig)
	require.NoError(t, err)
	assert.Equal(t, "snap", tab.label)
	assert.Equal(t, 1.5, tab.z)
	assert.Equal(t, [][]float64{{1, 1, 2, 3, -1}, {2, 4, 5, 6, 1}}, tab.rows)
	assert.Equal(t, 4, tab.columns["progenitor"])
}

func TestReadTableErrors(t *testing.T) {
	bad := []string{
		"1 2 3\n",
		"# columns = halo_number x y z\n1 2 3 4\n",
		"# columns = halo_number x x y z progenitor\n",
		"1 a 2 3 -1\n",
		"# z = high\n",
		"1 1 1 1 -1\n1.7 50 50 50 -1\n",
		"1 1 1 1 0.5\n",
		"1 1 1 1 -1\n1 50 50 50 -1\n",
		"NaN 1 1 1 -1\n",
		"+Inf 1 1 1 -1\n",
	}
	for i := range bad {
		if _, err := readTable(strings.NewReader(bad[i]), DefaultConfig); err == nil {
			t.Errorf("%d) readTable(%q) succeeded", i+1, bad[i])
		}
	}
}

func TestReadTableDuplicateLine(t *testing.T) {
	text := "# label = snap\n1 1 1 1 -1\n2 2 2 2 -1\n\n1 50 50 50 -1\n"
	_, err := readTable(strings.NewReader(text), DefaultConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 5")
	assert.Contains(t, err.Error(), "line 2")
}

func TestCatalog(t *testing.T) {
	c, err := Open("testdata")
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Simulation("missing")
	assert.ErrorIs(t, err, catalog.ErrSimulationNotFound)

	sim, err := c.Simulation("sim")
	require.NoError(t, err)
	steps, err := sim.Timesteps()
	require.NoError(t, err)
	require.Len(t, steps, 2)

	assert.Equal(t, "sim.000100", steps[0].Label())
	assert.Equal(t, "snap_001", steps[1].Label())
	assert.Equal(t, 13.8, steps[1].Time())

	h, err := steps[1].Halo(2)
	require.NoError(t, err)
	x, err := h.Calculate("shrink_center")
	require.NoError(t, err)
	assert.Equal(t, []float64{95, 12, 12}, x)

	p, err := h.Previous()
	require.NoError(t, err)
	m, err := p.Calculate("Mvir")
	require.NoError(t, err)
	assert.Equal(t, []float64{1e10}, m)

	h3, _ := steps[1].Halo(3)
	_, err = h3.Previous()
	assert.ErrorIs(t, err, catalog.ErrNoPrevious)
}

func TestCatalogRejectsLossyRows(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "sim")
	require.NoError(t, os.Mkdir(dir, 0o755))
	text := "1 1 1 1 -1\n1.7 50 50 50 -1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snap_000.txt"), []byte(text), 0o644))

	c, err := Open(root)
	require.NoError(t, err)
	_, err = c.Simulation("sim")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestOpenNotDir(t *testing.T) {
	_, err := Open("testdata/sim/snap_000.txt")
	assert.Error(t, err)
	_, err = Open("testdata/nope")
	assert.Error(t, err)
}
