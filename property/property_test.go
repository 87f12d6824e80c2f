package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam-broussard/SoundNebula/catalog"
	"github.com/adam-broussard/SoundNebula/catalog/memory"
)

func halo(t *testing.T, props map[string][]float64) catalog.Halo {
	t.Helper()
	ts := memory.New().AddSimulation("sim").AddTimestep("s", 0, 0)
	return ts.AddHalo(1, -1, props)
}

func TestDistance(t *testing.T) {
	h := halo(t, map[string][]float64{
		"shrink_center": {3, 4, 12},
		"com":           {0, 0, 2},
		"short":         {1, 2},
	})

	d, err := Distance{}.Calculate(h)
	require.NoError(t, err)
	assert.InDelta(t, 13.0, d, 1e-12)

	d, err = Distance{CenterProperty: "com"}.Calculate(h)
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)

	_, err = Distance{CenterProperty: "short"}.Calculate(h)
	assert.ErrorIs(t, err, catalog.ErrBadProperty)

	_, err = Distance{CenterProperty: "missing"}.Calculate(h)
	assert.ErrorIs(t, err, catalog.ErrPropertyNotFound)
}

func TestLookup(t *testing.T) {
	p, err := Lookup("distance", "")
	require.NoError(t, err)
	assert.Equal(t, "distance", p.Name())
	assert.Equal(t, Distance{CenterProperty: DefaultCenter}, p)

	p, err = Lookup("distance", "com")
	require.NoError(t, err)
	assert.Equal(t, Distance{CenterProperty: "com"}, p)

	_, err = Lookup("pynbody", "")
	assert.ErrorIs(t, err, ErrUnknownProperty)

	assert.Equal(t, []string{"distance"}, Names())
}
