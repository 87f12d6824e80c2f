package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adam-broussard/SoundNebula/neighbors"
)

const testYAML = `simulation: h148
center_halo: 3
latest_timestep: 4096
earliest_timestep: 640
region_size: 500
periodic: false
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "soundnebula.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(text), 0o644))
	return fname
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, BackendTangos, cfg.Backend)
	assert.Equal(t, 25e3, cfg.BoxSize)
	assert.True(t, cfg.Periodic)
	assert.Equal(t, "kdtree", cfg.Index)
	assert.Equal(t, "shrink_center", cfg.CenterProperty)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML), nil)
	require.NoError(t, err)
	assert.Equal(t, "h148", cfg.Simulation)
	assert.Equal(t, 3, cfg.CenterHalo)
	assert.Equal(t, "4096", cfg.LatestTimestep)
	assert.Equal(t, "640", cfg.EarliestTimestep)
	assert.Equal(t, 500.0, cfg.RegionSize)
	assert.False(t, cfg.Periodic)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, neighbors.Query{CenterHalo: 3, Latest: "4096", Earliest: "640"}, cfg.Query())
	opt := cfg.Options()
	assert.Equal(t, [3]float64{25e3, 25e3, 25e3}, opt.BoxSize)
	assert.Equal(t, neighbors.IndexKDTree, opt.Index)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestPrecedence(t *testing.T) {
	t.Setenv("SOUNDNEBULA_REGION_SIZE", "250")
	t.Setenv("SOUNDNEBULA_SIMULATION", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("simulation", "", "")
	flags.Int("center-halo", 1, "")
	flags.Bool("json", false, "")
	require.NoError(t, flags.Parse([]string{"--simulation", "from-flag"}))

	cfg, err := Load(writeConfig(t, testYAML), flags)
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.Simulation)
	assert.Equal(t, 250.0, cfg.RegionSize)
	assert.Equal(t, 3, cfg.CenterHalo)
}

func TestValidate(t *testing.T) {
	good := func() *Config {
		cfg, err := Load(writeConfig(t, testYAML), nil)
		require.NoError(t, err)
		return cfg
	}

	bad := []func(*Config){
		func(c *Config) { c.Simulation = "" },
		func(c *Config) { c.Backend = "pynbody" },
		func(c *Config) { c.Backend = BackendASCII },
		func(c *Config) { c.LatestTimestep = "" },
		func(c *Config) { c.EarliestTimestep = "" },
		func(c *Config) { c.RegionSize = -1 },
		func(c *Config) { c.Index = "octree" },
		func(c *Config) { c.Periodic, c.BoxSize = true, 0 },
	}

	for i := range bad {
		cfg := good()
		bad[i](cfg)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, "case %d", i+1)
	}

	cfg := good()
	cfg.Backend, cfg.CatalogueDir = BackendASCII, "catalogues"
	assert.NoError(t, cfg.Validate())
}
