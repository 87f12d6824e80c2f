/*package config loads SoundNebula run configurations. Values come from, in
decreasing priority: command line flags, SOUNDNEBULA_* environment
variables, a YAML config file and built-in defaults.*/
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/adam-broussard/SoundNebula/neighbors"
)

const (
	BackendTangos = "tangos"
	BackendASCII  = "ascii"

	envPrefix = "SOUNDNEBULA"
)

// Config keys.
const (
	KeySimulation       = "simulation"
	KeyCenterHalo       = "center_halo"
	KeyLatestTimestep   = "latest_timestep"
	KeyEarliestTimestep = "earliest_timestep"
	KeyRegionSize       = "region_size"
	KeyBoxSize          = "box_size"
	KeyPeriodic         = "periodic"
	KeyExcludeCenter    = "exclude_center"
	KeyIndex            = "index"
	KeyCenterProperty   = "center_property"
	KeyBackend          = "backend"
	KeyDatabase         = "database"
	KeyCatalogueDir     = "catalogue_dir"
	KeyLogLevel         = "log_level"
)

var ErrInvalid = errors.New("config: invalid configuration")

// Config is a complete run configuration.
type Config struct {
	Simulation       string  `mapstructure:"simulation"`
	CenterHalo       int     `mapstructure:"center_halo"`
	LatestTimestep   string  `mapstructure:"latest_timestep"`
	EarliestTimestep string  `mapstructure:"earliest_timestep"`
	RegionSize       float64 `mapstructure:"region_size"`
	BoxSize          float64 `mapstructure:"box_size"`
	Periodic         bool    `mapstructure:"periodic"`
	ExcludeCenter    bool    `mapstructure:"exclude_center"`
	Index            string  `mapstructure:"index"`
	CenterProperty   string  `mapstructure:"center_property"`

	Backend      string `mapstructure:"backend"`
	Database     string `mapstructure:"database"`
	CatalogueDir string `mapstructure:"catalogue_dir"`
	LogLevel     string `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySimulation, "")
	v.SetDefault(KeyCenterHalo, 1)
	v.SetDefault(KeyLatestTimestep, "")
	v.SetDefault(KeyEarliestTimestep, "")
	v.SetDefault(KeyRegionSize, 0.0)
	v.SetDefault(KeyBoxSize, neighbors.DefaultBoxSize)
	v.SetDefault(KeyPeriodic, true)
	v.SetDefault(KeyExcludeCenter, false)
	v.SetDefault(KeyIndex, string(neighbors.IndexKDTree))
	v.SetDefault(KeyCenterProperty, neighbors.DefaultCenterProperty)
	v.SetDefault(KeyBackend, BackendTangos)
	v.SetDefault(KeyDatabase, "")
	v.SetDefault(KeyCatalogueDir, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads the configuration. fname is an optional YAML file and flags an
// optional flag set whose flags are matched to keys by name, with dashes
// standing in for underscores.
func Load(fname string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if fname != "" {
		v.SetConfigFile(fname)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", fname, err)
		}
	}

	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if !isKey(key) {
				return
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("config: bind flags: %w", bindErr)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// isKey returns true if key is one of the Config keys.
func isKey(key string) bool {
	switch key {
	case KeySimulation, KeyCenterHalo, KeyLatestTimestep, KeyEarliestTimestep,
		KeyRegionSize, KeyBoxSize, KeyPeriodic, KeyExcludeCenter, KeyIndex,
		KeyCenterProperty, KeyBackend, KeyDatabase, KeyCatalogueDir,
		KeyLogLevel:
		return true
	}
	return false
}

// ValidateCatalogue checks the fields needed to open a catalogue and pick a
// simulation.
func (c *Config) ValidateCatalogue() error {
	switch c.Backend {
	case BackendTangos:
	case BackendASCII:
		if c.CatalogueDir == "" {
			return fmt.Errorf("%w: the %s backend needs %s",
				ErrInvalid, BackendASCII, KeyCatalogueDir)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q (want %s or %s)",
			ErrInvalid, c.Backend, BackendTangos, BackendASCII)
	}
	if c.Simulation == "" {
		return fmt.Errorf("%w: %s must be set", ErrInvalid, KeySimulation)
	}
	return nil
}

// Validate checks every field needed for a surrounding-halo walk.
func (c *Config) Validate() error {
	if err := c.ValidateCatalogue(); err != nil {
		return err
	}
	if c.LatestTimestep == "" {
		return fmt.Errorf("%w: %s must be set", ErrInvalid, KeyLatestTimestep)
	} else if c.EarliestTimestep == "" {
		return fmt.Errorf("%w: %s must be set", ErrInvalid, KeyEarliestTimestep)
	}
	opt := c.Options()
	if err := opt.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Options converts the configuration into neighbors.Options.
func (c *Config) Options() neighbors.Options {
	return neighbors.Options{
		RegionSize:     c.RegionSize,
		BoxSize:        [3]float64{c.BoxSize, c.BoxSize, c.BoxSize},
		Periodic:       c.Periodic,
		ExcludeCenter:  c.ExcludeCenter,
		Index:          neighbors.IndexKind(c.Index),
		CenterProperty: c.CenterProperty,
	}
}

// Query converts the configuration into a neighbors.Query.
func (c *Config) Query() neighbors.Query {
	return neighbors.Query{
		CenterHalo: c.CenterHalo,
		Latest:     c.LatestTimestep,
		Earliest:   c.EarliestTimestep,
	}
}
