package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adam-broussard/SoundNebula/catalog"
	"github.com/adam-broussard/SoundNebula/catalog/ascii"
	"github.com/adam-broussard/SoundNebula/catalog/tangos"
	"github.com/adam-broussard/SoundNebula/config"
	"github.com/adam-broussard/SoundNebula/neighbors"
)

// app is the state shared by every subcommand.
type app struct {
	configFile string
	cfg        *config.Config
	log        *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "soundnebula",
		Short:        "Find the halos surrounding a halo along its progenitor line",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			log, err := newLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg, a.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "YAML config file")
	pf.String("backend", config.BackendTangos, "catalogue backend: tangos or ascii")
	pf.String("database", "", "Tangos database (default: $"+tangos.EnvConnection+" or data.db)")
	pf.String("catalogue-dir", "", "directory of text catalogues for the ascii backend")
	pf.String("simulation", "", "simulation name")
	pf.String("center-property", neighbors.DefaultCenterProperty, "catalogue property holding halo centers")
	pf.String("log-level", "info", "log level: debug, info, warn or error")

	root.AddCommand(
		newNeighborsCmd(a),
		newTimestepsCmd(a),
		newProgenitorsCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// addCenterFlags adds the flags that pick a center halo.
func addCenterFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Int("center-halo", 1, "halo number of the center halo in the latest timestep")
	f.String("latest-timestep", "", "lowest-redshift timestep (label or snapshot number)")
}

// addRangeFlags adds the flags that pick a center halo and a timestep range.
func addRangeFlags(cmd *cobra.Command) {
	addCenterFlags(cmd)
	cmd.Flags().String("earliest-timestep", "", "highest-redshift timestep (label or snapshot number)")
}

func newLogger(level string) (*zap.Logger, error) {
	zcfg, err := loggerConfig(level)
	if err != nil {
		return nil, err
	}
	return zcfg.Build()
}

// loggerConfig returns zap's development config at debug level and its
// production config otherwise, both writing console lines to stderr.
func loggerConfig(level string) (zap.Config, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zap.Config{}, fmt.Errorf("log level: %w", err)
	}
	zcfg := zap.NewProductionConfig()
	if lvl <= zapcore.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zcfg, nil
}

// openSimulation opens the configured catalogue and looks up the configured
// simulation. The caller must close the returned Catalog.
func (a *app) openSimulation() (catalog.Catalog, catalog.Simulation, error) {
	if err := a.cfg.ValidateCatalogue(); err != nil {
		return nil, nil, err
	}

	var (
		cat catalog.Catalog
		err error
	)
	switch a.cfg.Backend {
	case config.BackendTangos:
		var c *tangos.Catalog
		if c, err = tangos.Open(a.cfg.Database); err == nil {
			cat = c
		}
	case config.BackendASCII:
		var c *ascii.Catalog
		if c, err = ascii.Open(a.cfg.CatalogueDir); err == nil {
			cat = c
		}
	}
	if err != nil {
		return nil, nil, err
	}

	sim, err := cat.Simulation(a.cfg.Simulation)
	if err != nil {
		cat.Close()
		return nil, nil, err
	}
	a.log.Debug("Opened simulation",
		zap.String("backend", a.cfg.Backend),
		zap.String("simulation", sim.Name()))
	return cat, sim, nil
}
