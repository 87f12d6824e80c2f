package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adam-broussard/SoundNebula/config"
	"github.com/adam-broussard/SoundNebula/interp"
	"github.com/adam-broussard/SoundNebula/neighbors"
	"github.com/adam-broussard/SoundNebula/property"
)

func errMissing(flag string) error {
	return fmt.Errorf("%w: --%s must be set", config.ErrInvalid, flag)
}

func newHistoryCmd(a *app) *cobra.Command {
	var (
		name    string
		samples []float64
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Evaluate a property along a halo's progenitor line",
		Long: `Evaluate a property along a halo's progenitor line. With --at, the
property is linearly interpolated in time onto the given times (in Gyr).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.LatestTimestep == "" {
				return errMissing("latest-timestep")
			} else if a.cfg.EarliestTimestep == "" {
				return errMissing("earliest-timestep")
			}

			p, err := property.Lookup(name, a.cfg.CenterProperty)
			if err != nil {
				return err
			}
			cat, sim, err := a.openSimulation()
			if err != nil {
				return err
			}
			defer cat.Close()

			time, vals, err := neighbors.History(sim, a.cfg.Query(), p)
			if errors.Is(err, neighbors.ErrProgenitorExhausted) {
				a.log.Warn("Progenitor line ended early", zap.Error(err))
			} else if err != nil {
				return err
			}
			histErr := err

			if len(samples) > 0 {
				if time, vals, err = interp.Interpolate(vals, time, samples); err != nil {
					return err
				}
			}

			w := &errWriter{w: cmd.OutOrStdout()}
			w.printf("# %s of halo %d in %s\n", p.Name(), a.cfg.CenterHalo, sim.Name())
			w.printf("# 0 - Time [Gyr]\n")
			w.printf("# 1 - %s\n", p.Name())
			for i := range time {
				w.printf("%10.4f %14.6g\n", time[i], vals[i])
			}
			if w.err != nil {
				return w.err
			}
			return histErr
		},
	}

	addRangeFlags(cmd)
	f := cmd.Flags()
	f.StringVar(&name, "property", "distance", "property to evaluate")
	f.Float64SliceVar(&samples, "at", nil, "times [Gyr] to interpolate onto")
	return cmd
}
