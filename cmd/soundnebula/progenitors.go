package main

import (
	"github.com/spf13/cobra"

	"github.com/adam-broussard/SoundNebula/neighbors"
)

func newProgenitorsCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "progenitors",
		Short: "Follow a halo's main progenitor line back in time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.LatestTimestep == "" {
				return errMissing("latest-timestep")
			}
			cat, sim, err := a.openSimulation()
			if err != nil {
				return err
			}
			defer cat.Close()

			steps, err := sim.Timesteps()
			if err != nil {
				return err
			}
			latest := a.cfg.LatestTimestep
			b, err := neighbors.ResolveBounds(steps, latest, latest)
			if err != nil {
				return err
			}
			center, err := b.Latest.Halo(a.cfg.CenterHalo)
			if err != nil {
				return err
			}

			chain, err := neighbors.Progenitors(center, limit)
			if err != nil {
				return err
			}

			w := &errWriter{w: cmd.OutOrStdout()}
			w.printf("# Main progenitors of halo %d in %s\n",
				center.Number(), b.Latest.Label())
			w.printf("# 0 - Timestep\n")
			w.printf("# 1 - Redshift\n")
			w.printf("# 2 - Halo number\n")
			for _, h := range chain {
				ts := h.Timestep()
				w.printf("%-24s %10.4f %10d\n", ts.Label(), ts.Redshift(), h.Number())
			}
			return w.err
		},
	}

	addCenterFlags(cmd)
	cmd.Flags().IntVar(&limit, "max", 0, "maximum chain length (0 for no limit)")
	return cmd
}
