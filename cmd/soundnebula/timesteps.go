package main

import (
	"github.com/spf13/cobra"
)

func newTimestepsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "timesteps",
		Short: "List the timesteps of a simulation, earliest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, sim, err := a.openSimulation()
			if err != nil {
				return err
			}
			defer cat.Close()

			steps, err := sim.Timesteps()
			if err != nil {
				return err
			}

			w := &errWriter{w: cmd.OutOrStdout()}
			w.printf("# Timesteps of %s\n", sim.Name())
			w.printf("# 0 - Index\n")
			w.printf("# 1 - Timestep\n")
			w.printf("# 2 - Redshift\n")
			w.printf("# 3 - Time [Gyr]\n")
			for i, ts := range steps {
				w.printf("%5d %-24s %10.4f %10.4f\n",
					i, ts.Label(), ts.Redshift(), ts.Time())
			}
			return w.err
		},
	}
}
