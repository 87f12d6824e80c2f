package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/adam-broussard/SoundNebula/neighbors"
)

func newNeighborsCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "neighbors",
		Short: "List the halos within a radius of a halo at every timestep",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.Validate(); err != nil {
				return err
			}
			cat, sim, err := a.openSimulation()
			if err != nil {
				return err
			}
			defer cat.Close()

			h, err := neighbors.New(sim, a.cfg.Options(), a.log)
			if err != nil {
				return err
			}

			res, err := h.Run(a.cfg.Query())
			if errors.Is(err, neighbors.ErrProgenitorExhausted) {
				a.log.Warn("Progenitor line ended early", zap.Error(err))
			}
			if res != nil && len(res.Steps) > 0 {
				out := cmd.OutOrStdout()
				var werr error
				if asJSON {
					werr = writeResultJSON(out, res)
				} else {
					werr = writeResult(out, res, a.cfg.CenterHalo)
				}
				if werr != nil {
					return werr
				}
			}
			return err
		},
	}

	addRangeFlags(cmd)
	f := cmd.Flags()
	f.Float64("region-size", 0, "comoving search radius")
	f.Float64("box-size", neighbors.DefaultBoxSize, "comoving box width")
	f.Bool("periodic", true, "wrap offsets periodically")
	f.Bool("exclude-center", false, "leave the center halo out of its own list")
	f.String("index", string(neighbors.IndexKDTree), "spatial index: kdtree or grid")
	f.BoolVar(&asJSON, "json", false, "write JSON instead of text")
	return cmd
}

func writeResult(w io.Writer, res *neighbors.Result, centerHalo int) error {
	bw := &errWriter{w: w}
	bw.printf("# Halos within %g of halo %d in %s\n",
		res.RegionSize, centerHalo, res.Simulation)
	bw.printf("# 0 - Timestep\n")
	bw.printf("# 1 - Redshift\n")
	bw.printf("# 2 - Time [Gyr]\n")
	bw.printf("# 3 - Center halo\n")
	bw.printf("# 4 - Surrounding halos\n")
	for _, s := range res.Steps {
		bw.printf("%-24s %10.4f %10.4f %10d %s\n",
			s.Label, s.Redshift, s.Time, s.Center, joinInts(s.Halos))
	}
	return bw.err
}

func writeResultJSON(w io.Writer, res *neighbors.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func joinInts(xs []int) string {
	if len(xs) == 0 {
		return "-"
	}
	strs := make([]string, len(xs))
	for i := range xs {
		strs[i] = strconv.Itoa(xs[i])
	}
	return strings.Join(strs, ",")
}

// errWriter remembers the first write error so that a run of printf calls
// only needs a single check.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
