// soundnebula finds the halos surrounding a halo at every timestep of its
// main progenitor line.
//
// Usage:
//
//	soundnebula neighbors --simulation h148 --center-halo 1 \
//	    --latest-timestep 4096 --earliest-timestep 640 --region-size 500
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
