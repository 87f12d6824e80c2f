package neighbors

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is matched by every error caused by bad handler input.
	ErrConfig = errors.New("neighbors: configuration error")

	ErrTimestepNotFound  = fmt.Errorf("%w: no timestep matches", ErrConfig)
	ErrAmbiguousTimestep = fmt.Errorf("%w: several timesteps match", ErrConfig)
	ErrBoundsOrder       = fmt.Errorf("%w: latest timestep is earlier than earliest timestep", ErrConfig)
	ErrUnknownIndex      = fmt.Errorf("%w: unknown spatial index", ErrConfig)
	ErrBadOptions        = fmt.Errorf("%w: invalid options", ErrConfig)

	// ErrProgenitorExhausted is returned by walks which run out of
	// progenitor history before reaching the earliest requested timestep.
	ErrProgenitorExhausted = errors.New("neighbors: progenitor history exhausted")
)
