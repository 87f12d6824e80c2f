package property

import (
	"gonum.org/v1/gonum/floats"

	"github.com/adam-broussard/SoundNebula/catalog"
)

// DefaultCenter is the Tangos property holding shrinking-sphere centers.
const DefaultCenter = "shrink_center"

// Distance is the distance of a halo's center from the origin of the
// simulation box.
type Distance struct {
	CenterProperty string
}

func (d Distance) Name() string { return "distance" }

func (d Distance) Calculate(h catalog.Halo) (float64, error) {
	name := d.CenterProperty
	if name == "" {
		name = DefaultCenter
	}

	v, err := h.Calculate(name)
	if err != nil {
		return 0, err
	}
	x, err := catalog.Vector(name, v)
	if err != nil {
		return 0, err
	}
	return floats.Norm(x[:], 2), nil
}
