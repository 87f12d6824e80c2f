package box

import (
	"math"
)

// Bounds is a cell-aligned bounding box.
type Bounds struct {
	Origin, Span [3]int
}

// SphereBounds creates a cell-aligned bounding box around a non-aligned
// sphere within a box with periodic boundary conditions. The box is split
// into cells cells of width cw along each side. Spans never exceed the
// number of cells, so no cell is visited twice.
func (b *Bounds) SphereBounds(pos [3]float64, r, cw float64, cells int) {
	for i := 0; i < 3; i++ {
		minCell := int(math.Floor((pos[i] - r) / cw))
		maxCell := int(math.Floor((pos[i] + r) / cw))

		span := maxCell - minCell + 1
		if span >= cells {
			b.Origin[i], b.Span[i] = 0, cells
			continue
		}

		b.Origin[i] = periodicCell(minCell, cells)
		b.Span[i] = span
	}
}

// periodicCell maps an unbounded cell index onto [0, cells).
func periodicCell(i, cells int) int {
	i %= cells
	if i < 0 {
		i += cells
	}
	return i
}
