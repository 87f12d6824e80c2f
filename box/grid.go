package box

import (
	"math"
)

// Grid is a cell list over a periodic cube of width Width that has been split
// into Cells^3 cubic cells. Each cell stores a linked list of point indices:
// Heads[c] is the first point in cell c and Next[i] is the point after i, with
// -1 ending the list.
type Grid struct {
	Cells int
	Width float64
	Heads []int
	Next  []int

	cw float64
}

// NewGrid creates an empty grid with the given number of cells on a side,
// total width, and capacity for n points.
func NewGrid(cells int, width float64, n int) *Grid {
	g := &Grid{
		Cells: cells,
		Width: width,
		Heads: make([]int, cells*cells*cells),
		Next:  make([]int, n),
		cw:    width / float64(cells),
	}
	for i := range g.Heads {
		g.Heads[i] = -1
	}
	for i := range g.Next {
		g.Next[i] = -1
	}
	return g
}

// Insert adds the points x to the grid. Point i must satisfy i < len(g.Next).
// Points outside [0, Width) are placed in the cell of their periodic image.
func (g *Grid) Insert(x [][3]float64) {
	for i := range x {
		c := g.CellIndex(x[i])
		g.Next[i] = g.Heads[c]
		g.Heads[c] = i
	}
}

// CellIndex returns the index of the cell containing the point x, in the form
// ix + iy*cells + iz*cells^2.
func (g *Grid) CellIndex(x [3]float64) int {
	idx := [3]int{}
	for k := 0; k < 3; k++ {
		idx[k] = periodicCell(int(math.Floor(x[k]/g.cw)), g.Cells)
	}
	return idx[0] + idx[1]*g.Cells + idx[2]*g.Cells*g.Cells
}

// ReadIndexes appends the indices of all the points in cell idx to
// buf[:0] and returns the result.
func (g *Grid) ReadIndexes(idx int, buf []int) []int {
	buf = buf[:0]
	for i := g.Heads[idx]; i != -1; i = g.Next[i] {
		buf = append(buf, i)
	}
	return buf
}

// MaxLength returns the number of points in the most crowded cell.
func (g *Grid) MaxLength() int {
	max := 0
	for c := range g.Heads {
		n := 0
		for i := g.Heads[c]; i != -1; i = g.Next[i] {
			n++
		}
		if n > max {
			max = n
		}
	}
	return max
}
