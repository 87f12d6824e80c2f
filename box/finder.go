package box

import (
	"math"
	"sort"
)

const (
	defaultFinderCells = 250
)

// Index finds the points within a closed sphere around a target position.
// Returned slices hold indices into the point set the Index was built from.
type Index interface {
	Find(pos [3]float64, r float64) []int
}

// Finder finds the points that are within a given radius of a target
// position in a periodic box. It uses a cell list, so it works best when the
// search radius is small compared to the box.
type Finder struct {
	g      *Grid
	gBuf   []int
	idxBuf []int
	x      [][3]float64
	bufi   int
}

// NewFinder creates a new Finder over the points x in a periodic box of width
// L. x does not need to be bounded to [0, L).
func NewFinder(L float64, x [][3]float64) *Finder {
	g := NewGrid(finderCells(len(x)), L, len(x))
	g.Insert(x)

	f := &Finder{
		g:      g,
		gBuf:   make([]int, 0, g.MaxLength()),
		idxBuf: make([]int, len(g.Next)),
		x:      x,
	}

	return f
}

// finderCells picks a grid resolution with roughly one point per cell.
func finderCells(n int) int {
	cells := int(math.Cbrt(float64(n)))
	if cells < 1 {
		return 1
	} else if cells > defaultFinderCells {
		return defaultFinderCells
	}
	return cells
}

// Find returns the indices of every point within r of pos, including points
// at exactly r. The result is sorted. The returned array is an internal
// buffer, so please treat it kindly.
func (sf *Finder) Find(pos [3]float64, r0 float64) []int {
	sf.bufi = 0
	sf.idxBuf = sf.idxBuf[:cap(sf.idxBuf)]

	b := &Bounds{}
	c := sf.g.Cells

	b.SphereBounds(pos, r0, sf.g.cw, c)

	for dz := 0; dz < b.Span[2]; dz++ {
		z := b.Origin[2] + dz
		if z >= c {
			z -= c
		}
		zOff := z * c * c
		for dy := 0; dy < b.Span[1]; dy++ {
			y := b.Origin[1] + dy
			if y >= c {
				y -= c
			}
			yOff := y * c
			for dx := 0; dx < b.Span[0]; dx++ {
				x := b.Origin[0] + dx
				if x >= c {
					x -= c
				}
				idx := zOff + yOff + x

				sf.gBuf = sf.g.ReadIndexes(idx, sf.gBuf)
				sf.addPoints(sf.gBuf, pos[0], pos[1], pos[2], r0, sf.g.Width)
			}
		}
	}

	out := sf.idxBuf[:sf.bufi]
	sort.Ints(out)
	return out
}

func (sf *Finder) addPoints(
	idxs []int, xh, yh, zh, rh float64, L float64,
) {
	for _, j := range idxs {
		sx, sy, sz := sf.x[j][0], sf.x[j][1], sf.x[j][2]
		dx, dy, dz := SymBound(xh-sx, L), SymBound(yh-sy, L), SymBound(zh-sz, L)

		dr2 := dx*dx + dy*dy + dz*dz

		if rh*rh >= dr2 {
			sf.idxBuf[sf.bufi] = j
			sf.bufi++
		}
	}
}
