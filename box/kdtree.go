package box

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// KDTree is an Index backed by a gonum k-d tree. Unlike Finder it has no
// notion of periodicity: callers wrap their points first.
type KDTree struct {
	tree *kdtree.Tree
}

// NewKDTree builds a k-d tree over the points x.
func NewKDTree(x [][3]float64) *KDTree {
	pts := make(points, len(x))
	for i := range x {
		pts[i] = point{x: x[i], i: i}
	}
	return &KDTree{tree: kdtree.New(pts, false)}
}

// Find returns the sorted indices of every point within r of pos, including
// points at exactly r.
func (t *KDTree) Find(pos [3]float64, r float64) []int {
	if t.tree.Root == nil {
		return []int{}
	}

	r2 := r * r
	// The keeper's bound is nudged up so that points at exactly r survive
	// the tree's pruning; the exact test is applied below.
	keep := kdtree.NewDistKeeper(math.Nextafter(r2, math.Inf(1)))
	t.tree.NearestSet(keep, point{x: pos, i: -1})

	out := make([]int, 0, keep.Len())
	for _, c := range keep.Heap {
		p, ok := c.Comparable.(point)
		if !ok || c.Dist > r2 {
			continue
		}
		out = append(out, p.i)
	}
	sort.Ints(out)
	return out
}

// point is a kdtree.Comparable which remembers its position in the input.
type point struct {
	x [3]float64
	i int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.x[d] - q.x[d]
}

func (p point) Dims() int { return 3 }

// Distance returns the squared Euclidean distance, as kdtree expects.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	dx, dy, dz := p.x[0]-q.x[0], p.x[1]-q.x[1], p.x[2]-q.x[2]
	return dx*dx + dy*dy + dz*dz
}

// points is a kdtree.Interface over a slice of point.
type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }
func (p points) Len() int                      { return len(p) }
func (p points) Pivot(d kdtree.Dim) int {
	return plane{points: p, dim: d}.Pivot()
}
func (p points) Slice(start, end int) kdtree.Interface { return p[start:end] }

// plane sorts points along a single dimension.
type plane struct {
	points
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.points[i].x[p.dim] < p.points[j].x[p.dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.points[i], p.points[j] = p.points[j], p.points[i]
}
