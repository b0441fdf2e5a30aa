package interpolate

import (
	"fmt"
	"math"
)

// MaxRank is the largest number of axes a Grid may have.
const MaxRank = 5

// Grid is an immutable regular grid of values. Values are stored in row-major
// order in the order the axes were given: the last axis varies fastest.
//
// A Grid is safe for concurrent use by multiple goroutines.
type Grid struct {
	rank    int
	axes    [MaxRank]Axis
	lens    [MaxRank]int
	strides [MaxRank]int
	vals    []float64
}

// NewGrid assembles axes and vals into a Grid. Both are copied, so the
// caller may reuse its slices afterwards.
func NewGrid(axes []Axis, vals []float64) (*Grid, error) {
	if len(axes) < 1 || len(axes) > MaxRank {
		return nil, fmt.Errorf(
			"%w: %d axes given, but grids must have between 1 and %d",
			ErrDimension, len(axes), MaxRank,
		)
	}

	g := &Grid{rank: len(axes)}
	size := 1
	for k := range axes {
		if axes[k].n < 2 {
			return nil, fmt.Errorf("%w: axis %d is uninitialized", ErrInvalidAxis, k)
		}
		g.axes[k] = axes[k]
		g.lens[k] = axes[k].n
		size *= axes[k].n
	}
	// Unused dimensions behave like length-1 axes which are never stepped
	// along.
	for k := g.rank; k < MaxRank; k++ {
		g.lens[k] = 1
	}

	if size != len(vals) {
		return nil, fmt.Errorf(
			"%w: len(vals) = %d, but axis lengths %v require %d",
			ErrShape, len(vals), g.lens[:g.rank], size,
		)
	}

	stride := 1
	for k := g.rank - 1; k >= 0; k-- {
		g.strides[k] = stride
		stride *= g.lens[k]
	}

	g.vals = append([]float64(nil), vals...)
	return g, nil
}

// Rank returns the number of axes.
func (g *Grid) Rank() int { return g.rank }

// Axis returns a copy of the k-th axis.
func (g *Grid) Axis(k int) Axis { return g.axes[k] }

// Shape returns the length of every axis.
func (g *Grid) Shape() []int { return append([]int(nil), g.lens[:g.rank]...) }

// Strides returns the number of flat buffer positions separating neighboring
// grid points along every axis.
func (g *Grid) Strides() []int { return append([]int(nil), g.strides[:g.rank]...) }

// Bounds returns the [min, max] range of every axis.
func (g *Grid) Bounds() [][2]float64 {
	out := make([][2]float64, g.rank)
	for k := range out {
		out[k] = [2]float64{g.axes[k].Min(), g.axes[k].Max()}
	}
	return out
}

// At returns the stored value at the given grid index.
func (g *Grid) At(idx ...int) float64 {
	if len(idx) != g.rank {
		panic(fmt.Sprintf(
			"Grid.At() given %d indices, but grid has rank %d.", len(idx), g.rank,
		))
	}
	p := 0
	for k, i := range idx {
		p += i * g.strides[k]
	}
	return g.vals[p]
}

// Eval returns the multilinear interpolation of the grid at x. NaN is
// returned if len(x) != Rank() or if any coordinate is non-finite or outside
// its axis.
func (g *Grid) Eval(x ...float64) float64 {
	if len(x) != g.rank {
		return math.NaN()
	}

	var ws [MaxRank]float64
	p := 0
	for k := 0; k < g.rank; k++ {
		i, w, ok := g.axes[k].Locate(x[k])
		if !ok {
			return math.NaN()
		}
		p += i * g.strides[k]
		ws[k] = w
	}

	return g.blend(p, &ws)
}

// blend averages the 2^rank corners of the cell whose lowest corner is at
// flat index p.
//
// Bit j of a corner index selects the upper neighbor along axis rank-1-j, so
// the fastest axis lives in the lowest bit. Axes are collapsed from the
// fastest outward; this order fixes the floating point rounding of the
// result.
func (g *Grid) blend(p int, ws *[MaxRank]float64) float64 {
	var corners [1 << MaxRank]float64
	n := 1 << g.rank

	for c := 0; c < n; c++ {
		off := p
		for j := 0; j < g.rank; j++ {
			if c&(1<<j) != 0 {
				off += g.strides[g.rank-1-j]
			}
		}
		corners[c] = g.vals[off]
	}

	for k := g.rank - 1; k >= 0; k-- {
		w := ws[k]
		n >>= 1
		for c := 0; c < n; c++ {
			corners[c] = corners[2*c]*(1-w) + corners[2*c+1]*w
		}
	}

	return corners[0]
}
