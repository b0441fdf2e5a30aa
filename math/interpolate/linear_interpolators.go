package interpolate

import (
	"fmt"
)

////////////////////////////////
// MultiLinear Implementation //
////////////////////////////////

// MultiLinear is a multilinear interpolator over a grid with between one and
// MaxRank dimensions.
type MultiLinear struct {
	*Grid
}

// NewMultiLinear creates a multilinear interpolator for the grid spanned by
// axes, where vals holds the grid values in row-major order (the last axis
// varies fastest). Each axis must be strictly increasing. Axes which are
// uniform to within tol are searched in O(1), all others in O(log n).
func NewMultiLinear(axes [][]float64, vals []float64, tol float64) (*MultiLinear, error) {
	if len(axes) < 1 || len(axes) > MaxRank {
		return nil, fmt.Errorf(
			"%w: %d axes given, but grids must have between 1 and %d",
			ErrDimension, len(axes), MaxRank,
		)
	}

	encoded := make([]Axis, len(axes))
	for k, xs := range axes {
		ax, err := NewAxis(xs, tol)
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", k, err)
		}
		encoded[k] = ax
	}

	g, err := NewGrid(encoded, vals)
	if err != nil {
		return nil, err
	}
	return &MultiLinear{g}, nil
}

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a linear interpolator.
type Linear struct {
	g *Grid
}

// NewLinear creates a linear interpolator for a sequence of strictly
// increasing points, xs, which take on the values given by vals.
//
// Lookups will occur in O(1) if xs is uniformly spaced and O(log |xs|)
// otherwise.
func NewLinear(xs, vals []float64) (*Linear, error) {
	if len(xs) != len(vals) {
		return nil, fmt.Errorf(
			"%w: len(xs) = %d, but len(vals) = %d", ErrShape, len(xs), len(vals),
		)
	}
	ax, err := NewAxis(xs, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	g, err := NewGrid([]Axis{ax}, vals)
	if err != nil {
		return nil, err
	}
	return &Linear{g}, nil
}

// NewUniformLinear creates a linear interpolator over a uniformly spaced
// sequence of x values starting at x0 and separated by dx, whose values are
// given by vals.
//
// Lookups will be O(1).
func NewUniformLinear(x0, dx float64, vals []float64) (*Linear, error) {
	ax, err := NewUniformAxis(x0, dx, len(vals))
	if err != nil {
		return nil, err
	}
	g, err := NewGrid([]Axis{ax}, vals)
	if err != nil {
		return nil, err
	}
	return &Linear{g}, nil
}

// Eval returns the interpolated value at x, or NaN if x is outside the
// supplied range.
func (lin *Linear) Eval(x float64) float64 { return lin.g.Eval(x) }

/////////////////////////////
// BiLinear Implementation //
/////////////////////////////

// BiLinear is a bi-linear interpolator. vals is indexed as vals[ix*ny + iy].
type BiLinear struct {
	g *Grid
}

func NewBiLinear(xs, ys, vals []float64) (*BiLinear, error) {
	ml, err := NewMultiLinear([][]float64{xs, ys}, vals, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	return &BiLinear{ml.Grid}, nil
}

func NewUniformBiLinear(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	vals []float64,
) (*BiLinear, error) {
	g, err := uniformGrid(
		[]float64{x0, y0}, []float64{dx, dy}, []int{nx, ny}, vals,
	)
	if err != nil {
		return nil, err
	}
	return &BiLinear{g}, nil
}

func (bi *BiLinear) Eval(x, y float64) float64 { return bi.g.Eval(x, y) }

//////////////////////////////
// TriLinear Implementation //
//////////////////////////////

// TriLinear is a tri-linear interpolator. vals is indexed as
// vals[(ix*ny + iy)*nz + iz].
type TriLinear struct {
	g *Grid
}

func NewTriLinear(xs, ys, zs, vals []float64) (*TriLinear, error) {
	ml, err := NewMultiLinear([][]float64{xs, ys, zs}, vals, DefaultTolerance)
	if err != nil {
		return nil, err
	}
	return &TriLinear{ml.Grid}, nil
}

func NewUniformTriLinear(
	x0, dx float64, nx int,
	y0, dy float64, ny int,
	z0, dz float64, nz int,
	vals []float64,
) (*TriLinear, error) {
	g, err := uniformGrid(
		[]float64{x0, y0, z0}, []float64{dx, dy, dz}, []int{nx, ny, nz}, vals,
	)
	if err != nil {
		return nil, err
	}
	return &TriLinear{g}, nil
}

func (tri *TriLinear) Eval(x, y, z float64) float64 { return tri.g.Eval(x, y, z) }

func uniformGrid(x0s, dxs []float64, ns []int, vals []float64) (*Grid, error) {
	axes := make([]Axis, len(ns))
	for k := range ns {
		ax, err := NewUniformAxis(x0s[k], dxs[k], ns[k])
		if err != nil {
			return nil, fmt.Errorf("axis %d: %w", k, err)
		}
		axes[k] = ax
	}
	return NewGrid(axes, vals)
}
