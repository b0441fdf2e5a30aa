package interpolate

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance is the relative tolerance used to decide whether an axis
// is uniformly spaced.
const DefaultTolerance = 1e-6

// AxisKind tags the representation used by an Axis.
type AxisKind int

const (
	// Uniform axes are stored as a start point and an inverse spacing and are
	// searched in O(1).
	Uniform AxisKind = iota
	// Explicit axes store every point and are searched in O(log n).
	Explicit
)

func (k AxisKind) String() string {
	switch k {
	case Uniform:
		return "uniform"
	case Explicit:
		return "explicit"
	}
	return fmt.Sprintf("AxisKind(%d)", int(k))
}

// Axis is one dimension of an interpolation grid. The zero value is not
// usable; create Axes with NewAxis or NewUniformAxis.
type Axis struct {
	kind AxisKind
	n    int

	// Uniform representation. x1 is the stored maximum so that a point equal
	// to the last grid line is recognized exactly, whichever representation
	// the axis uses.
	x0, x1, invDx float64

	// Explicit representation.
	xs []float64
}

// NewAxis classifies xs as uniform or explicit. xs must be finite, strictly
// increasing, and contain at least two points. If every point lies within
// tol + tol*|x| of the evenly spaced sequence with the same endpoints, the
// axis is stored in its compact uniform form. Otherwise a copy of xs is kept.
func NewAxis(xs []float64, tol float64) (Axis, error) {
	if err := checkAxis(xs); err != nil {
		return Axis{}, err
	}
	if tol < 0 || math.IsNaN(tol) {
		return Axis{}, fmt.Errorf("%w: negative tolerance %g", ErrInvalidAxis, tol)
	}

	n := len(xs)
	lin := floats.Span(make([]float64, n), xs[0], xs[n-1])
	for i := range xs {
		if math.Abs(xs[i]-lin[i]) > tol+tol*math.Abs(lin[i]) {
			return Axis{kind: Explicit, n: n, xs: append([]float64(nil), xs...)}, nil
		}
	}

	return Axis{
		kind:  Uniform,
		n:     n,
		x0:    xs[0],
		x1:    xs[n-1],
		invDx: float64(n-1) / (xs[n-1] - xs[0]),
	}, nil
}

// NewExplicitAxis stores xs explicitly even if it is uniformly spaced.
func NewExplicitAxis(xs []float64) (Axis, error) {
	if err := checkAxis(xs); err != nil {
		return Axis{}, err
	}
	return Axis{kind: Explicit, n: len(xs), xs: append([]float64(nil), xs...)}, nil
}

// NewUniformAxis creates a uniform axis of n points starting at x0 and
// separated by dx.
func NewUniformAxis(x0, dx float64, n int) (Axis, error) {
	if n < 2 {
		return Axis{}, fmt.Errorf("%w: length %d", ErrInvalidAxis, n)
	}
	x1 := x0 + dx*float64(n-1)
	if !(dx > 0) || !isFinite(x0) || !isFinite(x1) {
		return Axis{}, fmt.Errorf(
			"%w: x0 = %g, dx = %g, n = %d", ErrInvalidAxis, x0, dx, n,
		)
	}
	return Axis{kind: Uniform, n: n, x0: x0, x1: x1, invDx: 1 / dx}, nil
}

func checkAxis(xs []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf("%w: length %d", ErrInvalidAxis, len(xs))
	}
	if span := xs[len(xs)-1] - xs[0]; !isFinite(span) {
		return fmt.Errorf(
			"%w: span [%g, %g] overflows float64", ErrInvalidAxis, xs[0], xs[len(xs)-1],
		)
	}
	for i, x := range xs {
		if !isFinite(x) {
			return fmt.Errorf("%w: xs[%d] = %g", ErrInvalidAxis, i, x)
		}
		if i > 0 && !(x > xs[i-1]) {
			return fmt.Errorf(
				"%w: xs[%d] = %g, xs[%d] = %g not strictly increasing",
				ErrInvalidAxis, i-1, xs[i-1], i, x,
			)
		}
	}
	return nil
}

// Kind returns the representation used by the axis.
func (ax *Axis) Kind() AxisKind { return ax.kind }

// Len returns the number of grid lines along the axis.
func (ax *Axis) Len() int { return ax.n }

// Min returns the first grid line.
func (ax *Axis) Min() float64 {
	if ax.kind == Uniform {
		return ax.x0
	}
	return ax.xs[0]
}

// Max returns the last grid line.
func (ax *Axis) Max() float64 {
	if ax.kind == Uniform {
		return ax.x1
	}
	return ax.xs[ax.n-1]
}

// Val returns the i-th grid line.
func (ax *Axis) Val(i int) float64 {
	if ax.kind == Uniform {
		if i == ax.n-1 {
			return ax.x1
		}
		return ax.x0 + float64(i)/ax.invDx
	}
	return ax.xs[i]
}

// Values returns a newly allocated copy of the axis' grid lines.
func (ax *Axis) Values() []float64 {
	out := make([]float64, ax.n)
	for i := range out {
		out[i] = ax.Val(i)
	}
	return out
}

// Locate returns the index of the grid line at or below x and the fractional
// distance of x between that line and the next one. ok is false if x is not
// finite or lies outside [Min(), Max()].
//
// A point exactly at Max() is placed at the top of the last cell,
// (Len() - 2, 1), so that i + 1 is always a valid index.
func (ax *Axis) Locate(x float64) (i int, w float64, ok bool) {
	if ax.kind == Uniform {
		if x == ax.x1 {
			return ax.n - 2, 1, true
		}
		// The negated comparisons also reject NaN.
		if !(x >= ax.x0 && x < ax.x1) {
			return -1, 0, false
		}
		raw := (x - ax.x0) * ax.invDx
		// Points on a grid line snap to it, so that they land at the bottom of
		// the cell above, as they do on an explicit axis. The window covers
		// the rounding error in x - x0 and in the product.
		r := math.Round(raw)
		window := 4 * epsilon * ((math.Abs(x)+math.Abs(ax.x0))*ax.invDx + r)
		if math.Abs(raw-r) <= window {
			raw = r
		}
		fi := math.Floor(raw)
		i = int(fi)
		if i >= ax.n-1 {
			// Only reachable through rounding for x just below x1.
			return ax.n - 2, 1, true
		}
		return i, raw - fi, true
	}

	xs := ax.xs
	last := ax.n - 1
	if x == xs[last] {
		return last - 1, 1, true
	}
	if !(x >= xs[0] && x < xs[last]) {
		return -1, 0, false
	}

	// Invariant: xs[lo] <= x < xs[hi].
	lo, hi := 0, last
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if x >= xs[mid] {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, (x - xs[lo]) / (xs[lo+1] - xs[lo]), true
}

// epsilon is the spacing between 1 and the next float64.
const epsilon = 1.0 / (1 << 52)

func isFinite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
