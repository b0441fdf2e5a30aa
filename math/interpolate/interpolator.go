/*package interpolate implements multilinear interpolation over regular grids
with between one and five dimensions.

Every axis of a grid may be uniformly or irregularly spaced. Uniform axes are
detected automatically and searched in constant time. Points which cannot be
interpolated (non-finite coordinates or coordinates outside the grid) evaluate
to NaN rather than panicking, so that impossible points propagate through
chains of calculations.

Interpolators are immutable once constructed and may be shared freely between
goroutines.
*/
package interpolate

// Interpolator is a 1D interpolator.
type Interpolator interface {
	// Eval evaluates the interpolator at x.
	Eval(x float64) float64
}

var (
	_ Interpolator = &Linear{}
)

// BiInterpolator is a 2D interpolator.
type BiInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y float64) float64
}

var (
	_ BiInterpolator = &BiLinear{}
)

// TriInterpolator is a 3D interpolator.
type TriInterpolator interface {
	// Eval evaluates the interpolator at a point.
	Eval(x, y, z float64) float64
}

var (
	_ TriInterpolator = &TriLinear{}
)

// MultiInterpolator is an interpolator whose rank is only known at runtime.
type MultiInterpolator interface {
	// Eval evaluates the interpolator at a point with Rank() coordinates.
	Eval(x ...float64) float64
	// Rank returns the number of coordinates Eval expects.
	Rank() int
}

var (
	_ MultiInterpolator = &MultiLinear{}
	_ MultiInterpolator = &Grid{}
)
