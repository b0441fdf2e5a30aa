package interpolate

import "errors"

// Construction errors. Evaluation never returns an error: points which cannot
// be interpolated evaluate to NaN instead.
var (
	// ErrInvalidAxis is returned for axes which are shorter than two points,
	// contain non-finite values, or are not strictly increasing.
	ErrInvalidAxis = errors.New("interpolate: invalid axis")
	// ErrDimension is returned when the number of axes is outside [1, MaxRank].
	ErrDimension = errors.New("interpolate: unsupported dimension")
	// ErrShape is returned when the number of values doesn't match the
	// product of the axis lengths.
	ErrShape = errors.New("interpolate: shape mismatch")
)
