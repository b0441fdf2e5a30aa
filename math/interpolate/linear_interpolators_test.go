package interpolate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(x, y, z float64) float64 {
	return 2*x + 3*y + 5*z
}

func TestUniformTriLinear(t *testing.T) {
	minVal := 0.0
	n := 11
	step := 0.1
	vals := make([]float64, n*n*n)
	idx := 0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				vals[idx] = value(minVal+float64(i)*step, minVal+float64(j)*step, minVal+float64(k)*step)
				idx++
			}
		}
	}
	interp, err := NewUniformTriLinear(
		minVal, step, n,
		minVal, step, n,
		minVal, step, n,
		vals,
	)
	require.NoError(t, err)

	eps := 1e-12
	// points on the grid should work
	assert.InDelta(t, value(0.5, 0.5, 0.5), interp.Eval(0.5, 0.5, 0.5), eps, "on grid")
	// points just off the grid should also work
	assert.InDelta(t, value(0.51, 0.50, 0.50), interp.Eval(0.51, 0.50, 0.50), eps, "nearby x")
	assert.InDelta(t, value(0.50, 0.51, 0.50), interp.Eval(0.50, 0.51, 0.50), eps, "nearby y")
	assert.InDelta(t, value(0.50, 0.50, 0.51), interp.Eval(0.50, 0.50, 0.51), eps, "nearby z")
	// points on the edge of the grid should work
	assert.InDelta(t, value(0, 0, 0), interp.Eval(0, 0, 0), eps, "grid edge")
	assert.InDelta(t, value(0.01, 0, 0), interp.Eval(0.01, 0, 0), eps, "grid edge nearby x")
	assert.InDelta(t, value(1, 1, 1), interp.Eval(1, 1, 1), eps, "far grid edge")
	// and points off the grid shouldn't
	assert.True(t, math.IsNaN(interp.Eval(1.01, 0.5, 0.5)), "past x")
	assert.True(t, math.IsNaN(interp.Eval(0.5, -0.01, 0.5)), "before y")
}

func TestTriLinearExplicit(t *testing.T) {
	xs := []float64{0, 0.1, 0.5, 0.6, 1}
	ys := []float64{-1, 0, 2}
	zs := []float64{3, 4}
	vals := make([]float64, 0, len(xs)*len(ys)*len(zs))
	for _, x := range xs {
		for _, y := range ys {
			for _, z := range zs {
				vals = append(vals, value(x, y, z))
			}
		}
	}
	interp, err := NewTriLinear(xs, ys, zs, vals)
	require.NoError(t, err)

	table := []struct{ x, y, z float64 }{
		{0, -1, 3}, {1, 2, 4}, {0.3, 0.5, 3.5}, {0.55, -0.2, 3.9}, {0.99, 1.7, 3},
	}
	for i, test := range table {
		res := interp.Eval(test.x, test.y, test.z)
		if math.Abs(res-value(test.x, test.y, test.z)) > 1e-12 {
			t.Errorf("%d) Expected %g. Got %g.", i, value(test.x, test.y, test.z), res)
		}
	}
}

func TestLinear(t *testing.T) {
	lin, err := NewLinear([]float64{1, 3}, []float64{2, 6})
	require.NoError(t, err)
	assert.Equal(t, 4.0, lin.Eval(2))
	assert.Equal(t, 2.0, lin.Eval(1))
	assert.Equal(t, 6.0, lin.Eval(3))
	assert.True(t, math.IsNaN(lin.Eval(3.0000001)))

	_, err = NewLinear([]float64{1, 2, 3}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrShape)

	unif, err := NewUniformLinear(-1, 0.5, []float64{0, 1, 4, 9})
	require.NoError(t, err)
	assert.InDelta(t, 6.5, unif.Eval(0.25), 1e-12)
	assert.InDelta(t, 0.5, unif.Eval(-0.75), 1e-12)
	assert.Equal(t, 9.0, unif.Eval(0.5))
}

func TestBiLinear(t *testing.T) {
	// vals[ix*ny + iy]
	vals := []float64{0, 1, 10, 11, 20, 21}
	bi, err := NewBiLinear([]float64{0, 1, 2}, []float64{0, 1}, vals)
	require.NoError(t, err)
	unif, err := NewUniformBiLinear(0, 1, 3, 0, 1, 2, vals)
	require.NoError(t, err)

	for _, intr := range []BiInterpolator{bi, unif} {
		assert.Equal(t, 5.0, intr.Eval(0.5, 0))
		assert.Equal(t, 11.0, intr.Eval(1, 1))
		assert.Equal(t, 20.5, intr.Eval(2, 0.5))
		assert.True(t, math.IsNaN(intr.Eval(2.01, 0)))
	}

	_, err = NewUniformBiLinear(0, 1, 3, 0, 1, 3, vals)
	assert.ErrorIs(t, err, ErrShape)
	_, err = NewUniformBiLinear(0, -1, 3, 0, 1, 2, vals)
	assert.ErrorIs(t, err, ErrInvalidAxis)
}

func TestNewMultiLinearErrors(t *testing.T) {
	table := []struct {
		axes [][]float64
		vals []float64
		err  error
	}{
		{nil, nil, ErrDimension},
		{[][]float64{{0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 1}, {0, 1}}, make([]float64, 64), ErrDimension},
		{[][]float64{{0}}, []float64{1}, ErrInvalidAxis},
		{[][]float64{{0, 1, 1}}, []float64{1, 2, 3}, ErrInvalidAxis},
		{[][]float64{{0, 2, 1}}, []float64{1, 2, 3}, ErrInvalidAxis},
		{[][]float64{{0, math.NaN()}}, []float64{1, 2}, ErrInvalidAxis},
		{[][]float64{{0, math.Inf(1)}}, []float64{1, 2}, ErrInvalidAxis},
		{[][]float64{{0, 1}, {0, 1, 2}}, make([]float64, 5), ErrShape},
		{[][]float64{{0, 1}, {0, 1, 2}}, make([]float64, 7), ErrShape},
	}

	for i, test := range table {
		_, err := NewMultiLinear(test.axes, test.vals, DefaultTolerance)
		if !assert.ErrorIs(t, err, test.err) {
			t.Errorf("%d) Expected %v. Got %v.", i, test.err, err)
		}
	}
}

func TestNewMultiLinearCopiesInputs(t *testing.T) {
	xs := []float64{0, 1, 3}
	vals := []float64{0, 1, 2}
	ml, err := NewMultiLinear([][]float64{xs}, vals, DefaultTolerance)
	require.NoError(t, err)

	xs[2] = 100
	vals[1] = -7
	assert.InDelta(t, 1.5, ml.Eval(2), 1e-12)
	ax := ml.Axis(0)
	assert.Equal(t, 3.0, ax.Max())
}
