/*package grid loads the tabulated model grids which are interpolated over
during fits.

A grid is described by a Spec and stored as a whitespace-separated text table
whose columns are the Spec's inputs followed by its outputs. Rows walk the
grid's vertices in row-major order, with the last input varying fastest. The
first comment line of the form

    # grid_spec: x, y -> v1, v2; g1, g2

identifies a file as a grid.
*/
package grid

import (
	"fmt"

	"github.com/phil-mansfield/starlord/math/interpolate"
)

// Dataset is a named grid held in memory.
type Dataset struct {
	Name string
	Spec Spec
	// Axes[k] holds the coordinates of the k-th input.
	Axes [][]float64
	// Columns maps every output name to its values, one per vertex in
	// row-major order.
	Columns map[string][]float64
}

// Shape returns the length of every axis.
func (d *Dataset) Shape() []int {
	shape := make([]int, len(d.Axes))
	for k := range d.Axes {
		shape[k] = len(d.Axes[k])
	}
	return shape
}

// Size returns the number of grid vertices.
func (d *Dataset) Size() int {
	if len(d.Axes) == 0 {
		return 0
	}
	size := 1
	for k := range d.Axes {
		size *= len(d.Axes[k])
	}
	return size
}

// Bounds returns the [min, max] range of every input.
func (d *Dataset) Bounds() [][2]float64 {
	out := make([][2]float64, len(d.Axes))
	for k, xs := range d.Axes {
		if len(xs) > 0 {
			out[k] = [2]float64{xs[0], xs[len(xs)-1]}
		}
	}
	return out
}

// Validate checks that the Dataset's axes and columns agree with its Spec
// and with each other.
func (d *Dataset) Validate() error {
	if len(d.Axes) != len(d.Spec.Inputs) {
		return fmt.Errorf(
			"%w: grid %s has %d axes, but %d inputs",
			ErrColumn, d.Name, len(d.Axes), len(d.Spec.Inputs),
		)
	} else if len(d.Axes) < 1 || len(d.Axes) > interpolate.MaxRank {
		return fmt.Errorf(
			"%w: grid %s has %d inputs", interpolate.ErrDimension, d.Name, len(d.Axes),
		)
	}

	for k, xs := range d.Axes {
		if _, err := interpolate.NewExplicitAxis(xs); err != nil {
			return fmt.Errorf("grid %s, input %s: %w", d.Name, d.Spec.Inputs[k], err)
		}
	}

	size := d.Size()
	for _, name := range d.Spec.Outputs {
		col, ok := d.Columns[name]
		if !ok {
			return fmt.Errorf("%w: grid %s has no column %s", ErrColumn, d.Name, name)
		} else if len(col) != size {
			return fmt.Errorf(
				"%w: column %s of grid %s has %d values, but shape %v needs %d",
				ErrColumn, name, d.Name, len(col), d.Shape(), size,
			)
		}
	}
	return nil
}

// Build returns an interpolator over the given output column. Axes which are
// uniform to within tol get constant-time lookups.
func (d *Dataset) Build(output string, tol float64) (*interpolate.MultiLinear, error) {
	if !d.Spec.HasOutput(output) {
		return nil, fmt.Errorf("%w: %s is not an output of %s", ErrColumn, output, d)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return interpolate.NewMultiLinear(d.Axes, d.Columns[output], tol)
}

// BuildAll returns one interpolator per requested output, in order.
func (d *Dataset) BuildAll(outputs []string, tol float64) ([]*interpolate.MultiLinear, error) {
	out := make([]*interpolate.MultiLinear, len(outputs))
	for i, name := range outputs {
		ml, err := d.Build(name, tol)
		if err != nil {
			return nil, err
		}
		out[i] = ml
	}
	return out, nil
}

func (d *Dataset) String() string {
	return fmt.Sprintf("Grid_%s(%s)", d.Name, d.Spec)
}
