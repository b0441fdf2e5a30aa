package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"

	plt "github.com/phil-mansfield/pyplot"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/phil-mansfield/starlord/grid"
	"github.com/phil-mansfield/starlord/math/interpolate"
)

// EvalResult is the value of one output at one point.
type EvalResult struct {
	Grid   string  `json:"grid" yaml:"grid"`
	Output string  `json:"output" yaml:"output"`
	X      []Float `json:"x" yaml:"x"`
	Value  Float   `json:"value" yaml:"value"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <grid> <output> <x>...",
		Short: "Interpolate a grid output at a point",
		Long: `Interpolate one output of a stored grid at a point, given one coordinate per
input in the grid's input order. Points outside the grid evaluate to NaN.

Flags must come before the grid name so that negative coordinates aren't
mistaken for flags.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := parseFloats(args[2:])
			if err != nil {
				return err
			}

			d, err := rootOpts.loadGrid(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(x) != len(d.Spec.Inputs) {
				return fmt.Errorf(
					"%s needs %d coordinates (%v), but %d were given",
					d, len(d.Spec.Inputs), d.Spec.Inputs, len(x),
				)
			}

			ml, err := d.Build(args[1], rootOpts.Config.Tolerance)
			if err != nil {
				return err
			}

			v := ml.Eval(x...)
			if math.IsNaN(v) {
				logrus.WithFields(logrus.Fields{
					"grid": d.Name, "x": x, "bounds": ml.Bounds(),
				}).Warn("Point is outside the grid.")
			}

			res := &EvalResult{
				Grid: d.Name, Output: args[1], X: floatSlice(x), Value: Float(v),
			}
			return rootOpts.formatter(cmd).Print(res, func(w io.Writer) {
				fmt.Fprintf(w, "%g\n", v)
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// SliceResult is an output sampled along one input with the others held
// fixed.
type SliceResult struct {
	Grid   string  `json:"grid" yaml:"grid"`
	Output string  `json:"output" yaml:"output"`
	Axis   string  `json:"axis" yaml:"axis"`
	At     []Float `json:"at" yaml:"at"`
	X      []Float `json:"x" yaml:"x"`
	Y      []Float `json:"y" yaml:"y"`
}

// slice samples ml at n evenly spaced points along axis k, holding the
// other coordinates at the values in at.
func slice(ml *interpolate.MultiLinear, k int, at []float64, n int) (xs, ys []float64) {
	ax := ml.Axis(k)
	xs = floats.Span(make([]float64, n), ax.Min(), ax.Max())
	ys = make([]float64, n)

	x := append([]float64(nil), at...)
	for i := range xs {
		x[k] = xs[i]
		ys[i] = ml.Eval(x...)
	}
	return xs, ys
}

// axisIndex resolves an input given by name or by index.
func axisIndex(d *grid.Dataset, s string) (int, error) {
	for k, name := range d.Spec.Inputs {
		if name == s {
			return k, nil
		}
	}
	k, err := strconv.Atoi(s)
	if err != nil || k < 0 || k >= len(d.Spec.Inputs) {
		return 0, fmt.Errorf("%s has no input %q", d, s)
	}
	return k, nil
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		axis   string
		at     []float64
		points int
		out    string
	)

	cmd := &cobra.Command{
		Use:   "plot <grid> <output>",
		Short: "Plot a one-dimensional slice through a grid",
		Long: `Sample one output of a stored grid along a single input while every other
input is held fixed. The slice is plotted with matplotlib to --out, or printed
if --out isn't given.

--at gives one coordinate per input. The coordinate of the sliced input is
ignored. By default every input is held at the middle of its range.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if points < 2 {
				return fmt.Errorf("--points must be at least 2, but is %d", points)
			}

			d, err := rootOpts.loadGrid(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			ml, err := d.Build(args[1], rootOpts.Config.Tolerance)
			if err != nil {
				return err
			}
			k, err := axisIndex(d, axis)
			if err != nil {
				return err
			}

			if len(at) == 0 {
				for _, b := range ml.Bounds() {
					at = append(at, (b[0]+b[1])/2)
				}
			} else if len(at) != ml.Rank() {
				return fmt.Errorf(
					"--at needs %d coordinates (%v), but %d were given",
					ml.Rank(), d.Spec.Inputs, len(at),
				)
			}

			xs, ys := slice(ml, k, at, points)
			if out != "" {
				plotSlice(d, args[1], k, xs, ys, out)
				logrus.WithField("file", out).Info("Saved plot.")
				return nil
			}

			res := &SliceResult{
				Grid: d.Name, Output: args[1], Axis: d.Spec.Inputs[k],
				At: floatSlice(at), X: floatSlice(xs), Y: floatSlice(ys),
			}
			return rootOpts.formatter(cmd).Print(res, func(w io.Writer) {
				fmt.Fprintf(w, "# %s %s\n", res.Axis, res.Output)
				for i := range xs {
					fmt.Fprintf(w, "%g %g\n", xs[i], ys[i])
				}
			})
		},
	}

	cmd.Flags().StringVar(&axis, "axis", "0", "input to slice along, by name or index")
	cmd.Flags().Float64SliceVar(&at, "at", nil, "coordinates of the slice")
	cmd.Flags().IntVar(&points, "points", 100, "number of sample points")
	cmd.Flags().StringVarP(&out, "out", "o", "", "image file to save the plot to")
	return cmd
}

func plotSlice(d *grid.Dataset, output string, k int, xs, ys []float64, fname string) {
	plt.Figure()
	plt.Plot(xs, ys, "k", plt.LW(2))
	plt.Title(d.String())
	plt.XLabel(d.Spec.Inputs[k], plt.FontSize(16))
	plt.YLabel(output, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()
}
