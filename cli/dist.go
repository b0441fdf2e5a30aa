package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/phil-mansfield/starlord/math/dist"
)

// DistResult is the value of a distribution function at one point.
type DistResult struct {
	Family   string  `json:"family" yaml:"family"`
	Function string  `json:"function" yaml:"function"`
	X        Float   `json:"x" yaml:"x"`
	Params   []Float `json:"params" yaml:"params"`
	Value    Float   `json:"value" yaml:"value"`
}

// NewDistCommand creates the dist command.
func NewDistCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dist <family> <lpdf|ppf> <x> <p1> <p2>",
		Short: "Evaluate a prior distribution",
		Long: fmt.Sprintf(`Evaluate the log-density (lpdf) or quantile function (ppf) of a
two-parameter distribution. Supported families are %v:

  uniform <lo> <hi>
  normal  <mu> <sigma>
  beta    <a> <b>
  gamma   <alpha> <rate>

Invalid parameters evaluate to NaN.`, dist.Names()),
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			fam, ok := dist.Lookup(args[0])
			if !ok {
				return fmt.Errorf("unknown family %q: must be one of %v", args[0], dist.Names())
			}

			var f func(x, p1, p2 float64) float64
			switch args[1] {
			case "lpdf":
				f = fam.LogPDF
			case "ppf":
				f = fam.PPF
			default:
				return fmt.Errorf("unknown function %q: must be lpdf or ppf", args[1])
			}

			xs, err := parseFloats(args[2:])
			if err != nil {
				return err
			}
			v := f(xs[0], xs[1], xs[2])

			res := &DistResult{
				Family: fam.Name, Function: args[1], X: Float(xs[0]),
				Params: floatSlice(xs[1:]), Value: Float(v),
			}
			return rootOpts.formatter(cmd).Print(res, func(w io.Writer) {
				fmt.Fprintf(w, "%g\n", v)
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}
