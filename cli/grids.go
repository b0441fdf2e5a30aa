package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/starlord/catalog"
	"github.com/phil-mansfield/starlord/grid"
	"github.com/phil-mansfield/starlord/math/interpolate"
)

// ImportResult describes one grid written to the catalog.
type ImportResult struct {
	ID    string `json:"id" yaml:"id"`
	Grid  string `json:"grid" yaml:"grid"`
	Spec  string `json:"spec" yaml:"spec"`
	Shape []int  `json:"shape" yaml:"shape"`
}

func printImports(f *Formatter, results []ImportResult) error {
	return f.Print(results, func(w io.Writer) {
		for _, r := range results {
			fmt.Fprintf(w, "Imported %s with shape %v.\n", r.Grid, r.Shape)
		}
	})
}

func storeAll(ctx context.Context, cat *catalog.Catalog, grids []*grid.Dataset) ([]ImportResult, error) {
	results := make([]ImportResult, 0, len(grids))
	for _, d := range grids {
		id, err := cat.Put(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("storing %s: %w", d.Name, err)
		}
		logrus.WithFields(logrus.Fields{"grid": d.Name, "id": id}).Info("Imported grid.")
		results = append(results, ImportResult{
			ID: id, Grid: d.String(), Spec: d.Spec.String(), Shape: d.Shape(),
		})
	}
	return results, nil
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var specText, name string

	cmd := &cobra.Command{
		Use:   "import <table>...",
		Short: "Import grid tables into the catalog",
		Long: `Import one or more grid tables into the catalog.

A table's columns are its inputs followed by its outputs, one row per grid
vertex with the last input varying fastest. The column layout is read from a
'# grid_spec: x, y -> v1, v2' header line unless --spec is given. Grids are
named after their file unless --name is given, and replace any stored grid
with the same name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if name != "" && len(args) > 1 {
				return fmt.Errorf("--name can only be used when importing a single table")
			}

			grids := make([]*grid.Dataset, len(args))
			for i, fname := range args {
				d, err := readTable(fname, specText)
				if err != nil {
					return err
				}
				if name != "" {
					d.Name = name
				}
				grids[i] = d
			}

			cat, err := rootOpts.openCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			results, err := storeAll(cmd.Context(), cat, grids)
			if err != nil {
				return err
			}
			return printImports(rootOpts.formatter(cmd), results)
		},
	}

	cmd.Flags().StringVar(&specText, "spec", "", "column layout, e.g. 'x, y -> v1, v2; g'")
	cmd.Flags().StringVar(&name, "name", "", "name to store the grid under")
	return cmd
}

func readTable(fname, specText string) (*grid.Dataset, error) {
	if specText == "" {
		return grid.ReadFile(fname)
	}
	spec, err := grid.ParseSpec(specText)
	if err != nil {
		return nil, err
	}
	return grid.ReadTable(fname, spec)
}

// NewScanCommand creates the scan command.
func NewScanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [dir]",
		Short: "Import every grid table in a directory",
		Long: `Import every grid table in a directory into the catalog. Files without a
grid_spec header are skipped. The directory defaults to GridDir from the
configuration file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := rootOpts.Config.GridDir
			if len(args) == 1 {
				dir = args[0]
			}

			grids, err := grid.ScanDir(dir)
			if err != nil {
				return err
			}
			logrus.WithField("dir", dir).Infof("Found %d grid(s).", len(grids))

			cat, err := rootOpts.openCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			results, err := storeAll(cmd.Context(), cat, grids)
			if err != nil {
				return err
			}
			return printImports(rootOpts.formatter(cmd), results)
		},
	}
	return cmd
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the grids in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := rootOpts.openCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			entries, err := cat.List(cmd.Context())
			if err != nil {
				return err
			}

			return rootOpts.formatter(cmd).Print(entries, func(w io.Writer) {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "NAME\tSPEC\tIMPORTED")
				for _, e := range entries {
					fmt.Fprintf(tw, "%s\t%s\t%s\n",
						e.Name, e.Spec, e.Created.Format(time.RFC3339))
				}
				tw.Flush()
			})
		},
	}
	return cmd
}

// AxisInfo describes one input axis of a grid.
type AxisInfo struct {
	Name string  `json:"name" yaml:"name"`
	Kind string  `json:"kind" yaml:"kind"`
	Len  int     `json:"len" yaml:"len"`
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
}

// DescribeResult describes a stored grid.
type DescribeResult struct {
	Grid     string     `json:"grid" yaml:"grid"`
	Vertices int        `json:"vertices" yaml:"vertices"`
	Inputs   []AxisInfo `json:"inputs" yaml:"inputs"`
	Outputs  []string   `json:"outputs" yaml:"outputs"`
	Derived  []string   `json:"derived" yaml:"derived"`
}

func describe(d *grid.Dataset, tol float64) (*DescribeResult, error) {
	res := &DescribeResult{
		Grid:     d.String(),
		Vertices: d.Size(),
		Outputs:  d.Spec.Outputs,
		Derived:  d.Spec.Derived,
	}
	if res.Derived == nil {
		res.Derived = []string{}
	}
	for k, xs := range d.Axes {
		ax, err := interpolate.NewAxis(xs, tol)
		if err != nil {
			return nil, err
		}
		res.Inputs = append(res.Inputs, AxisInfo{
			Name: d.Spec.Inputs[k], Kind: ax.Kind().String(),
			Len: ax.Len(), Min: ax.Min(), Max: ax.Max(),
		})
	}
	return res, nil
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <grid>",
		Short: "Show the axes and columns of a stored grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rootOpts.loadGrid(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res, err := describe(d, rootOpts.Config.Tolerance)
			if err != nil {
				return err
			}

			return rootOpts.formatter(cmd).Print(res, func(w io.Writer) {
				fmt.Fprintln(w, res.Grid)
				fmt.Fprintf(w, "vertices: %d\n", res.Vertices)
				fmt.Fprintln(w, "inputs:")
				for _, ax := range res.Inputs {
					fmt.Fprintf(w, "  %s: %s, %d points in [%g, %g]\n",
						ax.Name, ax.Kind, ax.Len, ax.Min, ax.Max)
				}
				fmt.Fprintf(w, "outputs: %s\n", strings.Join(res.Outputs, ", "))
				if len(res.Derived) > 0 {
					fmt.Fprintf(w, "derived: %s\n", strings.Join(res.Derived, ", "))
				}
			})
		},
	}
	return cmd
}

// loadGrid fetches a grid from the configured catalog.
func (opts *RootOptions) loadGrid(ctx context.Context, name string) (*grid.Dataset, error) {
	cat, err := opts.openCatalog()
	if err != nil {
		return nil, err
	}
	defer cat.Close()
	return cat.Get(ctx, name)
}

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <grid>...",
		Short: "Remove grids from the catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := rootOpts.openCatalog()
			if err != nil {
				return err
			}
			defer cat.Close()

			for _, name := range args {
				if err := cat.Delete(cmd.Context(), name); err != nil {
					return err
				}
			}
			return rootOpts.formatter(cmd).Print(args, func(w io.Writer) {
				for _, name := range args {
					fmt.Fprintf(w, "Removed %s.\n", name)
				}
			})
		},
	}
	return cmd
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <grid>",
		Short: "Write a stored grid back out as a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := rootOpts.loadGrid(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if out == "" {
				return grid.WriteTable(cmd.OutOrStdout(), d)
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := grid.WriteTable(f, d); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
