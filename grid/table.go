package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phil-mansfield/table"
)

// SpecKey prefixes the header comment which carries a table's Spec.
const SpecKey = "grid_spec:"

// ReadHeaderSpec returns the Spec stored in the leading comment block of a
// grid table. ErrNotGrid is returned if there isn't one.
func ReadHeaderSpec(fname string) (Spec, error) {
	f, err := os.Open(fname)
	if err != nil {
		return Spec{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		} else if !strings.HasPrefix(line, "#") {
			break
		}

		line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if rest, ok := strings.CutPrefix(line, SpecKey); ok {
			return ParseSpec(rest)
		}
	}
	if err := scanner.Err(); err != nil {
		return Spec{}, err
	}
	return Spec{}, fmt.Errorf("%w: %s has no '# %s' header", ErrNotGrid, fname, SpecKey)
}

// ReadTable reads the grid table fname, whose columns are laid out as given
// by spec. The Dataset is named after the file's stem.
func ReadTable(fname string, spec Spec) (*Dataset, error) {
	colIdxs := make([]int, len(spec.Inputs)+len(spec.Outputs))
	for i := range colIdxs {
		colIdxs[i] = i
	}

	cols, err := table.ReadTable(fname, colIdxs, nil)
	if err != nil {
		return nil, err
	}

	d, err := FromColumns(Stem(fname), spec, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return d, nil
}

// ReadFile reads a grid table using the Spec in its header.
func ReadFile(fname string) (*Dataset, error) {
	spec, err := ReadHeaderSpec(fname)
	if err != nil {
		return nil, err
	}
	return ReadTable(fname, spec)
}

// Stem returns a file's base name without its extension.
func Stem(fname string) string {
	base := filepath.Base(fname)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FromColumns assembles a Dataset from table columns ordered as
// spec.Columns(). Each axis is the sorted set of distinct values in its input
// column, and the rows must visit every vertex exactly once in row-major
// order.
func FromColumns(name string, spec Spec, cols [][]float64) (*Dataset, error) {
	nIn, nOut := len(spec.Inputs), len(spec.Outputs)
	if nIn == 0 || nOut == 0 {
		return nil, fmt.Errorf("%w: spec %q has no inputs or no outputs", ErrColumn, spec)
	} else if len(cols) != nIn+nOut {
		return nil, fmt.Errorf(
			"%w: %d columns given, but spec %s needs %d",
			ErrColumn, len(cols), spec, nIn+nOut,
		)
	}
	rows := len(cols[0])
	for i := range cols {
		if len(cols[i]) != rows {
			return nil, fmt.Errorf("%w: columns have different lengths", ErrColumn)
		}
	}

	d := &Dataset{
		Name:    name,
		Spec:    spec,
		Axes:    make([][]float64, nIn),
		Columns: map[string][]float64{},
	}
	for k := 0; k < nIn; k++ {
		d.Axes[k] = unique(cols[k])
	}

	if size := d.Size(); size != rows {
		return nil, fmt.Errorf(
			"%w: %d rows, but the inputs span a %v grid with %d vertices",
			ErrLayout, rows, d.Shape(), size,
		)
	}

	idx := make([]int, nIn)
	for r := 0; r < rows; r++ {
		for k := 0; k < nIn; k++ {
			if cols[k][r] != d.Axes[k][idx[k]] {
				return nil, fmt.Errorf(
					"%w: row %d has %s = %g, but %g was expected",
					ErrLayout, r, spec.Inputs[k], cols[k][r], d.Axes[k][idx[k]],
				)
			}
		}
		increment(idx, d.Axes)
	}

	for j, out := range spec.Outputs {
		d.Columns[out] = append([]float64(nil), cols[nIn+j]...)
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// increment advances idx to the next vertex in row-major order.
func increment(idx []int, axes [][]float64) {
	for k := len(idx) - 1; k >= 0; k-- {
		idx[k]++
		if idx[k] < len(axes[k]) {
			return
		}
		idx[k] = 0
	}
}

func unique(xs []float64) []float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	out := sorted[:0]
	for i, x := range sorted {
		if i == 0 || x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}

// WriteTable writes d in the format read by ReadFile.
func WriteTable(w io.Writer, d *Dataset) error {
	if err := d.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s %s\n", SpecKey, d.Spec)
	fmt.Fprintf(bw, "# %s\n", strings.Join(d.Spec.Columns(), " "))

	idx := make([]int, len(d.Axes))
	for r := 0; r < d.Size(); r++ {
		fields := make([]string, 0, len(idx)+len(d.Spec.Outputs))
		for k := range idx {
			fields = append(fields, fmt.Sprintf("%.17g", d.Axes[k][idx[k]]))
		}
		for _, out := range d.Spec.Outputs {
			fields = append(fields, fmt.Sprintf("%.17g", d.Columns[out][r]))
		}
		fmt.Fprintln(bw, strings.Join(fields, " "))
		increment(idx, d.Axes)
	}
	return bw.Flush()
}
