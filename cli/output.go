package cli

import (
	"encoding/json"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Formatter writes command results as text, JSON, or YAML.
type Formatter struct {
	Format string
	Writer io.Writer
}

// Print writes data in the configured structured format, or calls text for
// human-readable output.
func (f *Formatter) Print(data interface{}, text func(w io.Writer)) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(data); err != nil {
			return err
		}
		return enc.Close()
	}
	text(f.Writer)
	return nil
}

// Float is a float64 which survives JSON encoding when it's NaN or infinite,
// the values returned for points outside a grid or a distribution's support.
type Float float64

func (x Float) MarshalJSON() ([]byte, error) {
	v := float64(x)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return json.Marshal(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return json.Marshal(v)
}

func (x *Float) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		*x = Float(v)
		return err
	}
	var v float64
	err := json.Unmarshal(b, &v)
	*x = Float(v)
	return err
}

func floatSlice(xs []float64) []Float {
	out := make([]Float, len(xs))
	for i := range xs {
		out[i] = Float(xs[i])
	}
	return out
}

// parseFloats parses command line arguments as float64s.
func parseFloats(args []string) ([]float64, error) {
	xs := make([]float64, len(args))
	for i, arg := range args {
		x, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, err
		}
		xs[i] = x
	}
	return xs, nil
}
