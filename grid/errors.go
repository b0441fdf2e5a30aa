package grid

import "errors"

var (
	// ErrSpec is returned when a grid spec string can't be parsed.
	ErrSpec = errors.New("grid: malformed spec")
	// ErrNotGrid is returned for files which don't carry a grid_spec header.
	ErrNotGrid = errors.New("grid: not a grid file")
	// ErrLayout is returned when table rows aren't a row-major walk over the
	// grid's vertices.
	ErrLayout = errors.New("grid: rows don't form a regular grid")
	// ErrColumn is returned when a named column is missing or has the wrong
	// length.
	ErrColumn = errors.New("grid: bad column")
	// ErrDuplicate is returned when two grids in a directory share a name.
	ErrDuplicate = errors.New("grid: duplicate grid name")
)
