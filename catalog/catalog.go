/*package catalog stores imported grids in a sqlite database so that they
can be looked up by name without re-reading their tables.
*/
package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/phil-mansfield/starlord/grid"
)

var (
	// ErrNotFound is returned when no grid has the requested name.
	ErrNotFound = errors.New("catalog: grid not found")
	// ErrCorrupt is returned when stored rows can't be decoded into a grid.
	ErrCorrupt = errors.New("catalog: corrupt grid record")
)

//go:embed schema.sql
var schema string

// Entry summarizes one stored grid.
type Entry struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Spec    string    `json:"spec" yaml:"spec"`
	Created time.Time `json:"created" yaml:"created"`
}

// Catalog is a sqlite-backed collection of grids. It is safe for concurrent
// use.
type Catalog struct {
	db *sql.DB
}

// Open opens the catalog at path, creating it if it doesn't exist.
func Open(path string) (*Catalog, error) {
	// Pragmas given in the DSN are applied to every pooled connection.
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("catalog: schema setup for %s: %w", path, err)
	}

	logrus.WithField("path", path).Debug("Opened grid catalog.")
	return &Catalog{db: db}, nil
}

// Close releases the underlying database.
func (c *Catalog) Close() error { return c.db.Close() }

// Put stores d, replacing any grid with the same name, and returns the new
// record's id.
func (c *Catalog) Put(ctx context.Context, d *grid.Dataset) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM grids WHERE name = ?`, d.Name); err != nil {
		return "", err
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO grids(id, name, spec, created_at) VALUES(?, ?, ?, ?)`,
		id, d.Name, d.Spec.String(), time.Now().UnixNano(),
	)
	if err != nil {
		return "", err
	}

	for k, xs := range d.Axes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO grid_axes(grid_id, k, vals) VALUES(?, ?, ?)`,
			id, k, EncodeFloats(xs),
		)
		if err != nil {
			return "", err
		}
	}
	for _, name := range d.Spec.Outputs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO grid_outputs(grid_id, name, vals) VALUES(?, ?, ?)`,
			id, name, EncodeFloats(d.Columns[name]),
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{"grid": d.Name, "id": id}).Debug("Stored grid.")
	return id, nil
}

// Get loads the grid with the given name.
func (c *Catalog) Get(ctx context.Context, name string) (*grid.Dataset, error) {
	var id, specText string
	err := c.db.QueryRowContext(ctx,
		`SELECT id, spec FROM grids WHERE name = ?`, name,
	).Scan(&id, &specText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	} else if err != nil {
		return nil, err
	}

	spec, err := grid.ParseSpec(specText)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrCorrupt, name, err)
	}
	d := &grid.Dataset{Name: name, Spec: spec, Columns: map[string][]float64{}}

	rows, err := c.db.QueryContext(ctx,
		`SELECT vals FROM grid_axes WHERE grid_id = ? ORDER BY k`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		xs, err := DecodeFloats(b)
		if err != nil {
			return nil, err
		}
		d.Axes = append(d.Axes, xs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = c.db.QueryContext(ctx,
		`SELECT name, vals FROM grid_outputs WHERE grid_id = ?`, id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var col string
		var b []byte
		if err := rows.Scan(&col, &b); err != nil {
			return nil, err
		}
		vals, err := DecodeFloats(b)
		if err != nil {
			return nil, err
		}
		d.Columns[col] = vals
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCorrupt, err)
	}
	return d, nil
}

// List returns every stored grid, ordered by name.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT id, name, spec, created_at FROM grids ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Spec, &created); err != nil {
			return nil, err
		}
		e.Created = time.Unix(0, created).UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes the grid with the given name.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	res, err := c.db.ExecContext(ctx, `DELETE FROM grids WHERE name = ?`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	} else if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	logrus.WithField("grid", name).Debug("Deleted grid.")
	return nil
}
