package grid

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// ScanDir loads every grid table in dir. Files without a grid_spec header
// are skipped with a warning, as are hidden files and subdirectories. Grids
// are returned in file name order.
func ScanDir(dir string) ([]*Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	grids := []*Dataset{}
	names := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		fname := filepath.Join(dir, entry.Name())

		d, err := ReadFile(fname)
		if errors.Is(err, ErrNotGrid) {
			logrus.WithField("file", fname).Warn("Skipping non-grid file.")
			continue
		} else if err != nil {
			return nil, err
		}

		if prev, ok := names[d.Name]; ok {
			return nil, fmt.Errorf(
				"%w: %s and %s are both named %s", ErrDuplicate, prev, fname, d.Name,
			)
		}
		names[d.Name] = fname

		logrus.WithFields(logrus.Fields{
			"file": fname, "grid": d.Name, "shape": d.Shape(),
		}).Debug("Loaded grid.")
		grids = append(grids, d)
	}
	return grids, nil
}
