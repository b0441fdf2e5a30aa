package io

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/gcfg.v1"
)

const (
	// DataDirEnv names the environment variable which overrides DataDir.
	DataDirEnv = "STARLORD_DATA_DIR"

	ExampleConfigFile = `[Starlord]

#######################
# Optional Parameters #
#######################

# Directory which holds the grid catalog and the grid directory. If this isn't
# set, $STARLORD_DATA_DIR is used, and if that isn't set either, a "starlord"
# directory inside your user configuration directory is used (~/.config on
# Linux, ~/Library/Application Support on macOS).
# DataDir = path/to/data/dir

# Directory scanned by "starlord scan" for grid tables. Relative paths are
# taken relative to DataDir. Default is "grids".
# GridDir = grids

# The sqlite file that grids are stored in after they're imported. Relative
# paths are taken relative to DataDir. Default is "grids.db".
# Catalog = grids.db

# Relative tolerance used to decide whether a grid axis is uniformly spaced.
# Uniform axes are searched in constant time. Default is 1e-6.
# Tolerance = 1e-6

# One of panic, fatal, error, warn, info, debug, or trace. Default is info.
# LogLevel = info

# Log output is written to stderr unless a LogFile is given.
# LogFile = log.out`
)

type StarlordConfig struct {
	// Optional
	DataDir, GridDir, Catalog string
	Tolerance float64
	LogLevel, LogFile string
}

type StarlordWrapper struct {
	Starlord StarlordConfig
}

func DefaultWrapper() *StarlordWrapper {
	con := StarlordConfig{}
	con.GridDir = "grids"
	con.Catalog = "grids.db"
	con.Tolerance = 1e-6
	con.LogLevel = "info"
	return &StarlordWrapper{con}
}

func (con *StarlordConfig) ValidDataDir() bool {
	return con.DataDir != ""
}
func (con *StarlordConfig) ValidCatalog() bool {
	return con.Catalog != ""
}
func (con *StarlordConfig) ValidGridDir() bool {
	return con.GridDir != ""
}
func (con *StarlordConfig) ValidTolerance() bool {
	return con.Tolerance >= 0
}
func (con *StarlordConfig) ValidLogLevel() bool {
	_, err := logrus.ParseLevel(con.LogLevel)
	return err == nil
}

// CheckInit validates the configuration and resolves DataDir, GridDir, and
// Catalog to usable paths.
func (con *StarlordConfig) CheckInit() error {
	if !con.ValidTolerance() {
		return fmt.Errorf("Tolerance must be non-negative, but is %g.", con.Tolerance)
	} else if !con.ValidLogLevel() {
		return fmt.Errorf("Unrecognized LogLevel '%s'.", con.LogLevel)
	} else if !con.ValidCatalog() {
		return fmt.Errorf("Catalog cannot be empty.")
	} else if !con.ValidGridDir() {
		return fmt.Errorf("GridDir cannot be empty.")
	}

	if !con.ValidDataDir() {
		if dir := os.Getenv(DataDirEnv); dir != "" {
			con.DataDir = dir
		} else {
			base, err := os.UserConfigDir()
			if err != nil {
				return fmt.Errorf(
					"DataDir isn't set and no default could be found: %w", err,
				)
			}
			con.DataDir = filepath.Join(base, "starlord")
		}
	}

	if !filepath.IsAbs(con.GridDir) {
		con.GridDir = filepath.Join(con.DataDir, con.GridDir)
	}
	if !filepath.IsAbs(con.Catalog) {
		con.Catalog = filepath.Join(con.DataDir, con.Catalog)
	}

	return nil
}

// MkDirs creates DataDir and GridDir if they don't already exist.
func (con *StarlordConfig) MkDirs() error {
	for _, dir := range []string{con.DataDir, con.GridDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// ReadConfig reads the [Starlord] section of the given config file.
// If fname is empty, the default configuration is used. The returned config
// has already been checked with CheckInit.
func ReadConfig(fname string) (*StarlordConfig, error) {
	wrap := DefaultWrapper()
	if fname != "" {
		if err := gcfg.ReadFileInto(wrap, fname); err != nil {
			return nil, err
		}
	}

	con := &wrap.Starlord
	if err := con.CheckInit(); err != nil {
		return nil, err
	}
	return con, nil
}
