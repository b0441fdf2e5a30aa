/*package cli implements the starlord command line tool, which imports grid
tables into a catalog and evaluates interpolators built from them.
*/
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/phil-mansfield/starlord/catalog"
	"github.com/phil-mansfield/starlord/io"
)

// Version is reported by the version command.
var Version = "0.1.0"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	Verbose    bool
	Format     string // "text" | "json" | "yaml"

	// Config is loaded before any subcommand runs.
	Config  *io.StarlordConfig
	logFile *os.File
}

// skipConfig marks commands which run without reading a configuration file.
const skipConfig = "starlord/skip-config"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the starlord CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "starlord",
		Short: "Interpolate over stellar model grids",
		Long: `starlord imports tabulated stellar model grids into a local catalog and
evaluates multilinear interpolators over them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if _, ok := cmd.Annotations[skipConfig]; ok {
				return nil
			}
			return opts.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.logFile != nil {
				logrus.SetOutput(cmd.ErrOrStderr())
				return opts.logFile.Close()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "", "gcfg configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")

	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDescribeCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewPlotCommand(opts))
	cmd.AddCommand(NewDistCommand(opts))
	cmd.AddCommand(NewExampleConfigCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// setup reads the configuration file and points logrus at the right place.
func (opts *RootOptions) setup(cmd *cobra.Command) error {
	con, err := io.ReadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}
	opts.Config = con

	level, err := logrus.ParseLevel(con.LogLevel)
	if err != nil {
		return err
	}
	if opts.Verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)

	if con.LogFile != "" {
		f, err := os.OpenFile(con.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		opts.logFile = f
		logrus.SetOutput(f)
	} else {
		logrus.SetOutput(cmd.ErrOrStderr())
	}

	logrus.WithFields(logrus.Fields{
		"data_dir": con.DataDir, "catalog": con.Catalog,
	}).Debug("Loaded configuration.")
	return nil
}

// openCatalog opens the configured catalog, creating its directory if
// needed.
func (opts *RootOptions) openCatalog() (*catalog.Catalog, error) {
	if err := opts.Config.MkDirs(); err != nil {
		return nil, err
	}
	return catalog.Open(opts.Config.Catalog)
}

// formatter returns an output formatter writing to the command's stdout.
func (opts *RootOptions) formatter(cmd *cobra.Command) *Formatter {
	return &Formatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
