// Package cli implements the faultlog command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/faultlog/internal/config"
	"github.com/roach88/faultlog/internal/errlog"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	ConfigPath  string
	DBPath      string
	Application string
	Schema      string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the faultlog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "faultlog",
		Short: "faultlog - durable, application-scoped error log",
		Long: `faultlog persists application error records into a local store and
reads them back, scoped to one application namespace per invocation.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "configuration file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database path (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Application, "app", "", "application namespace (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Schema, "schema", "", "schema qualifier (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
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

// resolveConfig merges the optional config file with flag overrides.
// Flags win over file values. The database path must come from one of them.
func (o *RootOptions) resolveConfig() (config.Config, error) {
	var cfg config.Config
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if o.DBPath != "" {
		cfg.Path = o.DBPath
	}
	if o.Application != "" {
		cfg.Application = o.Application
	}
	if o.Schema != "" {
		cfg.SchemaQualifier = o.Schema
	}

	if cfg.Path == "" {
		return config.Config{}, fmt.Errorf("no database path: pass --db or set path in --config")
	}
	return cfg, nil
}

// openLog resolves configuration and opens the error log.
func (o *RootOptions) openLog() (*errlog.Log, error) {
	cfg, err := o.resolveConfig()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "configuration", err)
	}

	log, err := errlog.Open(errlog.Options{
		Path:            cfg.Path,
		Application:     cfg.Application,
		SchemaQualifier: cfg.SchemaQualifier,
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open error log", err)
	}
	return log, nil
}
