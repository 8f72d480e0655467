package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/faultlog/internal/ingest"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Dir string
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a spool directory and ingest dropped error reports",
		Long: `Watch a spool directory for dropped JSON error report files and log each
one into the configured namespace. Ingested reports are renamed to .done;
reports that cannot be ingested are renamed to .err and left in place.

Runs until interrupted.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "spool directory (overrides config)")

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
	cfg, err := opts.resolveConfig()
	if err != nil {
		return WrapExitError(ExitCommandError, "configuration", err)
	}

	dir := cfg.Spool
	if opts.Dir != "" {
		dir = opts.Dir
	}
	if dir == "" {
		return NewExitError(ExitCommandError, "no spool directory: pass --dir or set spool in --config")
	}

	log, err := opts.openLog()
	if err != nil {
		return err
	}
	defer log.Close()

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	w, err := ingest.NewWatcher(dir, log, f.Verbosef)
	if err != nil {
		return WrapExitError(ExitCommandError, "create watcher", err)
	}
	if err := w.Start(); err != nil {
		return WrapExitError(ExitCommandError, "start watcher", err)
	}
	defer w.Close()

	f.Textf("watching %s (interrupt to stop)", dir)
	<-cmd.Context().Done()
	return nil
}
