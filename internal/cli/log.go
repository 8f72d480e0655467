package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/faultlog/internal/record"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Host       string
	Type       string
	Source     string
	Message    string
	User       string
	StatusCode int
	Detail     string
	DetailFile string
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log one error record",
		Long: `Log one error record into the configured application namespace.

Example:
  faultlog log --db errors.db --app checkout \
    --type ValueError --source cart --message "quantity must be positive" \
    --status 500 --detail-file stacktrace.txt`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Host, "host", hostname(), "host the error occurred on")
	cmd.Flags().StringVar(&opts.Type, "type", "", "error type or class name")
	cmd.Flags().StringVar(&opts.Source, "source", "", "component that raised the error")
	cmd.Flags().StringVar(&opts.Message, "message", "", "error message (required)")
	cmd.Flags().StringVar(&opts.User, "user", "", "acting user")
	cmd.Flags().IntVar(&opts.StatusCode, "status", 0, "HTTP or process status code")
	cmd.Flags().StringVar(&opts.Detail, "detail", "", "detail text")
	cmd.Flags().StringVar(&opts.DetailFile, "detail-file", "", "file with detail text (overrides --detail)")
	cmd.MarkFlagRequired("message")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	detail := opts.Detail
	if opts.DetailFile != "" {
		data, err := os.ReadFile(opts.DetailFile)
		if err != nil {
			return WrapExitError(ExitCommandError, "read detail file", err)
		}
		detail = string(data)
	}

	log, err := opts.openLog()
	if err != nil {
		return err
	}
	defer log.Close()

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	id, err := log.Log(cmd.Context(), record.ErrorRecord{
		Host:       opts.Host,
		Type:       opts.Type,
		Source:     opts.Source,
		Message:    opts.Message,
		User:       opts.User,
		StatusCode: opts.StatusCode,
		Time:       time.Now().UTC(),
		Detail:     detail,
	})
	if err != nil {
		return WrapExitError(ExitFailure, "log error record", err)
	}

	if f.Format == "json" {
		return f.JSON(map[string]string{"id": id.String()})
	}
	f.Textf("%s", id)
	return nil
}

// hostname is the flag default for --host; empty when unknown.
func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}
