package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/roach88/faultlog/internal/errlog"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (entry not found, write rejected, etc.)
	ExitCommandError = 2 // Command error (bad flags, missing config, unreadable database)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output
	Verbose   bool
}

// newFormatter builds a formatter from the root options and command writers.
func newFormatter(opts *RootOptions, out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    out,
		ErrWriter: errOut,
		Verbose:   opts.Verbose,
	}
}

// JSON emits data as a single JSON document.
func (f *OutputFormatter) JSON(data any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Textf emits a line of human-readable output.
func (f *OutputFormatter) Textf(format string, args ...any) {
	fmt.Fprintf(f.Writer, format+"\n", args...)
}

// Verbosef emits a diagnostic line when verbose output is enabled.
func (f *OutputFormatter) Verbosef(format string, args ...any) {
	if f.Verbose {
		fmt.Fprintf(f.ErrWriter, format+"\n", args...)
	}
}

// entryView is the presentation shape of one error log entry.
type entryView struct {
	ID          string `json:"id"`
	Application string `json:"application"`
	Host        string `json:"host"`
	Type        string `json:"type"`
	Source      string `json:"source"`
	Message     string `json:"message"`
	User        string `json:"user"`
	StatusCode  int    `json:"statusCode"`
	Time        string `json:"time"`
	Detail      string `json:"detail,omitempty"`
}

func viewOf(e errlog.Entry) entryView {
	return entryView{
		ID:          e.ID.String(),
		Application: e.Record.Application,
		Host:        e.Record.Host,
		Type:        e.Record.Type,
		Source:      e.Record.Source,
		Message:     e.Record.Message,
		User:        e.Record.User,
		StatusCode:  e.Record.StatusCode,
		Time:        e.Record.Time.UTC().Format(time.RFC3339Nano),
		Detail:      e.Record.Detail,
	}
}
