package cli

import (
	"github.com/spf13/cobra"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Retrieve one error by identity",
		Long: `Retrieve one error by identity from the configured namespace.

The identity is accepted in either textual form: the 32-character hex storage
key or the hyphenated GUID.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runGet(opts *RootOptions, idText string, cmd *cobra.Command) error {
	log, err := opts.openLog()
	if err != nil {
		return err
	}
	defer log.Close()

	f := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	entry, err := log.GetError(cmd.Context(), idText)
	if err != nil {
		return WrapExitError(ExitCommandError, "get error", err)
	}
	if entry == nil {
		return NewExitError(ExitFailure, "no error with identity "+idText)
	}

	view := viewOf(*entry)
	if f.Format == "json" {
		return f.JSON(view)
	}

	f.Textf("ID:      %s", view.ID)
	f.Textf("App:     %s", view.Application)
	f.Textf("Time:    %s", view.Time)
	f.Textf("Host:    %s", view.Host)
	f.Textf("Type:    %s", view.Type)
	f.Textf("Source:  %s", view.Source)
	f.Textf("User:    %s", view.User)
	f.Textf("Status:  %d", view.StatusCode)
	f.Textf("Message: %s", view.Message)
	if view.Detail != "" {
		f.Textf("")
		f.Textf("%s", view.Detail)
	}
	return nil
}
