package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/faultlog/internal/errlog"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Page      int
	Size      int
	CountOnly bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List errors, most recent first",
		Long: `List one page of errors in the configured namespace, most recent first,
together with the namespace total. Listed entries carry the indexed fields
only; use 'faultlog get' for the full detail text.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Page, "page", 0, "page index, starting at 0")
	cmd.Flags().IntVar(&opts.Size, "size", 20, "page size")
	cmd.Flags().BoolVar(&opts.CountOnly, "count-only", false, "print only the namespace total")

	return cmd
}

// listView is the presentation shape of one page.
type listView struct {
	Total   int         `json:"total"`
	Page    int         `json:"page"`
	Entries []entryView `json:"entries,omitempty"`
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	log, err := opts.openLog()
	if err != nil {
		return err
	}
	defer log.Close()

	f := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	var sink *[]errlog.Entry
	var entries []errlog.Entry
	if !opts.CountOnly {
		sink = &entries
	}

	total, err := log.GetErrors(cmd.Context(), opts.Page, opts.Size, sink)
	if err != nil {
		return WrapExitError(ExitCommandError, "list errors", err)
	}

	view := listView{Total: total, Page: opts.Page}
	for _, e := range entries {
		view.Entries = append(view.Entries, viewOf(e))
	}

	if f.Format == "json" {
		return f.JSON(view)
	}

	if opts.CountOnly {
		f.Textf("%d", total)
		return nil
	}

	f.Verbosef("page %d of namespace total %d", opts.Page, total)
	for _, e := range view.Entries {
		f.Textf("%s  %s  [%d] %s: %s", e.ID, e.Time, e.StatusCode, e.Type, e.Message)
	}
	f.Textf("total: %d", total)
	return nil
}
