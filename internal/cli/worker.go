package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"orderdesk/internal/model"
)

// NewWorkerCommand creates the worker command group.
func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Manage the worker directory",
		Long: `Manage the directory of craftsmen orders are issued to. Worker names are
unique. The directory is append-only: profiles are never edited or removed,
and orders keep the assigned name as plain text even if the directory
changes later.`,
	}

	cmd.AddCommand(newWorkerAddCommand(rootOpts))
	cmd.AddCommand(newWorkerListCommand(rootOpts))

	return cmd
}

type workerAddOptions struct {
	*RootOptions
	Name     string
	Alias    string
	Company  string
	Address  string
	WorkType string
	Contact  string
}

func newWorkerAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &workerAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a worker profile",
		Example: `  orderdesk worker add --name RAMESH --company "SHREE GOLD WORKS" \
    --work-type BANGLES --contact 9800000000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWorkerAdd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "worker name (required, unique)")
	cmd.Flags().StringVar(&opts.Alias, "alias", "", "short alias")
	cmd.Flags().StringVar(&opts.Company, "company", "", "company name")
	cmd.Flags().StringVar(&opts.Address, "address", "", "address")
	cmd.Flags().StringVar(&opts.WorkType, "work-type", "", "kind of work")
	cmd.Flags().StringVar(&opts.Contact, "contact", "", "contact number")

	return cmd
}

func runWorkerAdd(opts *workerAddOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	// The refresh hook dependent pickers register in-process; here it just
	// confirms the propagation in the debug log.
	st.OnWorkerCreated(func(name string) {
		slog.Debug("worker list refreshed", "added", name)
	})

	id, err := st.CreateWorker(cmd.Context(), model.Worker{
		Name:        opts.Name,
		Alias:       opts.Alias,
		CompanyName: opts.Company,
		Address:     opts.Address,
		WorkType:    opts.WorkType,
		Contact:     opts.Contact,
	})
	if err != nil {
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]any{"id": id, "name": strings.TrimSpace(opts.Name)})
	}
	return f.Success(fmt.Sprintf("Worker %s saved (id %d).", strings.TrimSpace(opts.Name), id))
}

func newWorkerListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List worker names in registration order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			st, _, err := rootOpts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			names, err := st.WorkerNames(cmd.Context())
			if err != nil {
				return failWith(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(names)
			}
			if len(names) == 0 {
				return f.Success("No workers registered.")
			}
			return f.Success(strings.Join(names, "\n"))
		},
	}

	return cmd
}
