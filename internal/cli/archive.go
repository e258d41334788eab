package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"orderdesk/internal/archive"
)

// NewBackupCommand creates the backup command.
func NewBackupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the store file into the backup directory",
		Long: `Copy the store file into the backup directory as
orders_backup_<timestamp>.db. Old backups accumulate; nothing is pruned.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			path, err := archive.Backup(rootOpts.DBPath, rootOpts.BackupDir, time.Now())
			if err != nil {
				return failWith(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"backup_path": path})
			}
			return f.Success(fmt.Sprintf("Backup written to %s", path))
		},
	}

	return cmd
}

type restoreOptions struct {
	*RootOptions
	Yes bool
}

// NewRestoreCommand creates the restore command.
func NewRestoreCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &restoreOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restore <backup-file>",
		Short: "Overwrite the store file with a backup",
		Long: `Overwrite the live store file with the contents of a backup. The current
store is lost unless backed up first. The backup file is not validated;
restoring a file that is not a store copy leaves the application broken
until a good backup is restored.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(opts, cmd, args[0])
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runRestore(opts *restoreOptions, cmd *cobra.Command, src string) error {
	f := opts.formatter(cmd)

	prompt := fmt.Sprintf("Overwrite %s with %s? The current data will be lost", opts.DBPath, src)
	if !confirm(cmd, opts.Yes, prompt) {
		return f.Success("Restore cancelled.")
	}

	if err := archive.Restore(src, opts.DBPath); err != nil {
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"restored_from": src})
	}
	return f.Success(fmt.Sprintf("Store restored from %s", src))
}

type exportOptions struct {
	*RootOptions
	Output string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Export every order to a spreadsheet",
		Example:       `  orderdesk export --output orders.xlsx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "orders.xlsx", "destination spreadsheet path")

	return cmd
}

func runExport(opts *exportOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	if err := archive.ExportOrders(cmd.Context(), st, opts.Output); err != nil {
		if errors.Is(err, archive.ErrEmptyDataset) {
			return f.Success("No orders to export.")
		}
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"export_path": opts.Output})
	}
	return f.Success(fmt.Sprintf("Orders exported to %s", opts.Output))
}
