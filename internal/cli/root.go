package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"orderdesk/internal/config"
	"orderdesk/internal/fiscal"
	"orderdesk/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	DBPath     string
	BackupDir  string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the orderdesk CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "orderdesk",
		Short: "Jewelry order tracking for a single shop",
		Long: `orderdesk records jewelry orders, the workers they are assigned to and
their delivery status, partitioned by financial year, in a local SQLite
store. One operator, one terminal, no server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logLevel := slog.LevelWarn
			if opts.Verbose {
				logLevel = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			})
			slog.SetDefault(slog.New(handler))

			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			if opts.DBPath == "" {
				opts.DBPath = cfg.DBPath
			}
			if opts.BackupDir == "" {
				opts.BackupDir = cfg.BackupDir
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file (default orderdesk.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "path to the SQLite store (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.BackupDir, "backup-dir", "", "backup directory (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewOrderCommand(opts))
	cmd.AddCommand(NewWorkerCommand(opts))
	cmd.AddCommand(NewYearCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewPasswdCommand(opts))
	cmd.AddCommand(NewBackupCommand(opts))
	cmd.AddCommand(NewRestoreCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))

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

// openStore opens the configured store and seeds the financial-year registry,
// mirroring what the desktop application did on startup.
func (opts *RootOptions) openStore(ctx context.Context) (*store.Store, *fiscal.Registry, error) {
	slog.Debug("opening store", "path", opts.DBPath)
	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}

	registry := fiscal.NewRegistry(st)
	if err := registry.Seed(ctx, time.Now()); err != nil {
		st.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to seed financial years", err)
	}

	return st, registry, nil
}

// formatter builds the output formatter bound to the command's stdout.
func (opts *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}

// invalidFormatError marks CLI-side validation failures (bad dates, unknown
// statuses) so they land in the INVALID_FORMAT bucket of the taxonomy.
type invalidFormatError struct {
	err error
}

func (e *invalidFormatError) Error() string { return e.err.Error() }
func (e *invalidFormatError) Unwrap() error { return e.err }

// errorCode maps a domain error onto the taxonomy code shown to callers.
func errorCode(err error) string {
	var (
		badYear   *fiscal.InvalidYearError
		badFormat *invalidFormatError
	)
	switch {
	case store.IsMissingField(err):
		return "MISSING_FIELD"
	case store.IsDuplicate(err):
		return "DUPLICATE_KEY"
	case store.IsNotFound(err):
		return "NOT_FOUND"
	case errors.As(err, &badYear), errors.As(err, &badFormat):
		return "INVALID_FORMAT"
	default:
		return "PERSISTENCE"
	}
}

// failWith renders a domain error through the formatter and converts it to
// an ExitError so the process exits non-zero.
func failWith(f *OutputFormatter, err error) error {
	if ferr := f.Error(errorCode(err), err.Error()); ferr != nil {
		return WrapExitError(ExitCommandError, "failed to write output", ferr)
	}
	return WrapExitError(ExitFailure, errorCode(err), err)
}

// confirm asks for interactive confirmation unless the caller passed --yes.
// Destructive operations (restore, order delete) refuse to run without one
// or the other.
func confirm(cmd *cobra.Command, assumeYes bool, prompt string) bool {
	if assumeYes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
