package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"orderdesk/internal/fiscal"
)

// NewYearCommand creates the year command group.
func NewYearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "year",
		Short: "Manage financial years",
		Long: `Manage the registry of financial years orders are partitioned by. Years
are YYYY-YY tokens; the fiscal year starts in April. The registry always
contains at least the current and next fiscal years.`,
	}

	cmd.AddCommand(newYearListCommand(rootOpts))
	cmd.AddCommand(newYearAddCommand(rootOpts))

	return cmd
}

func newYearListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List registered financial years",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			st, registry, err := rootOpts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			years, err := registry.List(cmd.Context())
			if err != nil {
				return failWith(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]any{
					"financial_years": years,
					"current":         fiscal.Default(time.Now()),
				})
			}

			current := fiscal.Default(time.Now())
			var b strings.Builder
			for i, fy := range years {
				b.WriteString(fy)
				if fy == current {
					b.WriteString("  (current)")
				}
				if i < len(years)-1 {
					b.WriteByte('\n')
				}
			}
			return f.Success(b.String())
		},
	}

	return cmd
}

func newYearAddCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <year>",
		Short: "Register a financial year",
		Long: `Register a financial year token, e.g. 2026-27. The end part must be the
last two digits of the start year plus one. Adding a year that is already
registered is reported and changes nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			st, registry, err := rootOpts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			added, err := registry.Add(cmd.Context(), args[0])
			if err != nil {
				return failWith(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]any{"financial_year": args[0], "added": added})
			}
			if !added {
				return f.Success(fmt.Sprintf("Financial year %s already exists.", args[0]))
			}
			return f.Success(fmt.Sprintf("Financial year %s added.", args[0]))
		},
	}

	return cmd
}
