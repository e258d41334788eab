package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"orderdesk/internal/auth"
	"orderdesk/internal/fiscal"
)

// settingAdminPassword holds the bcrypt hash of the admin password.
const settingAdminPassword = "admin_password"

// NewConfigCommand creates the config command group over the settings store.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write settings",
		Long: `Read and write key/value settings such as splash_logo_path. The admin
password lives here too but only as a hash; rotate it with passwd, not
with config set.`,
	}

	cmd.AddCommand(newConfigGetCommand(rootOpts))
	cmd.AddCommand(newConfigSetCommand(rootOpts))

	return cmd
}

func newConfigGetCommand(rootOpts *RootOptions) *cobra.Command {
	var defValue string

	cmd := &cobra.Command{
		Use:           "get <key>",
		Short:         "Print a setting value",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			st, _, err := rootOpts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			value, err := st.GetSetting(cmd.Context(), args[0], defValue)
			if err != nil {
				return failWith(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"key": args[0], "value": value})
			}
			return f.Success(value)
		},
	}

	cmd.Flags().StringVar(&defValue, "default", "", "value to print when the key is absent")

	return cmd
}

func newConfigSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "set <key> <value>",
		Short:         "Set a setting value",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := rootOpts.formatter(cmd)

			st, _, err := rootOpts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SetSetting(cmd.Context(), args[0], args[1]); err != nil {
				return failWith(f, err)
			}

			if rootOpts.Format == "json" {
				return f.Success(map[string]string{"key": args[0], "value": args[1]})
			}
			return f.Success(fmt.Sprintf("%s updated.", args[0]))
		},
	}

	return cmd
}

type loginOptions struct {
	*RootOptions
	Password string
	Year     string
}

// NewLoginCommand creates the login command. It verifies the admin password
// and selects the working financial year, registering it if new.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &loginOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify the admin password and pick a financial year",
		Long: `Verify the admin password against the stored hash and select the financial
year to work in. The year defaults to the current fiscal year and is
registered if it is not yet known.`,
		Example:       `  orderdesk login --password admin123 --year 2026-27`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Password, "password", "", "admin password (required)")
	cmd.Flags().StringVar(&opts.Year, "year", "", "financial year to select (default: current)")

	return cmd
}

func runLogin(opts *loginOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	st, registry, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	hash, err := st.GetSetting(cmd.Context(), settingAdminPassword, "")
	if err != nil {
		return failWith(f, err)
	}
	if !auth.CheckPassword(opts.Password, hash) {
		if ferr := f.Error("UNAUTHORIZED", "incorrect password"); ferr != nil {
			return WrapExitError(ExitCommandError, "failed to write output", ferr)
		}
		return NewExitError(ExitFailure, "incorrect password")
	}

	year := opts.Year
	if year == "" {
		year = fiscal.Default(time.Now())
	}
	if _, err := registry.Add(cmd.Context(), year); err != nil {
		return failWith(f, err)
	}

	if opts.Format == "json" {
		return f.Success(map[string]string{"financial_year": year})
	}
	return f.Success(fmt.Sprintf("Login successful. Financial year %s selected.", year))
}

type passwdOptions struct {
	*RootOptions
	Current string
	New     string
}

// NewPasswdCommand creates the passwd command for rotating the admin password.
func NewPasswdCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &passwdOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the admin password",
		Long: `Change the admin password. The current password must verify against the
stored hash before the new one is hashed and written.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPasswd(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Current, "current", "", "current admin password (required)")
	cmd.Flags().StringVar(&opts.New, "new", "", "new admin password (required)")

	return cmd
}

func runPasswd(opts *passwdOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	if opts.New == "" {
		err := &invalidFormatError{err: fmt.Errorf("new password must not be empty")}
		return failWith(f, err)
	}

	st, _, err := opts.openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer st.Close()

	hash, err := st.GetSetting(cmd.Context(), settingAdminPassword, "")
	if err != nil {
		return failWith(f, err)
	}
	if !auth.CheckPassword(opts.Current, hash) {
		if ferr := f.Error("UNAUTHORIZED", "current password is incorrect"); ferr != nil {
			return WrapExitError(ExitCommandError, "failed to write output", ferr)
		}
		return NewExitError(ExitFailure, "current password is incorrect")
	}

	newHash, err := auth.HashPassword(opts.New)
	if err != nil {
		return failWith(f, err)
	}
	if err := st.SetSetting(cmd.Context(), settingAdminPassword, newHash); err != nil {
		return failWith(f, err)
	}

	return f.Success("Password updated.")
}
