package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/fiscal"
	"orderdesk/internal/store"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "orderdesk", cmd.Use)
	assert.Contains(t, cmd.Long, "financial year")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{
		"order", "worker", "year", "config", "login", "passwd",
		"backup", "restore", "export",
	}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestOrderSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	subcommands := []string{"add", "show", "find", "list", "set-status", "edit", "delete"}

	for _, name := range subcommands {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{"order", name})
			require.NoError(t, err)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	dbFlag := cmd.PersistentFlags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Equal(t, "", dbFlag.DefValue)
}

func TestOrderAddFlags(t *testing.T) {
	cmd := NewRootCommand()
	addCmd, _, err := cmd.Find([]string{"order", "add"})
	require.NoError(t, err)

	for _, name := range []string{"customer", "phone", "form", "item", "worker", "year"} {
		require.NotNil(t, addCmd.Flags().Lookup(name), "flag --%s should exist", name)
	}
}

func TestFormatValidation(t *testing.T) {
	assert.True(t, isValidFormat("text"))
	assert.True(t, isValidFormat("json"))

	assert.False(t, isValidFormat("xml"))
	assert.False(t, isValidFormat(""))
	assert.False(t, isValidFormat("TEXT"))
}

func TestFormatValidationIntegration(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--format", "invalid", "year", "list"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"missing_field", &store.MissingFieldError{Field: "phone_number"}, "MISSING_FIELD"},
		{"duplicate", &store.DuplicateError{Entity: "order", Key: "JF-1"}, "DUPLICATE_KEY"},
		{"not_found", &store.NotFoundError{Entity: "order", Key: "JF-1"}, "NOT_FOUND"},
		{"bad_year", &fiscal.InvalidYearError{Value: "2024", Reason: "not YYYY-YY"}, "INVALID_FORMAT"},
		{"bad_input", &invalidFormatError{err: errors.New("bad date")}, "INVALID_FORMAT"},
		{"other", errors.New("disk error"), "PERSISTENCE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorCode(tt.err))
		})
	}
}
