package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:     "json",
		Writer:     buf,
		newTraceID: func() string { return "trace-1" },
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, "trace-1", resp.TraceID)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:     "json",
		Writer:     buf,
		newTraceID: func() string { return "trace-2" },
	}

	err := formatter.Error("DUPLICATE_KEY", "order form JF-101 already exists")
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_KEY", resp.Error.Code)
	assert.Equal(t, "order form JF-101 already exists", resp.Error.Message)
	assert.Equal(t, "trace-2", resp.TraceID)
}

func TestOutputFormatter_JSONTraceIDDefault(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	require.NoError(t, formatter.Success("ok"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	// Default generator produces a fresh UUID per response.
	assert.Len(t, resp.TraceID, 36)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Order JF-101 saved.")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Order JF-101 saved.")
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Error("NOT_FOUND", "no order with form JF-999")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error: no order with form JF-999")
}

func TestExitError(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to write backup", inner)

	assert.Equal(t, "failed to write backup: disk full", err.Error())
	assert.Equal(t, inner, errors.Unwrap(err))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"exit_error", NewExitError(ExitCommandError, "bad flag"), ExitCommandError},
		{"wrapped", WrapExitError(ExitFailure, "duplicate", errors.New("x")), ExitFailure},
		{"plain_error", errors.New("anything"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}
