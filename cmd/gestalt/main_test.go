package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gestalt version")
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "validate", "../../internal/cli/testdata/bindings.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "2 binding(s) valid")

	_, err = run(t, "validate", "does-not-exist.yaml")
	assert.ErrorContains(t, err, "validation failed")
}

func TestInspectCommand_Raw(t *testing.T) {
	out, err := run(t, "inspect", "--raw", "../../internal/cli/testdata/bindings.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "| `open-mouth` |")
}
