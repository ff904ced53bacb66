package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/phrazzld/addok/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate clears the ADDOK_* inputs so the host environment cannot leak in.
func isolate(t *testing.T) {
	for _, name := range []string{
		"ADDOK_BLOCKED_PLUGINS",
		"ADDOK_CONFIG_FILE",
		"ADDOK_PLUGINS_DIR",
		"ADDOK_DISCOVER",
		"ADDOK_LOG_LEVEL",
		"ADDOK_LOG_FORMAT",
	} {
		t.Setenv(name, "")
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	isolate(t)
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), append([]string{"--no-discover"}, args...), &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	return exitErr.Code
}

func TestRunHelp(t *testing.T) {
	out, _, err := runCLI(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--block")
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown flag", args: []string{"--frobnicate"}, want: "unknown flag"},
		{name: "bad log format", args: []string{"--log-format", "xml", "config"}, want: "invalid environment"},
		{name: "unknown command", args: []string{"reindex"}, want: `unknown command "reindex"`},
		{name: "blocked command", args: []string{"--block", "addok.shell", "config"}, want: `unknown command "config"`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := runCLI(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, exitUsage, exitCode(t, err))
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRunListsCommands(t *testing.T) {
	out, _, err := runCLI(t)
	require.NoError(t, err)
	for _, name := range []string{"batch", "config", "serve"} {
		assert.Contains(t, out, "  "+name)
	}
}

func TestRunConfigCommand(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "bucket_size")
		require.NoError(t, err)
		assert.Equal(t, "BUCKET_SIZE: 100\n", out)
	})

	t.Run("plugin settings", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "CORS_ALLOW_HEADERS", "AUTOCOMPLETE_MIN_LENGTH")
		require.NoError(t, err)
		assert.Equal(t, "AUTOCOMPLETE_MIN_LENGTH: 2\nCORS_ALLOW_HEADERS: X-Requested-With\n", out)
	})

	t.Run("override file", func(t *testing.T) {
		path := testutils.WriteFile(t, "local.toml", "BUCKET_SIZE = 5\nCORS_ALLOW_HEADERS = \"X-Custom\"\n")
		out, stderr, err := runCLI(t, "--config", path, "config", "BUCKET_SIZE", "CORS_ALLOW_HEADERS")
		require.NoError(t, err)
		assert.Equal(t, "BUCKET_SIZE: 5\nCORS_ALLOW_HEADERS: X-Custom\n", out)
		assert.Contains(t, stderr, "loaded local config")
	})

	t.Run("pipeline settings show the components", func(t *testing.T) {
		out, _, err := runCLI(t, "config", "INDEXERS")
		require.NoError(t, err)
		var doc map[string][]string
		require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
		assert.Equal(t, []string{"index.require_id", "pairs.index", "autocomplete.index"}, doc["INDEXERS"])
	})

	t.Run("unknown setting", func(t *testing.T) {
		_, _, err := runCLI(t, "config", "NOPE")
		require.Error(t, err)
		assert.Equal(t, exitFailure, exitCode(t, err))
	})
}

func TestRunLoadFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	_, _, err := runCLI(t, "--config", path, "config")
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(t, err))
	assert.Contains(t, err.Error(), path)
}
