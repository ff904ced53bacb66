package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// IsIntegrationTestEnvironment returns true if a real PostgreSQL instance is
// configured for tests.
func IsIntegrationTestEnvironment() bool {
	return os.Getenv("ADDOK_TEST_DATABASE_URL") != ""
}

// SetupEnv sets environment variables for a test and returns a function that
// restores their previous state, unsetting those that were not set before.
//
//	cleanup := testutils.SetupEnv(t, map[string]string{
//	    "ADDOK_BLOCKED_PLUGINS": "addok.fuzzy",
//	})
//	defer cleanup()
func SetupEnv(t *testing.T, envVars map[string]string) func() {
	t.Helper()

	type original struct {
		value string
		set   bool
	}
	originals := make(map[string]original, len(envVars))
	for name := range envVars {
		v, ok := os.LookupEnv(name)
		originals[name] = original{value: v, set: ok}
	}

	for name, value := range envVars {
		require.NoError(t, os.Setenv(name, value), "Failed to set environment variable %s", name)
	}

	return func() {
		for name, o := range originals {
			var err error
			if o.set {
				err = os.Setenv(name, o.value)
			} else {
				err = os.Unsetenv(name)
			}
			if err != nil {
				t.Logf("Warning: Failed to restore env var %s: %v", name, err)
			}
		}
	}
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
