package override

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/phrazzld/addok/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoader() *Loader {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.New()
	require.NoError(t, err)
	return cfg
}

func TestLoadFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "yaml",
			file: "local.yaml",
			content: `
BUCKET_SIZE: 50
FILTERS: [type, citycode]
EXTRA_FIELDS:
  - {key: insee, boost: 2}
helper: ignored
`,
		},
		{
			name: "yml",
			file: "local.yml",
			content: `
BUCKET_SIZE: 50
FILTERS: [type, citycode]
EXTRA_FIELDS: [{key: insee, boost: 2}]
`,
		},
		{
			name: "toml",
			file: "local.toml",
			content: `
BUCKET_SIZE = 50
FILTERS = ["type", "citycode"]
helper = "ignored"

[[EXTRA_FIELDS]]
key = "insee"
boost = 2
`,
		},
		{
			name:    "json",
			file:    "local.json",
			content: `{"BUCKET_SIZE": 50, "FILTERS": ["type", "citycode"], "EXTRA_FIELDS": [{"key": "insee", "boost": 2}], "helper": 1}`,
		},
		{
			name: "jsonc",
			file: "local.jsonc",
			content: `{
  // smaller buckets for tests
  "BUCKET_SIZE": 50,
  "FILTERS": ["type", "citycode"],
  /* trailing commas are allowed */
  "EXTRA_FIELDS": [{"key": "insee", "boost": 2},],
}`,
		},
		{
			name: "hcl",
			file: "local.hcl",
			content: `
BUCKET_SIZE  = 50
FILTERS      = ["type", "citycode"]
EXTRA_FIELDS = [{ key = "insee", boost = 2 }]
helper       = "ignored"
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newConfig(t)
			path := writeFile(t, tc.file, tc.content)

			require.NoError(t, newLoader().Load(path, cfg))
			assert.Equal(t, 50, cfg.BucketSize)
			assert.Equal(t, []string{"type", "citycode"}, cfg.Filters)
			require.Len(t, cfg.ExtraFields, 1)
			assert.Equal(t, "insee", cfg.ExtraFields[0].Key)
			assert.InDelta(t, 2.0, cfg.ExtraFields[0].Boost, 1e-9)
			assert.Nil(t, cfg.Get("helper"))
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg := newConfig(t)
	before := cfg.Snapshot()

	require.NoError(t, newLoader().Load("", cfg))
	assert.Equal(t, before, cfg.Snapshot())
}

func TestLoadExpressions(t *testing.T) {
	cfg := newConfig(t)
	require.NoError(t, cfg.Set("CORS_ALLOW_ORIGIN", "*"))

	path := writeFile(t, "local.yaml", `
BUCKET_SIZE: {$expr: "BUCKET_SIZE * 2"}
PROCESSORS: {$expr: 'concat(PROCESSORS, ["pairs.tokens"])'}
CORS_ALLOW_ORIGIN: {$expr: 'CORS_ALLOW_ORIGIN + "/addok"'}
FILTERS:
  - type
  - {$expr: '"post" + "code"'}
`)

	require.NoError(t, newLoader().Load(path, cfg))
	assert.Equal(t, 200, cfg.BucketSize)
	assert.Equal(t, []string{"text.tokenize", "text.normalize", "pairs.tokens"}, cfg.Refs("PROCESSORS"))
	assert.Equal(t, "*/addok", cfg.Get("CORS_ALLOW_ORIGIN"))
	assert.Equal(t, []string{"type", "postcode"}, cfg.Filters)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr error
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nowhere.yaml") },
			wantErr: ErrUnreadable,
		},
		{
			name:    "directory",
			path:    func(t *testing.T) string { return t.TempDir() },
			wantErr: ErrUnreadable,
		},
		{
			name:    "unsupported extension",
			path:    func(t *testing.T) string { return writeFile(t, "local.py", "BUCKET_SIZE = 1\n") },
			wantErr: ErrUnsupportedFormat,
		},
		{
			name:    "malformed document",
			path:    func(t *testing.T) string { return writeFile(t, "local.json", `{"BUCKET_SIZE": `) },
			wantErr: ErrDecode,
		},
		{
			name:    "malformed hcl",
			path:    func(t *testing.T) string { return writeFile(t, "local.hcl", "BUCKET_SIZE = = 1\n") },
			wantErr: ErrDecode,
		},
		{
			name:    "broken expression",
			path:    func(t *testing.T) string { return writeFile(t, "local.yaml", `BUCKET_SIZE: {$expr: "BUCKET_SIZE *"}`) },
			wantErr: ErrExpression,
		},
		{
			name: "unquoted null in a field descriptor",
			path: func(t *testing.T) string {
				return writeFile(t, "local.yaml", "EXTRA_FIELDS:\n  - {key: insee, null: false}\n")
			},
			wantErr: config.ErrInvalidValue,
		},
		{
			name:    "unconvertible value",
			path:    func(t *testing.T) string { return writeFile(t, "local.yaml", "BUCKET_SIZE: lots\n") },
			wantErr: config.ErrInvalidValue,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newConfig(t)
			path := tc.path(t)

			err := newLoader().Load(path, cfg)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Contains(t, err.Error(), path, "the diagnostic names the file")

			var fileErr *FileError
			require.ErrorAs(t, err, &fileErr)
			assert.Equal(t, path, fileErr.Path)
		})
	}
}

func TestLoadNullableField(t *testing.T) {
	cfg := newConfig(t)
	path := writeFile(t, "local.yaml", `
EXTRA_FIELDS:
  - {key: insee, nullable: false}
  - {key: ref, "null": false}
`)

	require.NoError(t, newLoader().Load(path, cfg))
	require.Len(t, cfg.ExtraFields, 2)
	assert.False(t, cfg.ExtraFields[0].Null)
	assert.False(t, cfg.ExtraFields[1].Null)
}

func TestLoadLogsPath(t *testing.T) {
	var logs bytes.Buffer
	loader := New(slog.New(slog.NewTextHandler(&logs, nil)))
	path := writeFile(t, "local.yaml", "MIN_SCORE: 0.5\n")

	require.NoError(t, loader.Load(path, newConfig(t)))
	assert.Contains(t, logs.String(), "loaded local config")
	assert.Contains(t, logs.String(), path)
}
