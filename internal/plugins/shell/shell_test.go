package shell

import (
	"bytes"
	"context"
	"testing"

	"github.com/phrazzld/addok/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.New()
	require.NoError(t, err)
	return cfg
}

func run(t *testing.T, cfg *config.Config, args ...string) (map[string]any, error) {
	t.Helper()
	cmds := New().Commands()
	require.Len(t, cmds, 1)
	require.Equal(t, "config", cmds[0].Name)

	var out bytes.Buffer
	if err := cmds[0].Run(context.Background(), cfg, args, &out); err != nil {
		return nil, err
	}
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &doc))
	return doc, nil
}

func TestConfigCommand(t *testing.T) {
	cfg := newConfig(t)
	require.NoError(t, cfg.Set("STORAGE", map[string]any{"url": "postgres://addok:hunter2@db:5432/addok"}))
	require.NoError(t, cfg.Set("API_SECRET", "s3cr3t"))

	t.Run("single setting, any case", func(t *testing.T) {
		doc, err := run(t, cfg, "bucket_size")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"BUCKET_SIZE": 100}, doc)
	})

	t.Run("every setting", func(t *testing.T) {
		doc, err := run(t, cfg)
		require.NoError(t, err)
		assert.Len(t, doc, len(cfg.Keys()))
		assert.Equal(t, []any{"search.dedupe", "search.limit"}, doc["RESULTS_COLLECTORS"])
		assert.Equal(t, "[REDACTED]", doc["API_SECRET"])

		storage := doc["STORAGE"].(map[string]any)
		assert.NotContains(t, storage["url"], "hunter2")
	})

	t.Run("unknown setting", func(t *testing.T) {
		_, err := run(t, cfg, "BUCKET_SIZE", "NOPE")
		assert.ErrorIs(t, err, ErrUnknownSetting)
		assert.Contains(t, err.Error(), "NOPE")
	})
}
