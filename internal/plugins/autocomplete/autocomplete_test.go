package autocomplete

import (
	"context"
	"testing"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEdgeNgrams(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		min    int
		want   []string
	}{
		{name: "short token", tokens: []string{"de"}, min: 2, want: []string{}},
		{name: "one token", tokens: []string{"lilas"}, min: 2, want: []string{"li", "lil", "lila"}},
		{name: "shared prefixes", tokens: []string{"rue", "ruelle"}, min: 3, want: []string{"rue", "ruel", "ruell"}},
		{name: "runes", tokens: []string{"été"}, min: 1, want: []string{"é", "ét"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EdgeNgrams(tc.tokens, tc.min))
		})
	}
}

func TestPlugin(t *testing.T) {
	ctx := context.Background()
	cfg, err := config.New()
	require.NoError(t, err)

	p := New()
	require.NoError(t, p.Preconfigure(ctx, cfg))
	assert.Equal(t, DefaultMinLength, cfg.Get(MinLengthKey))
	require.NoError(t, cfg.Set(MinLengthKey, "4"), "the override file may change it")

	r := component.NewRegistry()
	require.NoError(t, core.Register(r, cfg))
	require.NoError(t, p.RegisterComponents(r, cfg))
	require.NoError(t, p.Configure(ctx, cfg))
	require.NoError(t, cfg.Resolve(r))
	cfg.PostProcess()

	doc := component.Document{"id": "1", "name": "Boulevard Voltaire"}
	for _, index := range cfg.Pipeline.Indexers {
		require.NoError(t, index(ctx, doc))
	}
	assert.Equal(t, []string{"boul", "boule", "boulev", "bouleva", "boulevar", "volt", "volta", "voltai", "voltair"}, doc[Field])

	for _, deindex := range cfg.Pipeline.Deindexers {
		require.NoError(t, deindex(ctx, doc))
	}
	assert.NotContains(t, doc, Field)
}

func TestConfigureKeepsListedIndexers(t *testing.T) {
	tests := []struct {
		name     string
		indexers []string
	}{
		{name: "already listed", indexers: []string{"index.require_id", IndexRef}},
		{name: "listed first", indexers: []string{IndexRef, "index.require_id"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			cfg, err := config.New()
			require.NoError(t, err)
			require.NoError(t, cfg.SetRefs("INDEXERS", tc.indexers...))

			p := New()
			require.NoError(t, p.Configure(ctx, cfg))
			require.NoError(t, p.Configure(ctx, cfg))
			assert.Equal(t, tc.indexers, cfg.Refs("INDEXERS"))
			assert.Equal(t, []string{"index.require_id", DeindexRef}, cfg.Refs("DEINDEXERS"))
		})
	}
}
