package core

import (
	"context"
	"testing"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.New()
	require.NoError(t, err)
	return cfg
}

// TestDefaultsResolve checks that every identifier in the built-in settings
// names a core component of the right kind.
func TestDefaultsResolve(t *testing.T) {
	cfg := newConfig(t)
	r := component.NewRegistry()
	require.NoError(t, Register(r, cfg))

	require.NoError(t, cfg.Resolve(r))
	assert.Len(t, cfg.Pipeline.QueryProcessors, 2)
	assert.Len(t, cfg.Pipeline.ResultsFormatters, 1)
}

func TestRegisterTwice(t *testing.T) {
	cfg := newConfig(t)
	r := component.NewRegistry()
	require.NoError(t, Register(r, cfg))
	assert.ErrorIs(t, Register(r, cfg), component.ErrDuplicate)
}

func TestQueryProcessors(t *testing.T) {
	cfg := newConfig(t)
	require.NoError(t, cfg.Set("QUERY_MAX_LENGTH", 5))
	check := CheckQueryLength(cfg)

	assert.Equal(t, "rue d", check("rue des lilas"))
	assert.Equal(t, "été", check("été"))

	require.NoError(t, cfg.Set("QUERY_MAX_LENGTH", 0))
	assert.Equal(t, "rue des lilas", check("rue des lilas"), "the limit is read when the component runs")

	tests := []struct {
		in   string
		want string
	}{
		{"  12 rue  des Lilas ", "12 rue des Lilas"},
		{"rue des lilas,paris;france", "rue des lilas paris france"},
		{"a|b", "a b"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, CleanQuery(tc.in), tc.in)
	}
}

func TestTokenProcessors(t *testing.T) {
	tests := []struct {
		name string
		fn   component.Processor
		in   []string
		want []string
	}{
		{"tokenize", Tokenize, []string{"12 rue de l'Église", "Saint-Étienne"}, []string{"12", "rue", "de", "l", "Église", "Saint", "Étienne"}},
		{"tokenize empty", Tokenize, []string{"  -- "}, []string{}},
		{"normalize", Normalize, []string{"Église", "ÇA", "Straße"}, []string{"eglise", "ca", "straße"}},
		{"housenumber suffix letter", NormalizeHousenumber, []string{"12", "B", "rue"}, []string{"12b", "rue"}},
		{"housenumber bis", NormalizeHousenumber, []string{"3", "Bis"}, []string{"3bis"}},
		{"housenumber alone", NormalizeHousenumber, []string{"3"}, []string{"3"}},
		{"no number", NormalizeHousenumber, []string{"rue", "b"}, []string{"rue", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.fn(tc.in))
		})
	}
}

func TestCollectors(t *testing.T) {
	ctx := context.Background()
	s := &component.Search{
		Limit: 2,
		Results: []*component.Result{
			{ID: "a", Score: 0.9},
			{ID: "b", Score: 0.8},
			{ID: "a", Score: 0.7},
			{ID: "c", Score: 0.6},
		},
	}

	require.NoError(t, Dedupe(ctx, s))
	ids := func() []string {
		out := make([]string, len(s.Results))
		for i, r := range s.Results {
			out[i] = r.ID
		}
		return out
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids())
	assert.InDelta(t, 0.9, s.Results[0].Score, 1e-9, "the first duplicate is kept")

	require.NoError(t, Limit(ctx, s))
	assert.Equal(t, []string{"a", "b"}, ids())

	s.Limit = 0
	require.NoError(t, Limit(ctx, s))
	assert.Len(t, s.Results, 2)
}

func TestResultProcessors(t *testing.T) {
	cfg := newConfig(t)
	cfg.PostProcess()
	label := Label(cfg)

	r := &component.Result{Score: 0.123456, Attributes: map[string]any{
		"name":     "Rue des Lilas",
		"postcode": "75019",
		"city":     []any{"Paris"},
	}}
	RoundScore(nil, r)
	label(nil, r)
	assert.InDelta(t, 0.1235, r.Score, 1e-12)
	assert.Equal(t, []string{"Rue des Lilas 75019 Paris"}, r.Labels)

	existing := &component.Result{Labels: []string{"kept"}, Attributes: map[string]any{"name": "x"}}
	label(nil, existing)
	assert.Equal(t, []string{"kept"}, existing.Labels)

	empty := &component.Result{}
	label(nil, empty)
	assert.Empty(t, empty.Labels)
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, RequireID(ctx, component.Document{"id": "abc"}))
	assert.NoError(t, RequireID(ctx, component.Document{"id": 12}))
	assert.ErrorIs(t, RequireID(ctx, component.Document{"id": "  "}), ErrMissingID)
	assert.ErrorIs(t, RequireID(ctx, component.Document{"name": "x"}), ErrMissingID)

	doc, err := TrimStrings(component.Document{
		"name":  "  Rue des Lilas ",
		"city":  []any{" Paris ", 75},
		"score": 1.5,
	})
	require.NoError(t, err)
	assert.Equal(t, component.Document{
		"name":  "Rue des Lilas",
		"city":  []any{"Paris", 75},
		"score": 1.5,
	}, doc)
}

func TestGeoJSON(t *testing.T) {
	s := &component.Search{
		Query: "lilas",
		Limit: 5,
		Results: []*component.Result{
			{ID: "a", Score: 0.5, Labels: []string{"Rue des Lilas"}, Attributes: map[string]any{"lon": 2.39, "lat": "48.87", "type": "street"}},
			{ID: "b", Score: 0.4, Attributes: map[string]any{"type": "municipality"}},
		},
	}

	out, err := GeoJSON(s)
	require.NoError(t, err)
	fc := out.(map[string]any)
	assert.Equal(t, "FeatureCollection", fc["type"])
	assert.Equal(t, "lilas", fc["query"])

	features := fc["features"].([]map[string]any)
	require.Len(t, features, 2)
	assert.Equal(t, map[string]any{"type": "Point", "coordinates": []float64{2.39, 48.87}}, features[0]["geometry"])
	assert.Equal(t, map[string]any{"id": "a", "score": 0.5, "label": "Rue des Lilas", "type": "street"}, features[0]["properties"])
	assert.NotContains(t, features[1], "geometry")
}

func TestNameTokens(t *testing.T) {
	cfg := newConfig(t)
	doc := component.Document{"name": []any{"Rue de l'Église", "Grand'Rue"}}

	assert.Equal(t, []string{"Rue", "de", "l'Église", "Grand'Rue"}, NameTokens(cfg, doc), "raw words before resolution")

	r := component.NewRegistry()
	require.NoError(t, Register(r, cfg))
	require.NoError(t, cfg.Resolve(r))
	cfg.PostProcess()

	assert.Equal(t, []string{"rue", "de", "l", "eglise", "grand", "rue"}, NameTokens(cfg, doc))
	assert.Nil(t, NameTokens(cfg, component.Document{"id": "x"}))
}
