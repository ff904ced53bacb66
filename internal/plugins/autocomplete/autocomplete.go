// Package autocomplete indexes the edge n-grams of document names so that
// partial words can match while the user types.
package autocomplete

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/core"
	"github.com/spf13/cast"
)

// Name is the identity of the plugin.
const Name = "addok.autocomplete"

// Field is the document key holding the computed n-grams.
const Field = "_edge_ngrams"

// MinLengthKey names the setting holding the shortest n-gram indexed.
const MinLengthKey = "AUTOCOMPLETE_MIN_LENGTH"

// DefaultMinLength is the value set during preconfigure.
const DefaultMinLength = 2

// Component identifiers.
const (
	IndexRef   = "autocomplete.index"
	DeindexRef = "autocomplete.deindex"
)

// Plugin is the autocomplete plugin.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Name implements hooks.Plugin.
func (*Plugin) Name() string { return Name }

// Preconfigure sets the default minimum n-gram length.
func (*Plugin) Preconfigure(_ context.Context, cfg *config.Config) error {
	return cfg.Set(MinLengthKey, DefaultMinLength)
}

// RegisterComponents implements hooks.ComponentProvider.
func (*Plugin) RegisterComponents(r *component.Registry, cfg *config.Config) error {
	return errors.Join(
		component.Register(r, IndexRef, Index(cfg)),
		component.Register(r, DeindexRef, component.Indexer(Deindex)),
	)
}

// Configure appends the n-gram indexers unless they are already listed.
func (*Plugin) Configure(_ context.Context, cfg *config.Config) error {
	return errors.Join(
		appendOnce(cfg, "INDEXERS", IndexRef),
		appendOnce(cfg, "DEINDEXERS", DeindexRef),
	)
}

// appendOnce appends ref to a pipeline setting unless it is already listed.
func appendOnce(cfg *config.Config, key, ref string) error {
	if slices.Contains(cfg.Refs(key), ref) {
		return nil
	}
	return cfg.AppendRefs(key, ref)
}

// Index stores under Field the sorted edge n-grams of the name tokens.
func Index(cfg *config.Config) component.Indexer {
	return func(_ context.Context, doc component.Document) error {
		minLen, err := cast.ToIntE(cfg.Get(MinLengthKey))
		if err != nil || minLen <= 0 {
			minLen = DefaultMinLength
		}
		doc[Field] = EdgeNgrams(core.NameTokens(cfg, doc), minLen)
		return nil
	}
}

// Deindex removes the n-grams written by Index.
func Deindex(_ context.Context, doc component.Document) error {
	delete(doc, Field)
	return nil
}

// EdgeNgrams returns the distinct prefixes of every token that are at least
// minLen runes long and shorter than the token itself, sorted.
func EdgeNgrams(tokens []string, minLen int) []string {
	seen := make(map[string]struct{})
	for _, t := range tokens {
		r := []rune(t)
		for n := minLen; n < len(r); n++ {
			seen[string(r[:n])] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}
