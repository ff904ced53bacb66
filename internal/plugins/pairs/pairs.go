// Package pairs indexes the pairs of tokens found in document names, so
// that searches can favour documents whose words appear together.
package pairs

import (
	"context"
	"errors"
	"slices"
	"sort"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/core"
)

// Name is the identity of the plugin.
const Name = "addok.pairs"

// Field is the document key holding the computed pairs.
const Field = "_pairs"

// Component identifiers.
const (
	IndexRef   = "pairs.index"
	DeindexRef = "pairs.deindex"
)

// Plugin is the pairs plugin.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Name implements hooks.Plugin.
func (*Plugin) Name() string { return Name }

// RegisterComponents implements hooks.ComponentProvider.
func (*Plugin) RegisterComponents(r *component.Registry, cfg *config.Config) error {
	return errors.Join(
		component.Register(r, IndexRef, Index(cfg)),
		component.Register(r, DeindexRef, component.Indexer(Deindex)),
	)
}

// Configure appends the pair indexers unless they are already listed.
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

// Index stores under Field every unordered pair of distinct name tokens,
// each written "a|b" with a < b, sorted.
func Index(cfg *config.Config) component.Indexer {
	return func(_ context.Context, doc component.Document) error {
		doc[Field] = Pairs(core.NameTokens(cfg, doc))
		return nil
	}
}

// Deindex removes the pairs written by Index.
func Deindex(_ context.Context, doc component.Document) error {
	delete(doc, Field)
	return nil
}

// Pairs returns the sorted unordered pairs of distinct tokens.
func Pairs(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var uniq []string
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}
	sort.Strings(uniq)

	out := []string{}
	for i := range uniq {
		for j := i + 1; j < len(uniq); j++ {
			out = append(out, uniq[i]+"|"+uniq[j])
		}
	}
	return out
}
