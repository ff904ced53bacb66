// Package fuzzy widens searches that asked for fuzzy matching with
// single-edit variants of their tokens.
package fuzzy

import (
	"context"
	"slices"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
)

// Name is the identity of the plugin.
const Name = "addok.fuzzy"

// CollectRef is the identifier of the fuzzy collector.
const CollectRef = "fuzzy.collect"

// minLength is the shortest token that gets variants.
const minLength = 4

// Plugin is the fuzzy plugin.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Name implements hooks.Plugin.
func (*Plugin) Name() string { return Name }

// RegisterComponents implements hooks.ComponentProvider.
func (*Plugin) RegisterComponents(r *component.Registry, cfg *config.Config) error {
	return component.Register(r, CollectRef, Collect(cfg))
}

// Configure places the collector before search.limit, or last when the
// limit collector is not configured.
func (*Plugin) Configure(_ context.Context, cfg *config.Config) error {
	refs := cfg.Refs("RESULTS_COLLECTORS")
	if slices.Contains(refs, CollectRef) {
		return nil
	}
	i := slices.Index(refs, "search.limit")
	if i < 0 {
		i = len(refs)
	}
	return cfg.SetRefs("RESULTS_COLLECTORS", slices.Insert(refs, i, CollectRef)...)
}

// Collect appends to the tokens of a fuzzy search their variants within
// MAX_EDIT_DISTANCE. Only a distance of one is supported; zero disables
// the collector. Searches that already reached their limit are left alone.
func Collect(cfg *config.Config) component.Collector {
	return func(_ context.Context, s *component.Search) error {
		if !s.Fuzzy || cfg.MaxEditDistance <= 0 {
			return nil
		}
		if s.Limit > 0 && len(s.Results) >= s.Limit {
			return nil
		}

		seen := make(map[string]struct{}, len(s.Tokens))
		for _, t := range s.Tokens {
			seen[t] = struct{}{}
		}
		for _, t := range s.Tokens {
			for _, v := range Variants(t) {
				if _, ok := seen[v]; !ok {
					seen[v] = struct{}{}
					s.Tokens = append(s.Tokens, v)
				}
			}
		}
		return nil
	}
}

// Variants returns the deletions and adjacent transpositions of token, in
// order of position. Tokens shorter than four runes have none.
func Variants(token string) []string {
	r := []rune(token)
	if len(r) < minLength {
		return nil
	}

	var out []string
	add := func(v []rune) {
		s := string(v)
		if s != token && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	for i := range r {
		add(slices.Delete(slices.Clone(r), i, i+1))
	}
	for i := 0; i < len(r)-1; i++ {
		v := slices.Clone(r)
		v[i], v[i+1] = v[i+1], v[i]
		add(v)
	}
	return out
}
