package core

import (
	"context"
	"errors"
	"strings"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/spf13/cast"
)

// ErrMissingID is returned by RequireID for documents without an id.
var ErrMissingID = errors.New("document has no id")

// RequireID rejects documents without a non-empty "id".
func RequireID(_ context.Context, doc component.Document) error {
	switch id := doc["id"].(type) {
	case string:
		if strings.TrimSpace(id) != "" {
			return nil
		}
	case nil:
	default:
		return nil
	}
	return ErrMissingID
}

// TrimStrings trims surrounding whitespace from every string value, including
// strings inside lists.
func TrimStrings(doc component.Document) (component.Document, error) {
	out := make(component.Document, len(doc))
	for k, v := range doc {
		switch t := v.(type) {
		case string:
			out[k] = strings.TrimSpace(t)
		case []any:
			items := make([]any, len(t))
			for i, item := range t {
				if s, ok := item.(string); ok {
					items[i] = strings.TrimSpace(s)
				} else {
					items[i] = item
				}
			}
			out[k] = items
		default:
			out[k] = v
		}
	}
	return out, nil
}

// NameTokens runs the name of doc through PROCESSORS. The name is read from
// NAME_FIELD and may be a single string or a list of them. Before the
// pipeline is resolved the raw words are returned.
func NameTokens(cfg *config.Config, doc component.Document) []string {
	field := cfg.NameField
	if field == "" {
		field = "name"
	}

	var names []string
	switch v := doc[field].(type) {
	case nil:
		return nil
	case string:
		names = []string{v}
	default:
		names = cast.ToStringSlice(v)
	}

	if cfg.Pipeline == nil {
		var words []string
		for _, n := range names {
			words = append(words, strings.Fields(n)...)
		}
		return words
	}
	tokens := names
	for _, p := range cfg.Pipeline.Processors {
		tokens = p(tokens)
	}
	return tokens
}
