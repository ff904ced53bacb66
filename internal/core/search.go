package core

import (
	"context"
	"math"
	"strings"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
)

// Dedupe drops results whose ID was already seen, keeping the first.
func Dedupe(_ context.Context, s *component.Search) error {
	seen := make(map[string]struct{}, len(s.Results))
	kept := s.Results[:0]
	for _, r := range s.Results {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		kept = append(kept, r)
	}
	s.Results = kept
	return nil
}

// Limit truncates the results to the search limit when one is set.
func Limit(ctx context.Context, s *component.Search) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Limit > 0 && len(s.Results) > s.Limit {
		s.Results = s.Results[:s.Limit]
	}
	return nil
}

// RoundScore rounds scores to four decimals.
func RoundScore(_ *component.Search, r *component.Result) {
	r.Score = math.Round(r.Score*1e4) / 1e4
}

// Label fills in a result label from its name, postcode and city attributes
// when it has none. The name attribute is the one designated by NAME_FIELD.
func Label(cfg *config.Config) component.ResultProcessor {
	return func(_ *component.Search, r *component.Result) {
		if len(r.Labels) > 0 {
			return
		}
		nameKey := cfg.NameField
		if nameKey == "" {
			nameKey = "name"
		}

		var parts []string
		if name := attribute(r, nameKey); name != "" {
			parts = append(parts, name)
		}
		locality := strings.TrimSpace(attribute(r, "postcode") + " " + attribute(r, "city"))
		if locality != "" {
			parts = append(parts, locality)
		}
		if len(parts) > 0 {
			r.Labels = []string{strings.Join(parts, " ")}
		}
	}
}

func attribute(r *component.Result, key string) string {
	switch v := r.Attributes[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
