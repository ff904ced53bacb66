package core

import (
	"errors"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
)

// Register adds every core component to r. Components that depend on
// settings read them from cfg each time they run, so values changed later
// during loading are honoured.
func Register(r *component.Registry, cfg *config.Config) error {
	return errors.Join(
		component.Register(r, "text.check_query_length", CheckQueryLength(cfg)),
		component.Register(r, "text.clean_query", component.QueryProcessor(CleanQuery)),
		component.Register(r, "text.tokenize", component.Processor(Tokenize)),
		component.Register(r, "text.normalize", component.Processor(Normalize)),
		component.Register(r, "search.dedupe", component.Collector(Dedupe)),
		component.Register(r, "search.limit", component.Collector(Limit)),
		component.Register(r, "result.round_score", component.ResultProcessor(RoundScore)),
		component.Register(r, "result.label", Label(cfg)),
		component.Register(r, "index.require_id", component.Indexer(RequireID)),
		component.Register(r, "batch.trim_strings", component.BatchProcessor(TrimStrings)),
		component.Register(r, "format.geojson", component.Formatter(GeoJSON)),
		component.Register(r, "housenumber.normalize", component.Processor(NormalizeHousenumber)),
	)
}
