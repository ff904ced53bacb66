package component

import "context"

// Document is a raw document as handed to indexers and batch processors.
type Document = map[string]any

// Result is a single search or reverse-geocoding hit.
type Result struct {
	ID         string
	Score      float64
	Labels     []string
	Attributes map[string]any
}

// Search carries the state of one query through collectors, result
// processors and formatters.
type Search struct {
	Query   string
	Tokens  []string
	Limit   int
	Fuzzy   bool
	Results []*Result
}

// QueryProcessor rewrites the raw query string before tokenization.
type QueryProcessor func(query string) string

// Processor transforms a token stream. It backs PROCESSORS,
// SEARCH_PREPROCESSORS and HOUSENUMBER_PROCESSORS.
type Processor func(tokens []string) []string

// Collector gathers or reduces candidate results for a search.
type Collector func(ctx context.Context, s *Search) error

// ResultProcessor adjusts a single result after collection.
type ResultProcessor func(s *Search, r *Result)

// Indexer writes (or, for DEINDEXERS, removes) derived data for a document.
type Indexer func(ctx context.Context, doc Document) error

// BatchProcessor transforms a document read from an import batch.
// Returning a nil document drops it.
type BatchProcessor func(doc Document) (Document, error)

// Formatter renders the final results of a search.
type Formatter func(s *Search) (any, error)
