package component

// Kind binds a pipeline setting name to the Go type of the components it
// lists.
type Kind[T any] struct {
	key string
}

// Key returns the setting name the kind is resolved from.
func (k Kind[T]) Key() string { return k.key }

var (
	QueryProcessors         = Kind[QueryProcessor]{key: "QUERY_PROCESSORS"}
	ResultsCollectors       = Kind[Collector]{key: "RESULTS_COLLECTORS"}
	SearchResultProcessors  = Kind[ResultProcessor]{key: "SEARCH_RESULT_PROCESSORS"}
	ReverseResultProcessors = Kind[ResultProcessor]{key: "REVERSE_RESULT_PROCESSORS"}
	Processors              = Kind[Processor]{key: "PROCESSORS"}
	Indexers                = Kind[Indexer]{key: "INDEXERS"}
	Deindexers              = Kind[Indexer]{key: "DEINDEXERS"}
	BatchProcessors         = Kind[BatchProcessor]{key: "BATCH_PROCESSORS"}
	SearchPreprocessors     = Kind[Processor]{key: "SEARCH_PREPROCESSORS"}
	ResultsFormatters       = Kind[Formatter]{key: "RESULTS_FORMATTERS"}
	HousenumberProcessors   = Kind[Processor]{key: "HOUSENUMBER_PROCESSORS"}
)

// PathKeys lists every setting whose value is resolved through the registry,
// in resolution order.
var PathKeys = []string{
	QueryProcessors.key,
	ResultsCollectors.key,
	SearchResultProcessors.key,
	ReverseResultProcessors.key,
	Processors.key,
	Indexers.key,
	Deindexers.key,
	BatchProcessors.key,
	SearchPreprocessors.key,
	ResultsFormatters.key,
	HousenumberProcessors.key,
}

// IsPathKey reports whether key names a resolvable pipeline setting.
func IsPathKey(key string) bool {
	for _, k := range PathKeys {
		if k == key {
			return true
		}
	}
	return false
}
