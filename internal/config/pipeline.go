package config

import (
	"github.com/phrazzld/addok/internal/component"
)

// Pipeline holds the components resolved from the pipeline settings, in the
// order they were listed.
type Pipeline struct {
	QueryProcessors         []component.QueryProcessor
	ResultsCollectors       []component.Collector
	SearchResultProcessors  []component.ResultProcessor
	ReverseResultProcessors []component.ResultProcessor
	Processors              []component.Processor
	Indexers                []component.Indexer
	Deindexers              []component.Indexer
	BatchProcessors         []component.BatchProcessor
	SearchPreprocessors     []component.Processor
	ResultsFormatters       []component.Formatter
	HousenumberProcessors   []component.Processor

	names map[string][]string
}

// Names returns the identifiers the components of a pipeline setting were
// resolved from, in order.
func (p *Pipeline) Names(key string) []string {
	return append([]string{}, p.names[key]...)
}

func (p *Pipeline) get(key string) any {
	switch key {
	case component.QueryProcessors.Key():
		return p.QueryProcessors
	case component.ResultsCollectors.Key():
		return p.ResultsCollectors
	case component.SearchResultProcessors.Key():
		return p.SearchResultProcessors
	case component.ReverseResultProcessors.Key():
		return p.ReverseResultProcessors
	case component.Processors.Key():
		return p.Processors
	case component.Indexers.Key():
		return p.Indexers
	case component.Deindexers.Key():
		return p.Deindexers
	case component.BatchProcessors.Key():
		return p.BatchProcessors
	case component.SearchPreprocessors.Key():
		return p.SearchPreprocessors
	case component.ResultsFormatters.Key():
		return p.ResultsFormatters
	case component.HousenumberProcessors.Key():
		return p.HousenumberProcessors
	}
	return nil
}

// Resolve replaces the identifiers of every pipeline setting with the
// components registered under them. It fails on the first identifier that
// is unknown or of the wrong kind, naming the setting and the identifier.
// Once resolved, settings hold the components, the identifiers are kept
// aside for display only and pipeline settings can no longer be changed.
func (c *Config) Resolve(r *component.Registry) error {
	if c.Pipeline != nil {
		return ErrResolved
	}

	p := &Pipeline{}
	var err error
	if p.QueryProcessors, err = component.Resolve(r, component.QueryProcessors, c.refs[component.QueryProcessors.Key()]); err != nil {
		return err
	}
	if p.ResultsCollectors, err = component.Resolve(r, component.ResultsCollectors, c.refs[component.ResultsCollectors.Key()]); err != nil {
		return err
	}
	if p.SearchResultProcessors, err = component.Resolve(r, component.SearchResultProcessors, c.refs[component.SearchResultProcessors.Key()]); err != nil {
		return err
	}
	if p.ReverseResultProcessors, err = component.Resolve(r, component.ReverseResultProcessors, c.refs[component.ReverseResultProcessors.Key()]); err != nil {
		return err
	}
	if p.Processors, err = component.Resolve(r, component.Processors, c.refs[component.Processors.Key()]); err != nil {
		return err
	}
	if p.Indexers, err = component.Resolve(r, component.Indexers, c.refs[component.Indexers.Key()]); err != nil {
		return err
	}
	if p.Deindexers, err = component.Resolve(r, component.Deindexers, c.refs[component.Deindexers.Key()]); err != nil {
		return err
	}
	if p.BatchProcessors, err = component.Resolve(r, component.BatchProcessors, c.refs[component.BatchProcessors.Key()]); err != nil {
		return err
	}
	if p.SearchPreprocessors, err = component.Resolve(r, component.SearchPreprocessors, c.refs[component.SearchPreprocessors.Key()]); err != nil {
		return err
	}
	if p.ResultsFormatters, err = component.Resolve(r, component.ResultsFormatters, c.refs[component.ResultsFormatters.Key()]); err != nil {
		return err
	}
	if p.HousenumberProcessors, err = component.Resolve(r, component.HousenumberProcessors, c.refs[component.HousenumberProcessors.Key()]); err != nil {
		return err
	}

	p.names = c.refs
	c.Pipeline = p
	c.refs = nil
	return nil
}
