// Package component holds the typed registry that turns the identifiers found
// in pipeline settings (QUERY_PROCESSORS, INDEXERS, ...) into callable
// processing units.
//
// Every resolvable kind is bound to a Go type at compile time through a
// Kind value. Components are registered under plain identifiers such as
// "text.tokenize" by the package that implements them, during startup and
// before configuration is resolved. Resolution is a map lookup; nothing is
// discovered by reflection or symbol lookup at runtime.
package component
