// Package core holds the default pipeline components referenced by the
// built-in settings and registers them under their identifiers.
package core
