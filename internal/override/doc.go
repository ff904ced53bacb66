// Package override reads the optional local configuration file and merges
// its upper-case settings into the store.
//
// The file is a declarative document. Its format is chosen by extension:
// YAML (.yaml, .yml), TOML (.toml), JSON (.json), JSON with comments
// (.jsonc) or HCL (.hcl). Any value may be written as a single-key mapping
// {"$expr": "..."}; the expression is evaluated with expr-lang against the
// settings held before the file is merged.
package override
