// Package config holds the settings store of an addok process.
//
// Settings are addressed by upper-case names (BUCKET_SIZE, FIELDS, STORAGE,
// ...). Names the service knows about are kept in typed fields and converted
// on write; any other upper-case name, typically defined by a plugin, lands
// in an open extension map and is returned as written.
//
// A Config is seeded from the embedded defaults.yaml and then extended, in
// order, by plugin hooks and the local override file. Pipeline settings
// (see component.PathKeys) hold component identifiers until Resolve swaps
// them for the registered components. PostProcess derives the canonical
// name and house-number fields. Once the loader is done the Config is only
// read.
package config
