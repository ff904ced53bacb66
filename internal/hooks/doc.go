// Package hooks provides the plugin contract and the bus that runs plugin
// handlers during configuration loading.
//
// A plugin is anything with a Name. It takes part in loading by implementing
// any of the optional interfaces defined here:
// - Preconfigurer: runs before the local override file is applied
// - Configurer: runs after it, seeing the user's final settings
// - ComponentProvider: registers pipeline components by identifier
// - Commander: contributes subcommands to the addok CLI
//
// Handlers run in registration order. A plugin can be blocked by name at any
// time before a stage runs; blocking is checked when the stage is invoked,
// so it does not matter whether the plugin was registered yet.
package hooks
