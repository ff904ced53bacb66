// Package loader runs the staged configuration sequence: block plugins,
// register built-ins, discover, preconfigure, apply the local override
// file, configure, resolve pipeline settings, post-process and connect
// storage. The sequence runs at most once per Loader.
package loader
