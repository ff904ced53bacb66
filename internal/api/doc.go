// Package api serves the loaded configuration over HTTP for the serve
// command: a health check backed by the storage handle and a read-only view
// of the settings with credentials masked.
package api
