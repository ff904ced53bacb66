// Package testutils provides common utilities for testing across the module:
// environment setup with restore, temporary override files, discard loggers
// and an in-memory storage connector.
package testutils
