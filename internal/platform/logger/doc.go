// Package logger builds the process logger from the log settings given on
// the command line.
//
// It uses the standard library log/slog package with a JSON handler by
// default and a text handler for interactive use.
package logger
