package hooks

import (
	"errors"
	"fmt"
)

var (
	// ErrHandlerFailed is matched by every error a stage handler returns
	// through Invoke.
	ErrHandlerFailed = errors.New("plugin handler failed")

	// ErrDuplicatePlugin is returned when a plugin name is registered twice.
	ErrDuplicatePlugin = errors.New("plugin already registered")

	// ErrInvalidPlugin is returned for nil plugins or plugins without a name.
	ErrInvalidPlugin = errors.New("invalid plugin")
)

// HandlerError reports which plugin failed during which stage.
type HandlerError struct {
	Stage  Stage
	Plugin string
	Err    error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s handler of plugin %s failed: %v", e.Stage, e.Plugin, e.Err)
}

// Unwrap exposes both ErrHandlerFailed and the handler's own error.
func (e *HandlerError) Unwrap() []error {
	return []error{ErrHandlerFailed, e.Err}
}
