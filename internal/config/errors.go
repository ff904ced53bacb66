package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned for setting names that are not upper-case
	// identifiers.
	ErrInvalidKey = errors.New("invalid setting name")

	// ErrInvalidValue is returned when a value cannot be converted to the
	// type of a known setting.
	ErrInvalidValue = errors.New("invalid setting value")

	// ErrResolved is returned when a pipeline setting is changed after its
	// references have been resolved.
	ErrResolved = errors.New("pipeline settings already resolved")
)

// SettingError reports a failed write to a single setting.
type SettingError struct {
	Key string
	Err error
}

func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s: %v", e.Key, e.Err)
}

func (e *SettingError) Unwrap() error {
	return e.Err
}
