package override

import (
	"errors"
	"fmt"
)

var (
	// ErrUnreadable is returned when the local config file cannot be read.
	ErrUnreadable = errors.New("cannot read local config file")

	// ErrUnsupportedFormat is returned for file extensions without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported local config format")

	// ErrDecode is returned when the file content cannot be decoded.
	ErrDecode = errors.New("invalid local config document")

	// ErrExpression is returned when a $expr value fails to compile or run.
	ErrExpression = errors.New("invalid local config expression")
)

// FileError carries the path of the local config file that failed.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("local config %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}
