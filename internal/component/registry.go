package component

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrNotRegistered is returned when an identifier has no registered component.
	ErrNotRegistered = errors.New("component not registered")

	// ErrWrongType is returned when an identifier names a component of a
	// different kind than the setting asks for.
	ErrWrongType = errors.New("component has wrong type")

	// ErrDuplicate is returned when an identifier is registered twice.
	ErrDuplicate = errors.New("component already registered")
)

// Registry stores components keyed by identifier. Identifiers are unique
// across kinds; the Go type recorded at registration decides which settings
// an identifier may appear in.
type Registry struct {
	mu         sync.RWMutex
	components map[string]any
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]any)}
}

// Register stores fn under name guarding against duplicates and nil values.
func Register[T any](r *Registry, name string, fn T) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("component: name must not be empty")
	}
	if v := reflect.ValueOf(fn); !v.IsValid() || (v.Kind() == reflect.Func && v.IsNil()) {
		return fmt.Errorf("component: %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.components[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	r.components[name] = fn
	return nil
}

// MustRegister is Register for static registration tables.
func MustRegister[T any](r *Registry, name string, fn T) {
	if err := Register(r, name, fn); err != nil {
		panic(err)
	}
}

// Lookup returns the component registered under name as a T.
func Lookup[T any](r *Registry, name string) (T, error) {
	var zero T
	r.mu.RLock()
	v, ok := r.components[name]
	r.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	fn, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q is %T, want %T", ErrWrongType, name, v, zero)
	}
	return fn, nil
}

// Names returns every registered identifier, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveError reports a reference in a pipeline setting that could not be
// turned into a component.
type ResolveError struct {
	Key string // setting name, e.g. "INDEXERS"
	Ref string // identifier as written in the configuration
	Err error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolving %s reference %q: %v", e.Key, e.Ref, e.Err)
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// Resolve looks up every reference of a kind, preserving order.
func Resolve[T any](r *Registry, kind Kind[T], refs []string) ([]T, error) {
	out := make([]T, len(refs))
	for i, ref := range refs {
		fn, err := Lookup[T](r, ref)
		if err != nil {
			return nil, &ResolveError{Key: kind.key, Ref: ref, Err: err}
		}
		out[i] = fn
	}
	return out, nil
}

// Describe returns a printable name for a resolved component: the
// qualified Go function name for funcs, the type name otherwise.
func Describe(v any) string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Func && !rv.IsNil() {
		if f := runtime.FuncForPC(rv.Pointer()); f != nil {
			return f.Name()
		}
	}
	return fmt.Sprintf("%T", v)
}
