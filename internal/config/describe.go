package config

import (
	"fmt"
	"reflect"

	"github.com/phrazzld/addok/internal/component"
)

// Describe returns the value of a setting in a printable form: resolved
// pipeline settings are shown by the identifiers they were resolved from
// and the storage handle by its type. The second result is false for unknown settings.
func (c *Config) Describe(key string) (any, bool) {
	if _, ok := c.Lookup(key); !ok {
		return nil, false
	}
	switch key {
	case "FIELDS", "EXTRA_FIELDS", "STORAGE":
		return c.Snapshot()[key], true
	case "DB":
		if c.DB == nil {
			return nil, true
		}
		return fmt.Sprintf("%T", c.DB), true
	}
	if component.IsPathKey(key) && c.Pipeline != nil {
		return c.Pipeline.Names(key), true
	}
	return describeValue(c.Get(key)), true
}

func describeValue(v any) any {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil
	}
	switch rv.Kind() {
	case reflect.Func:
		return component.Describe(v)
	case reflect.Slice:
		if rv.Type().Elem().Kind() != reflect.Func {
			return v
		}
		names := make([]string, rv.Len())
		for i := range names {
			names[i] = component.Describe(rv.Index(i).Interface())
		}
		return names
	}
	return v
}
