package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Field describes one indexed document field.
type Field struct {
	Key   string `validate:"required"`
	Type  string
	Boost float64 `validate:"gte=0"`

	// Null allows documents without a value for the field.
	Null bool

	// Options keeps any other key of the descriptor for plugins to read.
	Options map[string]any
}

// StorageSettings holds the connection parameters found under STORAGE.
type StorageSettings struct {
	URL            string        `validate:"required"`
	MaxConns       int32         `validate:"gte=0"`
	MinConns       int32         `validate:"gte=0"`
	ConnectTimeout time.Duration `validate:"gte=0"`
}

// toFields converts a FIELDS style value: a list of descriptors, each a
// mapping with at least a "key".
func toFields(v any) ([]Field, error) {
	switch fs := v.(type) {
	case nil:
		return []Field{}, nil
	case []Field:
		return append([]Field(nil), fs...), nil
	case Field:
		return []Field{fs}, nil
	}

	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("field list: %w", err)
	}

	fields := make([]Field, 0, len(items))
	for i, item := range items {
		f, err := toField(item)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// errEmptyOptionName is reported for a descriptor entry without a name,
// which is what YAML makes of an unquoted null key.
var errEmptyOptionName = errors.New(`descriptor has an unnamed entry (quote "null" or write "nullable")`)

func toField(v any) (Field, error) {
	if f, ok := v.(Field); ok {
		return f, nil
	}

	m, err := cast.ToStringMapE(v)
	if err != nil {
		return Field{}, err
	}

	f := Field{Boost: 1, Null: true}
	for k, val := range m {
		switch k {
		case "key":
			f.Key, err = cast.ToStringE(val)
		case "type":
			f.Type, err = cast.ToStringE(val)
		case "boost":
			f.Boost, err = cast.ToFloat64E(val)
		case "null", "nullable":
			f.Null, err = cast.ToBoolE(val)
		case "":
			return Field{}, errEmptyOptionName
		default:
			if f.Options == nil {
				f.Options = make(map[string]any)
			}
			f.Options[k] = val
		}
		if err != nil {
			return Field{}, fmt.Errorf("%s: %w", k, err)
		}
	}
	if f.Key == "" {
		return Field{}, fmt.Errorf("missing key")
	}
	return f, nil
}

// toStorage converts a STORAGE value. A plain string is taken as the URL.
func toStorage(v any) (StorageSettings, error) {
	switch s := v.(type) {
	case StorageSettings:
		return s, nil
	case string:
		return StorageSettings{URL: s}, nil
	}

	m, err := cast.ToStringMapE(v)
	if err != nil {
		return StorageSettings{}, err
	}

	var s StorageSettings
	for k, val := range m {
		switch k {
		case "url":
			s.URL, err = cast.ToStringE(val)
		case "max_conns":
			s.MaxConns, err = cast.ToInt32E(val)
		case "min_conns":
			s.MinConns, err = cast.ToInt32E(val)
		case "connect_timeout":
			s.ConnectTimeout, err = cast.ToDurationE(val)
		default:
			err = fmt.Errorf("unknown storage option")
		}
		if err != nil {
			return StorageSettings{}, fmt.Errorf("%s: %w", k, err)
		}
	}
	return s, nil
}

// fieldsValue renders fields the way they are written in configuration
// files, for Snapshot and expression environments.
func fieldsValue(fields []Field) []map[string]any {
	out := make([]map[string]any, len(fields))
	for i, f := range fields {
		m := map[string]any{"key": f.Key, "boost": f.Boost, "null": f.Null}
		if f.Type != "" {
			m["type"] = f.Type
		}
		for k, v := range f.Options {
			m[k] = v
		}
		out[i] = m
	}
	return out
}
