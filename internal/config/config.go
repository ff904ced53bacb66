package config

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/store"
	"github.com/spf13/cast"
)

var keyPattern = regexp.MustCompile(`^_*[A-Z][A-Z0-9_]*$`)

// IsSettingKey reports whether key is an upper-case setting name.
func IsSettingKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Config holds all settings of an addok process.
// Known settings are typed fields; everything else lives in an extension
// map reachable through Get and Set.
type Config struct {
	LogDir           string
	BucketSize       int
	MaxEditDistance  int
	CommonThreshold  int
	DefaultBoost     float64
	GeohashPrecision int
	MinScore         float64
	QueryMaxLength   int
	Filters          []string

	// Fields lists the indexed document fields. PostProcess appends
	// ExtraFields to it.
	Fields      []Field
	ExtraFields []Field

	// HousenumbersField and NameField are derived by PostProcess.
	HousenumbersField string
	NameField         string

	// Storage is handed to the storage connector at the end of loading.
	Storage StorageSettings

	// DB is the storage handle published once loading completes.
	DB store.DB

	// Pipeline holds the resolved components. It is nil until Resolve runs.
	Pipeline *Pipeline

	refs  map[string][]string
	extra map[string]any
}

type setting struct {
	get func(c *Config) any
	set func(c *Config, v any) error
}

func intSetting(field func(c *Config) *int) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			n, err := cast.ToIntE(v)
			if err != nil {
				return err
			}
			*field(c) = n
			return nil
		},
	}
}

func floatSetting(field func(c *Config) *float64) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			f, err := cast.ToFloat64E(v)
			if err != nil {
				return err
			}
			*field(c) = f
			return nil
		},
	}
}

func stringSetting(field func(c *Config) *string) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			s, err := cast.ToStringE(v)
			if err != nil {
				return err
			}
			*field(c) = s
			return nil
		},
	}
}

func fieldsSetting(field func(c *Config) *[]Field) setting {
	return setting{
		get: func(c *Config) any { return *field(c) },
		set: func(c *Config, v any) error {
			fs, err := toFields(v)
			if err != nil {
				return err
			}
			*field(c) = fs
			return nil
		},
	}
}

var settings = map[string]setting{
	"LOG_DIR":            stringSetting(func(c *Config) *string { return &c.LogDir }),
	"BUCKET_SIZE":        intSetting(func(c *Config) *int { return &c.BucketSize }),
	"MAX_EDIT_DISTANCE":  intSetting(func(c *Config) *int { return &c.MaxEditDistance }),
	"COMMON_THRESHOLD":   intSetting(func(c *Config) *int { return &c.CommonThreshold }),
	"DEFAULT_BOOST":      floatSetting(func(c *Config) *float64 { return &c.DefaultBoost }),
	"GEOHASH_PRECISION":  intSetting(func(c *Config) *int { return &c.GeohashPrecision }),
	"MIN_SCORE":          floatSetting(func(c *Config) *float64 { return &c.MinScore }),
	"QUERY_MAX_LENGTH":   intSetting(func(c *Config) *int { return &c.QueryMaxLength }),
	"HOUSENUMBERS_FIELD": stringSetting(func(c *Config) *string { return &c.HousenumbersField }),
	"NAME_FIELD":         stringSetting(func(c *Config) *string { return &c.NameField }),
	"FIELDS":             fieldsSetting(func(c *Config) *[]Field { return &c.Fields }),
	"EXTRA_FIELDS":       fieldsSetting(func(c *Config) *[]Field { return &c.ExtraFields }),
	"FILTERS": {
		get: func(c *Config) any { return c.Filters },
		set: func(c *Config, v any) (err error) {
			c.Filters, err = cast.ToStringSliceE(v)
			return err
		},
	},
	"STORAGE": {
		get: func(c *Config) any { return c.Storage },
		set: func(c *Config, v any) (err error) {
			c.Storage, err = toStorage(v)
			return err
		},
	},
	"DB": {
		get: func(c *Config) any {
			if c.DB == nil {
				return nil
			}
			return c.DB
		},
		set: func(c *Config, v any) error {
			if v == nil {
				c.DB = nil
				return nil
			}
			db, ok := v.(store.DB)
			if !ok {
				return fmt.Errorf("%T is not a storage handle", v)
			}
			c.DB = db
			return nil
		},
	},
}

// New returns a Config seeded with the built-in defaults.
func New() (*Config, error) {
	c := newEmpty()
	defaults, err := Defaults()
	if err != nil {
		return nil, err
	}
	if err := c.ExtendFrom(defaults); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}
	return c, nil
}

func newEmpty() *Config {
	c := &Config{
		refs:  make(map[string][]string, len(component.PathKeys)),
		extra: make(map[string]any),
	}
	for _, key := range component.PathKeys {
		c.refs[key] = []string{}
	}
	return c
}

// Get returns the value of a setting, or nil when it is not set.
// Pipeline settings return their identifiers before Resolve and the
// resolved components after.
func (c *Config) Get(key string) any {
	if s, ok := settings[key]; ok {
		return s.get(c)
	}
	if component.IsPathKey(key) {
		if c.Pipeline != nil {
			return c.Pipeline.get(key)
		}
		return c.Refs(key)
	}
	return c.extra[key]
}

// Lookup is Get with a presence flag.
func (c *Config) Lookup(key string) (any, bool) {
	if _, ok := settings[key]; ok {
		return c.Get(key), true
	}
	if component.IsPathKey(key) {
		return c.Get(key), true
	}
	v, ok := c.extra[key]
	return v, ok
}

// Set writes a single setting, converting it when the name is known.
func (c *Config) Set(key string, value any) error {
	if !IsSettingKey(key) {
		return &SettingError{Key: key, Err: ErrInvalidKey}
	}

	if s, ok := settings[key]; ok {
		if err := s.set(c, value); err != nil {
			return &SettingError{Key: key, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
		}
		return nil
	}

	if component.IsPathKey(key) {
		refs, err := cast.ToStringSliceE(value)
		if err != nil {
			return &SettingError{Key: key, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)}
		}
		return c.SetRefs(key, refs...)
	}

	c.extra[key] = value
	return nil
}

// ExtendFrom copies every upper-case entry of source into the store,
// overwriting existing values. Other entries are ignored. Entries are
// applied in name order so that conversion errors are reported
// deterministically.
func (c *Config) ExtendFrom(source map[string]any) error {
	keys := make([]string, 0, len(source))
	for k := range source {
		if IsSettingKey(k) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := c.Set(k, source[k]); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the name of every setting currently held, sorted.
func (c *Config) Keys() []string {
	keys := make([]string, 0, len(settings)+len(component.PathKeys)+len(c.extra))
	for k := range settings {
		keys = append(keys, k)
	}
	keys = append(keys, component.PathKeys...)
	for k := range c.extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns every setting as written in configuration files: fields
// as mappings, storage as a mapping, pipeline settings as values of Get.
func (c *Config) Snapshot() map[string]any {
	out := make(map[string]any, len(settings)+len(c.extra))
	for _, k := range c.Keys() {
		switch k {
		case "FIELDS":
			out[k] = fieldsValue(c.Fields)
		case "EXTRA_FIELDS":
			out[k] = fieldsValue(c.ExtraFields)
		case "STORAGE":
			out[k] = map[string]any{
				"url":             c.Storage.URL,
				"max_conns":       c.Storage.MaxConns,
				"min_conns":       c.Storage.MinConns,
				"connect_timeout": c.Storage.ConnectTimeout.String(),
			}
		default:
			out[k] = c.Get(k)
		}
	}
	return out
}

// Refs returns a copy of the identifiers held by a pipeline setting.
func (c *Config) Refs(key string) []string {
	return append([]string{}, c.refs[key]...)
}

// SetRefs replaces the identifiers of a pipeline setting.
func (c *Config) SetRefs(key string, refs ...string) error {
	if err := c.checkRefs(key); err != nil {
		return err
	}
	c.refs[key] = append([]string{}, refs...)
	return nil
}

// AppendRefs adds identifiers at the end of a pipeline setting.
func (c *Config) AppendRefs(key string, refs ...string) error {
	if err := c.checkRefs(key); err != nil {
		return err
	}
	c.refs[key] = append(c.refs[key], refs...)
	return nil
}

// PrependRefs adds identifiers at the start of a pipeline setting.
func (c *Config) PrependRefs(key string, refs ...string) error {
	if err := c.checkRefs(key); err != nil {
		return err
	}
	c.refs[key] = append(append([]string{}, refs...), c.refs[key]...)
	return nil
}

func (c *Config) checkRefs(key string) error {
	if !component.IsPathKey(key) {
		return &SettingError{Key: key, Err: fmt.Errorf("%w: not a pipeline setting", ErrInvalidKey)}
	}
	if c.Pipeline != nil {
		return &SettingError{Key: key, Err: ErrResolved}
	}
	return nil
}
