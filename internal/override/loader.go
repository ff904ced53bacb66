package override

import (
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/phrazzld/addok/internal/config"
)

// Loader applies a local config file to a settings store.
type Loader struct {
	logger *slog.Logger
}

// New creates a Loader.
func New(logger *slog.Logger) *Loader {
	return &Loader{logger: logger.With("component", "override_loader")}
}

// Load reads the file at path and merges its upper-case bindings into cfg.
// An empty path means there is nothing to load. Any failure to read, decode
// or evaluate the file is returned as a *FileError naming the path.
func (l *Loader) Load(path string, cfg *config.Config) error {
	if path == "" {
		l.logger.Debug("no local config file configured")
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &FileError{Path: path, Err: fmt.Errorf("%w: %w", ErrUnreadable, err)}
	}

	decode, ok := decoderFor(path)
	if !ok {
		return &FileError{Path: path, Err: ErrUnsupportedFormat}
	}
	doc, err := decode(data, path)
	if err != nil {
		return &FileError{Path: path, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
	}

	namespace, err := bindings(doc, cfg)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	if err := cfg.ExtendFrom(namespace); err != nil {
		return &FileError{Path: path, Err: err}
	}

	keys := make([]string, 0, len(namespace))
	for k := range namespace {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	l.logger.Info("loaded local config", "path", path, "settings", keys)
	return nil
}

// bindings keeps the upper-case entries of doc and evaluates their
// expressions against the current settings.
func bindings(doc map[string]any, cfg *config.Config) (map[string]any, error) {
	var env map[string]any
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if !config.IsSettingKey(k) {
			continue
		}
		if env == nil {
			env = cfg.Snapshot()
		}
		r, err := evaluate(v, env)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", k, err)
		}
		out[k] = r
	}
	return out, nil
}
