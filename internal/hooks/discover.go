package hooks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"plugin"
	"sort"
)

// PluginSymbol is the symbol a shared object must export to be picked up by
// DirDiscoverer. It is either a variable of type Plugin or a value whose
// pointer implements Plugin.
const PluginSymbol = "Plugin"

// Discoverer finds plugins installed outside the built-in list.
type Discoverer interface {
	Discover(ctx context.Context) ([]Plugin, error)
}

// StaticDiscoverer returns a fixed set of plugins.
type StaticDiscoverer []Plugin

// Discover implements Discoverer.
func (s StaticDiscoverer) Discover(context.Context) ([]Plugin, error) {
	return append([]Plugin(nil), s...), nil
}

// DirDiscoverer opens every *.so file of a directory as a Go plugin.
// Files are visited in name order. A file that cannot be opened or does not
// export a usable symbol is reported in the returned error while the others
// are still returned.
type DirDiscoverer struct {
	Dir string
}

// Discover implements Discoverer.
func (d DirDiscoverer) Discover(ctx context.Context) ([]Plugin, error) {
	if d.Dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(d.Dir); err != nil {
		return nil, fmt.Errorf("plugin directory: %w", err)
	}

	paths, err := filepath.Glob(filepath.Join(d.Dir, "*.so"))
	if err != nil {
		return nil, fmt.Errorf("listing plugin directory %s: %w", d.Dir, err)
	}
	sort.Strings(paths)

	var (
		found []Plugin
		errs  []error
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return found, err
		}
		p, err := openPlugin(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		found = append(found, p)
	}
	return found, errors.Join(errs...)
}

func openPlugin(path string) (Plugin, error) {
	so, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	sym, err := so.Lookup(PluginSymbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	switch v := sym.(type) {
	case *Plugin:
		if *v != nil {
			return *v, nil
		}
	case Plugin:
		return v, nil
	}
	return nil, fmt.Errorf("%s: symbol %s of type %T is not a plugin", path, PluginSymbol, sym)
}
