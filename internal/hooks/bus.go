package hooks

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
)

type entry struct {
	plugin  string
	handler Handler
}

// Bus keeps registered plugins, their stage handlers and the set of blocked
// plugin names.
type Bus struct {
	mu       sync.RWMutex
	plugins  []Plugin
	names    map[string]struct{}
	handlers map[Stage][]entry
	blocked  map[string]struct{}
	logger   *slog.Logger
}

// NewBus creates an empty Bus.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		names:    make(map[string]struct{}),
		handlers: make(map[Stage][]entry),
		blocked:  make(map[string]struct{}),
		logger:   logger.With("component", "hook_bus"),
	}
}

// Block prevents every handler of the named plugin from running. It can be
// called before or after the plugin is registered, and for names that are
// never registered.
func (b *Bus) Block(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.blocked[name] = struct{}{}
}

// IsBlocked reports whether name has been blocked.
func (b *Bus) IsBlocked(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.blocked[name]
	return ok
}

// Blocked returns the blocked names, sorted.
func (b *Bus) Blocked() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.blocked))
	for name := range b.blocked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a plugin and appends each of its stage handlers to the
// corresponding stage.
func (b *Bus) Register(p Plugin) error {
	if p == nil || strings.TrimSpace(p.Name()) == "" {
		return ErrInvalidPlugin
	}
	name := p.Name()
	handlers := handlersOf(p)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.names[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, name)
	}
	b.names[name] = struct{}{}
	b.plugins = append(b.plugins, p)

	// Stages are appended in a fixed order so the handler lists do not
	// depend on map iteration.
	for _, stage := range []Stage{StagePreconfigure, StageConfigure} {
		if h, ok := handlers[stage]; ok {
			b.handlers[stage] = append(b.handlers[stage], entry{plugin: name, handler: h})
		}
	}

	b.logger.Debug("registered plugin",
		"plugin", name,
		"handler_count", len(handlers))
	return nil
}

// Plugins returns the registered plugins in registration order, blocked
// ones included.
func (b *Bus) Plugins() []Plugin {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Plugin(nil), b.plugins...)
}

// active returns the registered plugins that are not blocked.
func (b *Bus) active() []Plugin {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Plugin, 0, len(b.plugins))
	for _, p := range b.plugins {
		if _, blocked := b.blocked[p.Name()]; !blocked {
			out = append(out, p)
		}
	}
	return out
}

// Invoke runs the handlers of a stage in registration order, skipping
// blocked plugins. The first failing handler stops the stage and its error
// is returned as a *HandlerError.
func (b *Bus) Invoke(ctx context.Context, stage Stage, cfg *config.Config) error {
	b.mu.RLock()
	entries := make([]entry, len(b.handlers[stage]))
	copy(entries, b.handlers[stage])
	b.mu.RUnlock()

	b.logger.Debug("invoking stage",
		"stage", stage,
		"handler_count", len(entries))

	for _, e := range entries {
		if b.IsBlocked(e.plugin) {
			b.logger.Debug("skipping blocked plugin", "stage", stage, "plugin", e.plugin)
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.handler(ctx, cfg); err != nil {
			b.logger.Error("plugin handler failed",
				"error", err,
				"stage", stage,
				"plugin", e.plugin)
			return &HandlerError{Stage: stage, Plugin: e.plugin, Err: err}
		}
	}
	return nil
}

// RegisterComponents lets every unblocked ComponentProvider add its
// components to r, in registration order.
func (b *Bus) RegisterComponents(r *component.Registry, cfg *config.Config) error {
	for _, p := range b.active() {
		provider, ok := p.(ComponentProvider)
		if !ok {
			continue
		}
		if err := provider.RegisterComponents(r, cfg); err != nil {
			return fmt.Errorf("registering components of plugin %s: %w", p.Name(), err)
		}
	}
	return nil
}

// Commands collects the subcommands of every unblocked Commander. When two
// plugins contribute the same command name the first registered wins.
func (b *Bus) Commands() []Command {
	var out []Command
	seen := make(map[string]string)
	for _, p := range b.active() {
		commander, ok := p.(Commander)
		if !ok {
			continue
		}
		for _, cmd := range commander.Commands() {
			if owner, dup := seen[cmd.Name]; dup {
				b.logger.Warn("ignoring duplicate command",
					"command", cmd.Name,
					"plugin", p.Name(),
					"owner", owner)
				continue
			}
			seen[cmd.Name] = p.Name()
			out = append(out, cmd)
		}
	}
	return out
}

// Discover registers the plugins found by d after those already registered.
// Discovery is best effort: failures are logged and the number of plugins
// actually registered is returned.
func (b *Bus) Discover(ctx context.Context, d Discoverer) int {
	if d == nil {
		return 0
	}

	found, err := d.Discover(ctx)
	if err != nil {
		b.logger.Debug("plugin discovery failed", "error", err)
	}

	registered := 0
	for _, p := range found {
		if err := b.Register(p); err != nil {
			b.logger.Debug("skipping discovered plugin", "error", err)
			continue
		}
		registered++
	}
	return registered
}
