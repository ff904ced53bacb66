package loader

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/core"
	"github.com/phrazzld/addok/internal/hooks"
	"github.com/phrazzld/addok/internal/override"
	"github.com/phrazzld/addok/internal/store"
)

// Connector opens the storage handle published under DB.
type Connector interface {
	Connect(ctx context.Context, s config.StorageSettings) (store.DB, error)
}

// ComponentsFunc registers the components every configuration can refer to.
type ComponentsFunc func(r *component.Registry, cfg *config.Config) error

// Loader runs the load sequence against one Config, Bus and Registry.
type Loader struct {
	cfg      *config.Config
	bus      *hooks.Bus
	registry *component.Registry
	logger   *slog.Logger

	builtins   []hooks.Plugin
	components ComponentsFunc
	discoverer hooks.Discoverer
	overrides  *override.Loader
	connector  Connector

	loaded bool
	result *config.Config
	err    error
}

// Option configures a Loader.
type Option func(*Loader)

// WithBuiltins sets the plugins registered before discovery, in order.
func WithBuiltins(plugins ...hooks.Plugin) Option {
	return func(l *Loader) {
		l.builtins = append([]hooks.Plugin(nil), plugins...)
	}
}

// WithComponents replaces the registration of the default components.
func WithComponents(fn ComponentsFunc) Option {
	return func(l *Loader) {
		l.components = fn
	}
}

// WithDiscoverer replaces the directory based discovery.
func WithDiscoverer(d hooks.Discoverer) Option {
	return func(l *Loader) {
		l.discoverer = d
	}
}

// WithConnector sets the storage connector. Without one the load finishes
// with DB left unset.
func WithConnector(c Connector) Option {
	return func(l *Loader) {
		l.connector = c
	}
}

// New creates a Loader. Without options it registers no built-in plugin,
// registers the core components and discovers plugins in the directory
// named by the environment.
func New(cfg *config.Config, bus *hooks.Bus, registry *component.Registry, logger *slog.Logger, opts ...Option) *Loader {
	l := &Loader{
		cfg:        cfg,
		bus:        bus,
		registry:   registry,
		logger:     logger.With("component", "loader"),
		components: core.Register,
		overrides:  override.New(logger),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load runs the sequence once. Later calls return the outcome of the first
// one whatever env holds. On failure the returned Config is nil.
func (l *Loader) Load(ctx context.Context, env Environment) (*config.Config, error) {
	if l.loaded {
		return l.result, l.err
	}
	l.loaded = true

	loadID := uuid.New().String()
	log := l.logger.With("load_id", loadID)
	start := time.Now()

	if err := l.run(ctx, env, log); err != nil {
		log.Error("configuration load failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		l.err = err
		return nil, err
	}

	l.result = l.cfg
	log.Info("configuration loaded",
		"plugins", len(l.bus.Plugins()),
		"blocked", l.bus.Blocked(),
		"duration_ms", time.Since(start).Milliseconds())
	return l.result, nil
}

func (l *Loader) run(ctx context.Context, env Environment, log *slog.Logger) error {
	for _, name := range env.BlockedPlugins {
		l.bus.Block(name)
	}
	if blocked := l.bus.Blocked(); len(blocked) > 0 {
		log.Info("blocked plugins", "plugins", blocked)
	}

	for _, p := range l.builtins {
		if err := l.bus.Register(p); err != nil {
			return fmt.Errorf("registering built-in plugin: %w", err)
		}
	}

	if env.Discover {
		d := l.discoverer
		if d == nil {
			d = hooks.DirDiscoverer{Dir: env.PluginsDir}
		}
		n := l.bus.Discover(ctx, d)
		log.Debug("plugin discovery finished", "discovered", n)
	}
	l.warnUnknownBlocked(log)

	if l.components != nil {
		if err := l.components(l.registry, l.cfg); err != nil {
			return fmt.Errorf("registering components: %w", err)
		}
	}
	if err := l.bus.RegisterComponents(l.registry, l.cfg); err != nil {
		return err
	}

	if err := l.bus.Invoke(ctx, hooks.StagePreconfigure, l.cfg); err != nil {
		return err
	}
	if err := l.overrides.Load(env.ConfigFile, l.cfg); err != nil {
		return err
	}
	if err := l.bus.Invoke(ctx, hooks.StageConfigure, l.cfg); err != nil {
		return err
	}

	if err := l.cfg.Resolve(l.registry); err != nil {
		return err
	}
	l.cfg.PostProcess()
	if err := l.cfg.Validate(); err != nil {
		return err
	}

	return l.connect(ctx, log)
}

func (l *Loader) connect(ctx context.Context, log *slog.Logger) error {
	if l.connector == nil {
		log.Warn("no storage connector, DB left unset")
		return nil
	}
	db, err := l.connector.Connect(ctx, l.cfg.Storage)
	if err != nil {
		return fmt.Errorf("connecting storage: %w", err)
	}
	return l.cfg.Set("DB", db)
}

// warnUnknownBlocked logs blocked names that match no registered plugin.
func (l *Loader) warnUnknownBlocked(log *slog.Logger) {
	known := make(map[string]struct{})
	for _, p := range l.bus.Plugins() {
		known[p.Name()] = struct{}{}
	}
	for _, name := range l.bus.Blocked() {
		if _, ok := known[name]; !ok {
			log.Warn("blocked plugin is not registered", "plugin", name)
		}
	}
}
