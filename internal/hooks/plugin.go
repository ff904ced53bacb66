package hooks

import (
	"context"
	"io"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
)

// Stage names a point of the load sequence at which plugin handlers run.
type Stage string

const (
	// StagePreconfigure runs before the local override file is applied.
	StagePreconfigure Stage = "preconfigure"

	// StageConfigure runs after the local override file is applied.
	StageConfigure Stage = "configure"
)

// Handler mutates the settings store during a stage.
type Handler func(ctx context.Context, cfg *config.Config) error

// Plugin is the identity every plugin must provide. Names are unique within
// a Bus.
type Plugin interface {
	Name() string
}

// Preconfigurer is implemented by plugins that establish baseline settings.
type Preconfigurer interface {
	Plugin
	Preconfigure(ctx context.Context, cfg *config.Config) error
}

// Configurer is implemented by plugins that adjust settings once user
// overrides are known.
type Configurer interface {
	Plugin
	Configure(ctx context.Context, cfg *config.Config) error
}

// ComponentProvider is implemented by plugins that contribute pipeline
// components. Components may keep cfg to read settings when they run.
type ComponentProvider interface {
	Plugin
	RegisterComponents(r *component.Registry, cfg *config.Config) error
}

// Command is a CLI subcommand contributed by a plugin.
type Command struct {
	Name    string
	Summary string
	Run     func(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error
}

// Commander is implemented by plugins that contribute CLI subcommands.
type Commander interface {
	Plugin
	Commands() []Command
}

// Funcs builds a plugin from plain functions. Nil functions are skipped.
type Funcs struct {
	ID               string
	PreconfigureFunc Handler
	ConfigureFunc    Handler
}

// Name implements Plugin.
func (f Funcs) Name() string { return f.ID }

func (f Funcs) handlers() map[Stage]Handler {
	h := make(map[Stage]Handler, 2)
	if f.PreconfigureFunc != nil {
		h[StagePreconfigure] = f.PreconfigureFunc
	}
	if f.ConfigureFunc != nil {
		h[StageConfigure] = f.ConfigureFunc
	}
	return h
}

// handlersOf inspects p for stage handlers.
func handlersOf(p Plugin) map[Stage]Handler {
	if f, ok := p.(Funcs); ok {
		return f.handlers()
	}
	if f, ok := p.(*Funcs); ok {
		return f.handlers()
	}

	h := make(map[Stage]Handler, 2)
	if pc, ok := p.(Preconfigurer); ok {
		h[StagePreconfigure] = pc.Preconfigure
	}
	if c, ok := p.(Configurer); ok {
		h[StageConfigure] = c.Configure
	}
	return h
}
