// Package http contributes the HTTP settings and the serve command.
package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	nethttp "net/http"

	"github.com/phrazzld/addok/internal/api"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/hooks"
	"github.com/spf13/cast"
)

// Name is the identity of the plugin.
const Name = "addok.http"

// Settings established during preconfigure.
const (
	DefaultAllowOrigin  = "*"
	DefaultAllowHeaders = "X-Requested-With"
	DefaultAddr         = ":7878"
)

// Plugin is the http plugin.
type Plugin struct {
	logger *slog.Logger
	listen func(ctx context.Context, addr string, h nethttp.Handler, logger *slog.Logger) error
}

// New creates the plugin.
func New(logger *slog.Logger) *Plugin {
	return &Plugin{
		logger: logger.With("component", "http_plugin"),
		listen: api.ListenAndServe,
	}
}

// Name implements hooks.Plugin.
func (*Plugin) Name() string { return Name }

// Preconfigure sets the CORS and listen address defaults so the override
// file can change them.
func (p *Plugin) Preconfigure(_ context.Context, cfg *config.Config) error {
	return errors.Join(
		cfg.Set("CORS_ALLOW_ORIGIN", DefaultAllowOrigin),
		cfg.Set("CORS_ALLOW_HEADERS", DefaultAllowHeaders),
		cfg.Set("HTTP_ADDR", DefaultAddr),
	)
}

// Commands implements hooks.Commander.
func (p *Plugin) Commands() []hooks.Command {
	return []hooks.Command{{
		Name:    "serve",
		Summary: "serve the HTTP API: serve [ADDR]",
		Run:     p.serve,
	}}
}

func (p *Plugin) serve(ctx context.Context, cfg *config.Config, args []string, _ io.Writer) error {
	addr := cast.ToString(cfg.Get("HTTP_ADDR"))
	if len(args) > 0 {
		addr = args[0]
	}
	if addr == "" {
		addr = DefaultAddr
	}
	return p.listen(ctx, addr, api.NewRouter(cfg, p.logger), p.logger)
}
