// Package shell contributes the commands used to inspect a loaded
// configuration.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/hooks"
	"github.com/phrazzld/addok/internal/redact"
	"gopkg.in/yaml.v3"
)

// Name is the identity of the plugin.
const Name = "addok.shell"

// ErrUnknownSetting is returned by the config command for names the store
// does not hold.
var ErrUnknownSetting = errors.New("setting not found")

// Plugin is the shell plugin.
type Plugin struct{}

// New creates the plugin.
func New() *Plugin { return &Plugin{} }

// Name implements hooks.Plugin.
func (*Plugin) Name() string { return Name }

// Commands implements hooks.Commander.
func (p *Plugin) Commands() []hooks.Command {
	return []hooks.Command{{
		Name:    "config",
		Summary: "print one or every setting: config [NAME...]",
		Run:     p.config,
	}}
}

// config prints settings as YAML. Names are matched case-insensitively.
// Components are shown by name and credentials are masked.
func (p *Plugin) config(_ context.Context, cfg *config.Config, args []string, out io.Writer) error {
	names := args
	if len(names) == 0 {
		names = cfg.Keys()
	}

	doc := make(map[string]any, len(names))
	for _, name := range names {
		name = strings.ToUpper(name)
		v, ok := cfg.Describe(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownSetting, name)
		}
		doc[name] = redact.Setting(name, v)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return enc.Close()
}
