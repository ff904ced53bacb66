package loader

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment input.
const EnvPrefix = "ADDOK"

// Environment holds the process inputs that drive a load. They come from
// ADDOK_* environment variables, overridden by command-line flags.
type Environment struct {
	BlockedPlugins []string
	ConfigFile     string
	PluginsDir     string
	Discover       bool
	LogLevel       string
	LogFormat      string `validate:"omitempty,oneof=json text"`
}

// Flag names bound by BindFlags.
const (
	FlagConfig     = "config"
	FlagBlock      = "block"
	FlagNoDiscover = "no-discover"
	FlagPluginsDir = "plugins-dir"
	FlagLogLevel   = "log-level"
	FlagLogFormat  = "log-format"
)

// BindFlags defines the flags ReadEnvironment understands on fs.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "local override file (yaml, toml, json, jsonc or hcl)")
	fs.StringSlice(FlagBlock, nil, "plugin identities to block, comma separated")
	fs.Bool(FlagNoDiscover, false, "do not look for external plugins")
	fs.String(FlagPluginsDir, "", "directory searched for external plugins")
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
	fs.String(FlagLogFormat, "", "log format (json or text)")
}

// ReadEnvironment reads the process inputs. fs may be nil; when given, flags
// that were set on the command line take precedence over the environment.
func ReadEnvironment(fs *pflag.FlagSet) (Environment, error) {
	v := viper.New()

	v.SetDefault("discover", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"blocked_plugins", "ADDOK_BLOCKED_PLUGINS"},
		{"config_file", "ADDOK_CONFIG_FILE"},
		{"plugins_dir", "ADDOK_PLUGINS_DIR"},
		{"discover", "ADDOK_DISCOVER"},
		{"log_level", "ADDOK_LOG_LEVEL"},
		{"log_format", "ADDOK_LOG_FORMAT"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return Environment{}, fmt.Errorf("binding environment variable %s: %w", env.envVar, err)
		}
	}

	if fs != nil {
		bindFlags := []struct {
			key  string
			flag string
		}{
			{"blocked_plugins", FlagBlock},
			{"config_file", FlagConfig},
			{"plugins_dir", FlagPluginsDir},
			{"log_level", FlagLogLevel},
			{"log_format", FlagLogFormat},
		}
		for _, b := range bindFlags {
			f := fs.Lookup(b.flag)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(b.key, f); err != nil {
				return Environment{}, fmt.Errorf("binding flag --%s: %w", b.flag, err)
			}
		}
	}

	discover, err := cast.ToBoolE(v.Get("discover"))
	if err != nil {
		return Environment{}, fmt.Errorf("ADDOK_DISCOVER: %w", err)
	}
	if fs != nil && fs.Changed(FlagNoDiscover) {
		if off, _ := fs.GetBool(FlagNoDiscover); off {
			discover = false
		}
	}

	env := Environment{
		BlockedPlugins: splitList(v.Get("blocked_plugins")),
		ConfigFile:     strings.TrimSpace(v.GetString("config_file")),
		PluginsDir:     strings.TrimSpace(v.GetString("plugins_dir")),
		Discover:       discover,
		LogLevel:       v.GetString("log_level"),
		LogFormat:      strings.ToLower(v.GetString("log_format")),
	}

	if err := validator.New().Struct(env); err != nil {
		return Environment{}, fmt.Errorf("invalid environment: %w", err)
	}
	return env, nil
}

// splitList flattens a comma separated string, or a list of them, into
// trimmed non-empty items.
func splitList(v any) []string {
	var raw []string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		raw = []string{t}
	default:
		raw = cast.ToStringSlice(t)
	}

	var out []string
	for _, s := range raw {
		for _, item := range strings.Split(s, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}
