package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/hooks"
	"github.com/phrazzld/addok/internal/loader"
	"github.com/phrazzld/addok/internal/platform/logger"
	"github.com/phrazzld/addok/internal/platform/postgres"
	"github.com/phrazzld/addok/internal/plugins"
	"github.com/spf13/pflag"
)

// Exit codes.
const (
	exitFailure = 1
	exitUsage   = 2
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

const usageHeader = `addok - address geocoder

Usage:
  addok [options] COMMAND [ARGS...]

Options:
`

// run parses args, loads the configuration and runs the requested command.
// Command output goes to stdout, logs to stderr.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("addok", pflag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.SetInterspersed(false)
	loader.BindFlags(fs)
	fs.Usage = func() {
		fmt.Fprint(stdout, usageHeader)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}

	env, err := loader.ReadEnvironment(fs)
	if err != nil {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}

	log, err := logger.Setup(logger.Config{Level: env.LogLevel, Format: env.LogFormat}, stderr)
	if err != nil {
		return &ExitError{Code: exitUsage, Message: err.Error()}
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("reading defaults: %w", err)
	}
	bus := hooks.NewBus(log)
	l := loader.New(cfg, bus, component.NewRegistry(), log,
		loader.WithBuiltins(plugins.Builtins(log)...),
		loader.WithConnector(postgres.NewConnector(log, false)),
	)

	cfg, err = l.Load(ctx, env)
	if err != nil {
		return &ExitError{Code: exitFailure, Message: fmt.Sprintf("loading configuration: %v", err)}
	}
	if cfg.DB != nil {
		defer cfg.DB.Close()
	}

	commands := bus.Commands()
	if fs.NArg() == 0 {
		fs.Usage()
		printCommands(stdout, commands)
		return nil
	}

	name, cmdArgs := fs.Arg(0), fs.Args()[1:]
	for _, cmd := range commands {
		if cmd.Name == name {
			if err := cmd.Run(ctx, cfg, cmdArgs, stdout); err != nil {
				return &ExitError{Code: exitFailure, Message: fmt.Sprintf("%s: %v", name, err)}
			}
			return nil
		}
	}
	return &ExitError{Code: exitUsage, Message: fmt.Sprintf("unknown command %q", name)}
}

func printCommands(w io.Writer, commands []hooks.Command) {
	sorted := append([]hooks.Command(nil), commands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	fmt.Fprintln(w, "\nCommands:")
	for _, cmd := range sorted {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.Name, cmd.Summary)
	}
}
