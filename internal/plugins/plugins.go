// Package plugins lists the first-party plugins.
package plugins

import (
	"log/slog"
	"os"

	"github.com/phrazzld/addok/internal/hooks"
	"github.com/phrazzld/addok/internal/plugins/autocomplete"
	"github.com/phrazzld/addok/internal/plugins/batch"
	"github.com/phrazzld/addok/internal/plugins/fuzzy"
	"github.com/phrazzld/addok/internal/plugins/http"
	"github.com/phrazzld/addok/internal/plugins/pairs"
	"github.com/phrazzld/addok/internal/plugins/shell"
)

// Builtins returns the built-in plugins in registration order.
func Builtins(logger *slog.Logger) []hooks.Plugin {
	return []hooks.Plugin{
		shell.New(),
		http.New(logger),
		batch.New(os.Stdin),
		pairs.New(),
		fuzzy.New(),
		autocomplete.New(),
	}
}
