package plugins

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinsOrder(t *testing.T) {
	var names []string
	for _, p := range Builtins(slog.New(slog.NewTextHandler(io.Discard, nil))) {
		names = append(names, p.Name())
	}
	assert.Equal(t, []string{
		"addok.shell",
		"addok.http",
		"addok.batch",
		"addok.pairs",
		"addok.fuzzy",
		"addok.autocomplete",
	}, names)
}
