// Package batch contributes the batch command, which imports documents
// through BATCH_PROCESSORS and INDEXERS.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/addok/internal/component"
	"github.com/phrazzld/addok/internal/config"
	"github.com/phrazzld/addok/internal/hooks"
)

// Name is the identity of the plugin.
const Name = "addok.batch"

const maxLineSize = 1 << 20

// ErrNotResolved is returned when the command runs before the pipeline
// settings are resolved.
var ErrNotResolved = errors.New("pipeline settings are not resolved")

// Stats counts the outcome of a batch run.
type Stats struct {
	Read    int
	Indexed int
	Dropped int
	Failed  int
}

// Plugin is the batch plugin.
type Plugin struct {
	stdin io.Reader
}

// New creates the plugin. stdin is read when the command is given "-" or
// no file.
func New(stdin io.Reader) *Plugin {
	return &Plugin{stdin: stdin}
}

// Name implements hooks.Plugin.
func (*Plugin) Name() string { return Name }

// Commands implements hooks.Commander.
func (p *Plugin) Commands() []hooks.Command {
	return []hooks.Command{{
		Name:    "batch",
		Summary: "index JSON lines documents: batch [FILE|-]",
		Run:     p.run,
	}}
}

func (p *Plugin) run(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	in := p.stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	stats, err := Process(ctx, cfg, in, out)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "read %d, indexed %d, dropped %d, failed %d\n",
		stats.Read, stats.Indexed, stats.Dropped, stats.Failed)
	return err
}

// Process reads one JSON document per line from r, runs it through
// BATCH_PROCESSORS then INDEXERS and reports documents that fail on w.
// Blank lines are skipped. A failing document does not stop the batch; a
// read error or a cancelled context does.
func Process(ctx context.Context, cfg *config.Config, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	if cfg.Pipeline == nil {
		return stats, ErrNotResolved
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		stats.Read++

		var doc component.Document
		if err := json.Unmarshal([]byte(text), &doc); err != nil {
			stats.Failed++
			fmt.Fprintf(w, "line %d: %v\n", line, err)
			continue
		}

		doc, err := processDocument(ctx, cfg.Pipeline, doc)
		switch {
		case err != nil:
			stats.Failed++
			fmt.Fprintf(w, "line %d: %v\n", line, err)
		case doc == nil:
			stats.Dropped++
		default:
			stats.Indexed++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("reading batch: %w", err)
	}
	return stats, nil
}

func processDocument(ctx context.Context, p *config.Pipeline, doc component.Document) (component.Document, error) {
	for _, process := range p.BatchProcessors {
		var err error
		if doc, err = process(doc); err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, nil
		}
	}
	for _, index := range p.Indexers {
		if err := index(ctx, doc); err != nil {
			return nil, err
		}
	}
	return doc, nil
}
