package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"threadcache-backend/cmd/threadcache/globals"
	"threadcache-backend/internal/batch"
	"threadcache-backend/internal/parser"
)

func readInputs(paths []string) ([]batch.Input, error) {
	inputs := make([]batch.Input, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, batch.Input{Name: path, Data: data})
	}
	return inputs, nil
}

// openOutput returns stdout when path is empty.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

// writeDump saves the page that failed to parse so it can be replayed
// against a fixed parser.
func writeDump(dir, name string, err error) {
	var perr *parser.ParserError
	if dir == "" || !errors.As(err, &perr) || len(perr.Dump) == 0 {
		return
	}
	mkdirErr := os.MkdirAll(dir, 0755)
	if mkdirErr != nil {
		slog.Warn("failed to create dump dir", "dir", dir, "err", mkdirErr)
		return
	}

	base := fmt.Sprintf("%s.%s", filepath.Base(name), perr.Kind)
	writeErr := os.WriteFile(filepath.Join(dir, base+".html"), perr.Dump, 0644)
	if writeErr != nil {
		slog.Warn("failed to write dump", "name", name, "err", writeErr)
		return
	}
	if perr.Trace != "" {
		writeErr = os.WriteFile(filepath.Join(dir, base+".trace"), []byte(perr.Trace), 0644)
		if writeErr != nil {
			slog.Warn("failed to write trace", "name", name, "err", writeErr)
		}
	}
	slog.Info("wrote dump of failed page", "name", name, "dir", dir)
}

func newPool(g *globals.Value) batch.Pool {
	return batch.NewPool(batch.Options{
		Workers:   g.Config.Workers,
		Parser:    g.Parser,
		Telemetry: g.Telemetry,
	})
}

// settle dumps every failed page and returns an error when a failure needs
// someone to look at the parser.
func settle[T any](g *globals.Value, outcomes []batch.Outcome[T]) error {
	skipped := 0
	var alerts []batch.Outcome[T]
	for _, o := range outcomes {
		if o.Err == nil {
			continue
		}
		writeDump(g.Config.DumpDir, o.Name, o.Err)
		switch o.Action {
		case batch.ACTION_SKIP_BACKOFF:
			skipped++
		case batch.ACTION_ALERT:
			alerts = append(alerts, o)
		}
	}
	if skipped > 0 {
		slog.Warn("skipped pages, back off before fetching them again", "count", skipped)
	}
	if len(alerts) > 0 {
		return fmt.Errorf("%d page(s) broke the parser: %w", len(alerts), batch.Failed(alerts))
	}
	return nil
}
