package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/liquid/compiler"
	"github.com/ardnew/liquid/filters"
	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/log"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/tags"
)

// session holds everything a template is parsed and rendered with: the tag
// registry, the filter table, and the global variables.
type session struct {
	registry *compiler.Registry
	filters  map[string]interp.Filter
	origin   map[string]string // filter name -> defining file
	globals  map[string]any
}

// newSession builds a session from the data and filter files stored in ctx.
func newSession(ctx context.Context) (*session, error) {
	reg := compiler.NewRegistry(compiler.WithLogger(log.Default()))
	tags.Register(reg)

	s := &session{
		registry: reg,
		filters:  filters.Standard(),
		origin:   make(map[string]string),
		globals:  make(map[string]any),
	}

	if src := filterFilesFrom(ctx); src != nil {
		defer src.Close()

		for name, r := range src.All() {
			table, err := filters.Load(ctx, r)
			if err != nil {
				return nil, pkg.WrapError(err).With(slog.String("file", name))
			}

			for fn, f := range table {
				s.filters[fn] = f
				s.origin[fn] = name
			}
		}
	}

	if src := dataFilesFrom(ctx); src != nil {
		defer src.Close()

		for name, r := range src.All() {
			data, err := decodeData(ctx, r)
			if err != nil {
				return nil, pkg.WrapError(err).With(slog.String("file", name))
			}

			maps.Copy(s.globals, data)
		}
	}

	log.DebugContext(ctx, "session ready",
		slog.Int("filters", len(s.filters)),
		slog.Int("globals", len(s.globals)),
	)

	return s, nil
}

// decodeData reads a YAML (or JSON) mapping of variable names to values.
// An empty document defines nothing.
func decodeData(ctx context.Context, r io.Reader) (map[string]any, error) {
	var data map[string]any

	err := yaml.NewDecoder(r).DecodeContext(ctx, &data)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrDecodeData.Wrap(err)
	}

	return data, nil
}

// renderContext returns a new render context bound to the session.
func (s *session) renderContext() *interp.Context {
	return interp.NewContext(
		interp.WithFilters(s.filters),
		interp.WithGlobals(s.globals),
		interp.WithLogger(log.Default()),
	)
}
