package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/liquid/cli/cmd/repl"
	"github.com/ardnew/liquid/log"
)

// Repl starts an interactive session that renders each input line as a
// template against the loaded data.
type Repl struct {
	NoHistory bool `help:"Keep input history in memory only." name:"no-history"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := newSession(ctx)
	if err != nil {
		return err
	}

	var dir string

	if ktx := kongContextFrom(ctx); ktx != nil && !r.NoHistory {
		dir = ktx.Model.Vars()[CacheIdentifier]
	}

	log.DebugContext(ctx, "starting repl",
		slog.String("cache_dir", dir),
		slog.Int("globals", len(s.globals)),
	)

	return repl.Run(ctx, repl.Config{
		Registry: s.registry,
		Filters:  s.filters,
		Globals:  s.globals,
		CacheDir: dir,
		Logger:   log.Default(),
	})
}
