package filters

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/log"
	"github.com/ardnew/liquid/pkg"
)

// exprEnv is the environment an expression filter runs in.
type exprEnv struct {
	Input any   `expr:"input"`
	Args  []any `expr:"args"`
}

// Expr compiles an expr-lang program into a filter. The program refers to
// the filtered value as input and to the call arguments as args.
func Expr(source string) (interp.Filter, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv{}))
	if err != nil {
		return nil, pkg.ErrExprCompile.Wrap(err).
			With(slog.String("source", source))
	}

	return interp.FilterFunc(func(input any, args ...any) (any, error) {
		result, err := vm.Run(program, exprEnv{Input: input, Args: args})
		if err != nil {
			return nil, pkg.ErrExprEvaluate.Wrap(err).
				With(slog.String("source", source))
		}

		return result, nil
	}), nil
}

// document is the layout of a filter definition file.
type document struct {
	Filters map[string]string `yaml:"filters"`
}

// Load reads expression filter definitions from a YAML document of the form
//
//	filters:
//	  shout: upper(input) + "!"
//
// and compiles each with [Expr].
func Load(ctx context.Context, r io.Reader) (map[string]interp.Filter, error) {
	var doc document

	if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, pkg.ErrInvalidFormat.Wrap(err)
	}

	table := make(map[string]interp.Filter, len(doc.Filters))

	for _, name := range slices.Sorted(maps.Keys(doc.Filters)) {
		f, err := Expr(doc.Filters[name])
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("filter", name))
		}

		table[name] = f
	}

	log.TraceContext(ctx, "loaded filters", slog.Int("count", len(table)))

	return table, nil
}
