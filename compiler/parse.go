package compiler

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/klauspost/readahead"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/syntax"
)

// Parse builds the nodes for a fragment sequence, in order.
//
// Blocks consume their bodies from the same sequence, so each fragment is
// visited exactly once. Parsing stops at the first failure.
func Parse(elements []syntax.Element, reg *Registry) ([]interp.Renderable, error) {
	nodes := make([]interp.Renderable, 0, len(elements))
	cur := NewCursor(elements)

	for {
		el, ok := cur.Next()
		if !ok {
			return nodes, nil
		}

		var (
			node interp.Renderable
			err  error
		)

		switch el.Kind {
		case syntax.ElementExpression:
			node, err = ParseExpression(el.Tokens, reg)
		case syntax.ElementTag:
			node, err = ParseTag(cur, el.Tokens, reg)
		default:
			node = interp.Text(el.Source)
		}

		if err != nil {
			return nil, withSource(err, el.Source)
		}

		nodes = append(nodes, node)
	}
}

// withSource attaches the fragment text to err unless a nested fragment
// already did.
func withSource(err error, source string) error {
	var e *pkg.Error
	if !errors.As(err, &e) || error(e) != err {
		return err
	}

	if _, ok := e.Attr("source"); ok {
		return err
	}

	return e.With(slog.String("source", source))
}

// ParseTemplate tokenizes and parses template source.
func ParseTemplate(ctx context.Context, source string, reg *Registry) (*interp.Template, error) {
	elements, err := syntax.Tokenize(source)
	if err != nil {
		return nil, err
	}

	nodes, err := Parse(elements, reg)
	if err != nil {
		return nil, err
	}

	reg.Logger().TraceContext(
		ctx,
		"parsed template",
		slog.Int("source_bytes", len(source)),
		slog.Int("fragments", len(elements)),
		slog.Int("nodes", len(nodes)),
	)

	return interp.NewTemplate(nodes...), nil
}

// ParseReader reads all of r and parses it with [ParseTemplate].
func ParseReader(ctx context.Context, r io.Reader, reg *Registry) (*interp.Template, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, pkg.ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	reg.Logger().TraceContext(
		ctx,
		"read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return ParseTemplate(ctx, string(data), reg)
}
