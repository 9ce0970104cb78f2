package compiler

import (
	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/syntax"
)

// ParseIndexes reads a chain of `.name` and `[value]` accessors from the
// front of tokens, stopping at the first token that starts neither.
//
// A bracketed string or integer literal is a constant accessor. A bracketed
// identifier is a variable whose value is the accessor.
func ParseIndexes(tokens []syntax.Token) ([]interp.Expression, error) {
	return parseIndexes(NewTokenCursor(tokens))
}

func parseIndexes(cur *TokenCursor) ([]interp.Expression, error) {
	var indexes []interp.Expression

	for {
		tok, ok := cur.Peek()
		if !ok || (tok != syntax.Dot && tok != syntax.OpenSquare) {
			return indexes, nil
		}

		cur.Next()

		index, err := parseIndex(cur, tok)
		if err != nil {
			return nil, err
		}

		indexes = append(indexes, index)
	}
}

func parseIndex(cur *TokenCursor, open syntax.Token) (interp.Expression, error) {
	tok, ok := cur.Next()

	if open == syntax.Dot {
		if !ok {
			return nil, pkg.UnexpectedToken("identifier", "")
		}

		name, ok := tok.Name()
		if !ok {
			return nil, pkg.UnexpectedToken("identifier", found(tok))
		}

		return interp.Literal{Value: name}, nil
	}

	const expected = "string | whole number | identifier"

	if !ok {
		return nil, pkg.UnexpectedToken(expected, "")
	}

	var index interp.Expression

	switch tok.Kind {
	case syntax.KindString:
		index = interp.Literal{Value: tok.Text}
	case syntax.KindInteger:
		index = interp.Literal{Value: tok.Int}
	case syntax.KindIdentifier:
		index = interp.NewVariable(tok.Text)
	default:
		return nil, pkg.UnexpectedToken(expected, found(tok))
	}

	if _, err := Expect(cur, syntax.CloseSquare); err != nil {
		return nil, err
	}

	return index, nil
}

// ParseOutput builds a filter chain from the tokens of an output
// expression: an entry value with optional accessors, followed by any
// number of `| name` or `| name: arg, ...` filter calls.
func ParseOutput(tokens []syntax.Token) (*interp.FilterChain, error) {
	cur := NewTokenCursor(tokens)

	first, ok := cur.Next()
	if !ok {
		return nil, pkg.UnexpectedToken("expression", "")
	}

	entry, err := ToExpression(first)
	if err != nil {
		return nil, err
	}

	if v, ok := entry.(*interp.Variable); ok {
		indexes, err := parseIndexes(cur)
		if err != nil {
			return nil, err
		}

		v.Push(indexes...)
	}

	if tok, ok := cur.Peek(); ok && tok != syntax.Pipe {
		return nil, pkg.UnexpectedToken("`|`", found(tok))
	}

	var calls []interp.FilterCall

	for {
		if _, ok := cur.Peek(); !ok {
			break
		}

		call, err := parseFilterCall(cur)
		if err != nil {
			return nil, err
		}

		calls = append(calls, call)
	}

	return interp.NewFilterChain(entry, calls...), nil
}

func parseFilterCall(cur *TokenCursor) (interp.FilterCall, error) {
	if _, err := Expect(cur, syntax.Pipe); err != nil {
		return interp.FilterCall{}, err
	}

	tok, ok := cur.Next()
	if !ok {
		return interp.FilterCall{}, pkg.UnexpectedToken("identifier", "")
	}

	name, ok := tok.Name()
	if !ok {
		return interp.FilterCall{}, pkg.UnexpectedToken("identifier", found(tok))
	}

	if next, ok := cur.Peek(); !ok || next == syntax.Pipe {
		return interp.NewFilterCall(name), nil
	}

	if _, err := Expect(cur, syntax.Colon); err != nil {
		return interp.FilterCall{}, err
	}

	var args []interp.Expression

	for {
		tok, ok := cur.Peek()
		if !ok || tok == syntax.Pipe {
			break
		}

		cur.Next()

		arg, err := ToExpression(tok)
		if err != nil {
			return interp.FilterCall{}, err
		}

		args = append(args, arg)

		sep, ok := cur.Peek()
		if !ok || sep == syntax.Pipe {
			break
		}

		if sep != syntax.Comma {
			return interp.FilterCall{}, pkg.UnexpectedToken("`,` | `|`", found(sep))
		}

		cur.Next()
	}

	return interp.NewFilterCall(name, args...), nil
}

// ParseExpression builds the node for the tokens of an output fragment.
//
// An identifier followed by `.` or `[` always starts a variable path and is
// never looked up as a tag: when the accessors consume every token the
// result is an [interp.Variable], otherwise [ParseOutput] handles it. A
// leading identifier registered as a tag is handed to that tag's parser.
// Anything else is parsed by [ParseOutput].
func ParseExpression(tokens []syntax.Token, reg *Registry) (interp.Renderable, error) {
	if len(tokens) == 0 {
		return nil, pkg.UnexpectedToken("expression", "")
	}

	name, isName := tokens[0].Name()

	if isName && len(tokens) > 1 &&
		(tokens[1] == syntax.Dot || tokens[1] == syntax.OpenSquare) {
		cur := NewTokenCursor(tokens[1:])

		indexes, err := parseIndexes(cur)
		if err == nil && len(cur.Rest()) == 0 {
			return interp.NewVariable(name, indexes...), nil
		}

		return ParseOutput(tokens)
	}

	if isName {
		if p, ok := reg.Tag(name); ok {
			return p.ParseTag(name, tokens[1:], reg)
		}
	}

	return ParseOutput(tokens)
}
