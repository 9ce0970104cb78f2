package compiler

import (
	"strings"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/syntax"
)

const expectedValue = "string | number | boolean | identifier"

// found returns the display text of a token for diagnostics.
func found(tok syntax.Token) string {
	if s := tok.String(); s != "" {
		return s
	}

	return `""`
}

// ToExpression converts a value token to an expression.
//
// Literals become [interp.Literal]. An identifier becomes an
// [interp.Variable], with any dot-separated segments of its name becoming
// field accessors.
func ToExpression(tok syntax.Token) (interp.Expression, error) {
	switch tok.Kind {
	case syntax.KindString:
		return interp.Literal{Value: tok.Text}, nil
	case syntax.KindInteger:
		return interp.Literal{Value: tok.Int}, nil
	case syntax.KindFloat:
		return interp.Literal{Value: tok.Float}, nil
	case syntax.KindBoolean:
		return interp.Literal{Value: tok.Bool}, nil
	case syntax.KindIdentifier:
		segments := strings.Split(tok.Text, ".")

		v := interp.NewVariable(segments[0])
		for _, s := range segments[1:] {
			v.Push(interp.Literal{Value: s})
		}

		return v, nil
	default:
		return nil, pkg.UnexpectedToken(expectedValue, found(tok))
	}
}

// ToValue returns the value of a literal token. Identifiers are rejected.
func ToValue(tok syntax.Token) (any, error) {
	switch tok.Kind {
	case syntax.KindString:
		return tok.Text, nil
	case syntax.KindInteger:
		return tok.Int, nil
	case syntax.KindFloat:
		return tok.Float, nil
	case syntax.KindBoolean:
		return tok.Bool, nil
	default:
		return nil, pkg.UnexpectedToken("string | number | boolean", found(tok))
	}
}

// ValueToken returns tok if it can express a value.
func ValueToken(tok syntax.Token) (syntax.Token, error) {
	if !tok.IsValue() {
		return syntax.Token{}, pkg.UnexpectedToken(expectedValue, found(tok))
	}

	return tok, nil
}

// ConsumeValueToken reads the next token and applies [ValueToken].
func ConsumeValueToken(cur *TokenCursor) (syntax.Token, error) {
	tok, ok := cur.Next()
	if !ok {
		return syntax.Token{}, pkg.UnexpectedToken(expectedValue, "")
	}

	return ValueToken(tok)
}

// Expect consumes the next token, failing unless it equals want.
func Expect(cur *TokenCursor, want syntax.Token) (syntax.Token, error) {
	expected := "`" + want.String() + "`"

	tok, ok := cur.Next()
	if !ok {
		return syntax.Token{}, pkg.UnexpectedToken(expected, "")
	}

	if tok != want {
		return syntax.Token{}, pkg.UnexpectedToken(expected, found(tok))
	}

	return tok, nil
}
