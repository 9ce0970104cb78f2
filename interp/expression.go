package interp

import (
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Expression is a value computed against a [Context] at render time.
type Expression interface {
	Evaluate(ctx *Context) (any, error)
	String() string
}

// Literal is an [Expression] holding a constant.
type Literal struct {
	Value any
}

// Evaluate returns the literal value.
func (l Literal) Evaluate(*Context) (any, error) { return l.Value, nil }

// Equal reports whether two literals hold equal values, comparing numbers
// by value.
func (l Literal) Equal(o Literal) bool { return Equal(l.Value, o.Value) }

func (l Literal) String() string {
	if s, ok := l.Value.(string); ok {
		return strconv.Quote(s)
	}

	if l.Value == nil {
		return "nil"
	}

	return ToString(l.Value)
}

// Variable is a path expression: a root name followed by zero or more
// accessors, each itself an expression.
//
// Path always holds at least the root, a string [Literal].
type Variable struct {
	Path []Expression
}

// NewVariable returns a variable rooted at name followed by indexes.
func NewVariable(name string, indexes ...Expression) *Variable {
	path := make([]Expression, 0, len(indexes)+1)
	path = append(path, Literal{Value: name})

	return &Variable{Path: append(path, indexes...)}
}

// Push appends accessors to the path and returns v.
func (v *Variable) Push(indexes ...Expression) *Variable {
	v.Path = append(v.Path, indexes...)

	return v
}

// Root returns the name of the variable the path starts from.
func (v *Variable) Root() string {
	if root, ok := v.Path[0].(Literal); ok {
		if s, ok := root.Value.(string); ok {
			return s
		}
	}

	return v.Path[0].String()
}

// Evaluate resolves each accessor and then the whole path.
func (v *Variable) Evaluate(ctx *Context) (any, error) {
	path := make([]any, len(v.Path))

	for i, e := range v.Path {
		key, err := e.Evaluate(ctx)
		if err != nil {
			return nil, err
		}

		path[i] = key
	}

	return ctx.Get(path)
}

// RenderTo writes the display text of the resolved value.
func (v *Variable) RenderTo(w io.Writer, ctx *Context) error {
	value, err := v.Evaluate(ctx)
	if err != nil {
		return err
	}

	return write(w, ToString(value))
}

var plainField = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_-]*\??$`)

func (v *Variable) String() string {
	var sb strings.Builder

	sb.WriteString(v.Root())

	for _, e := range v.Path[1:] {
		if lit, ok := e.(Literal); ok {
			if s, ok := lit.Value.(string); ok && plainField.MatchString(s) {
				sb.WriteByte('.')
				sb.WriteString(s)

				continue
			}
		}

		sb.WriteByte('[')
		sb.WriteString(e.String())
		sb.WriteByte(']')
	}

	return sb.String()
}
