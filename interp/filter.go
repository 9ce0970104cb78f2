package interp

import (
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/liquid/pkg"
)

// Filter transforms a value, given the evaluated arguments of its call.
type Filter interface {
	Filter(input any, args ...any) (any, error)
}

// FilterFunc adapts an ordinary function to a [Filter].
type FilterFunc func(input any, args ...any) (any, error)

// Filter calls f.
func (f FilterFunc) Filter(input any, args ...any) (any, error) {
	return f(input, args...)
}

// FilterCall names a filter and the argument expressions passed to it.
type FilterCall struct {
	Name string
	Args []Expression
}

// NewFilterCall returns a call of the named filter.
func NewFilterCall(name string, args ...Expression) FilterCall {
	return FilterCall{Name: name, Args: args}
}

func (f FilterCall) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}

	args := make([]string, len(f.Args))
	for i, a := range f.Args {
		args[i] = a.String()
	}

	return f.Name + ": " + strings.Join(args, ", ")
}

// FilterChain is an entry expression piped through zero or more filters,
// applied left to right.
type FilterChain struct {
	Entry   Expression
	Filters []FilterCall
}

// NewFilterChain returns a chain applying filters to entry in order.
func NewFilterChain(entry Expression, filters ...FilterCall) *FilterChain {
	return &FilterChain{Entry: entry, Filters: filters}
}

// Evaluate resolves the entry and threads it through each filter.
//
// A filter missing from ctx fails with [pkg.ErrUnsupportedFilter]. A failure
// raised by a filter itself is wrapped in [pkg.ErrFilter]. Argument
// evaluation failures are returned unchanged.
func (c *FilterChain) Evaluate(ctx *Context) (any, error) {
	value, err := c.Entry.Evaluate(ctx)
	if err != nil {
		return nil, err
	}

	for _, call := range c.Filters {
		f, ok := ctx.Filter(call.Name)
		if !ok {
			return nil, pkg.ErrUnsupportedFilter.
				Describe(call.Name).
				With(slog.String("filter", call.Name))
		}

		args := make([]any, len(call.Args))

		for i, a := range call.Args {
			args[i], err = a.Evaluate(ctx)
			if err != nil {
				return nil, err
			}
		}

		value, err = f.Filter(value, args...)
		if err != nil {
			return nil, pkg.ErrFilter.Wrap(err).With(slog.String("filter", call.Name))
		}

		ctx.Logger().Trace("filter applied",
			slog.String("filter", call.Name),
			slog.Int("args", len(args)),
		)
	}

	return value, nil
}

// RenderTo writes the display text of the chain's result.
func (c *FilterChain) RenderTo(w io.Writer, ctx *Context) error {
	value, err := c.Evaluate(ctx)
	if err != nil {
		return err
	}

	return write(w, ToString(value))
}

func (c *FilterChain) String() string {
	var sb strings.Builder

	sb.WriteString(c.Entry.String())

	for _, f := range c.Filters {
		sb.WriteString(" | ")
		sb.WriteString(f.String())
	}

	return sb.String()
}
