package interp

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/ardnew/liquid/log"
	"github.com/ardnew/liquid/pkg"
)

// Context is the runtime state a template renders against: a stack of
// variable scopes and a table of named filters.
//
// A Context is owned by one render call at a time. Rendering the same tree
// concurrently requires one Context per goroutine.
type Context struct {
	filters map[string]Filter
	scopes  []map[string]any
	logger  log.Logger
}

// Option configures a [Context].
type Option func(*Context)

// WithFilters registers each filter in fs under its map key.
func WithFilters(fs map[string]Filter) Option {
	return func(c *Context) {
		maps.Copy(c.filters, fs)
	}
}

// WithFilter registers a single filter.
func WithFilter(name string, f Filter) Option {
	return func(c *Context) {
		c.filters[name] = f
	}
}

// WithGlobals binds each entry of vars in the global scope.
func WithGlobals(vars map[string]any) Option {
	return func(c *Context) {
		maps.Copy(c.scopes[0], vars)
	}
}

// WithLogger sets the logger used while rendering.
func WithLogger(logger log.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// NewContext returns a Context with a single global scope.
func NewContext(opts ...Option) *Context {
	c := &Context{
		filters: make(map[string]Filter),
		scopes:  []map[string]any{make(map[string]any)},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Logger returns the logger used while rendering.
func (c *Context) Logger() log.Logger { return c.logger }

// Filter returns the filter registered under name.
func (c *Context) Filter(name string) (Filter, bool) {
	f, ok := c.filters[name]

	return f, ok
}

// SetFilter registers f under name, replacing any existing filter.
func (c *Context) SetFilter(name string, f Filter) { c.filters[name] = f }

// FilterNames returns the names of all registered filters in sorted order.
func (c *Context) FilterNames() []string {
	return slices.Sorted(maps.Keys(c.filters))
}

// SetGlobal binds name in the outermost scope.
func (c *Context) SetGlobal(name string, value any) { c.scopes[0][name] = value }

// Set binds name in the innermost scope.
func (c *Context) Set(name string, value any) { c.scopes[len(c.scopes)-1][name] = value }

// Push opens a new innermost scope.
func (c *Context) Push() { c.scopes = append(c.scopes, make(map[string]any)) }

// Pop discards the innermost scope. The global scope is never discarded.
func (c *Context) Pop() {
	if len(c.scopes) > 1 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

// Run calls fn inside a new scope that is discarded when fn returns.
func (c *Context) Run(fn func() error) error {
	c.Push()
	defer c.Pop()

	return fn()
}

// Lookup resolves name from the innermost scope outward.
func (c *Context) Lookup(name string) (any, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][name]; ok {
			return v, true
		}
	}

	return nil, false
}

// VariableNames returns the names bound in any scope in sorted order.
func (c *Context) VariableNames() []string {
	seen := make(map[string]struct{})
	for _, scope := range c.scopes {
		for name := range scope {
			seen[name] = struct{}{}
		}
	}

	return slices.Sorted(maps.Keys(seen))
}

// Get resolves an evaluated path. The first element names a variable and
// each following element indexes into the value selected so far.
func (c *Context) Get(path []any) (any, error) {
	if len(path) == 0 {
		return nil, pkg.ErrInvalidArgument.Describe("empty variable path")
	}

	name, ok := path[0].(string)
	if !ok {
		return nil, pkg.ErrInvalidArgument.
			Describe("variable name must be a string").
			With(slog.String("variable", ToString(path[0])))
	}

	value, ok := c.Lookup(name)
	if !ok {
		return nil, pkg.ErrUnknownVariable.
			Describe(name).
			With(slog.String("variable", name))
	}

	for _, key := range path[1:] {
		var err error

		value, err = Index(value, key)
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("variable", name))
		}
	}

	return value, nil
}
