package compiler

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/liquid/interp"
)

// Cache memoizes parsed templates by source text.
//
// Each distinct source is parsed at most once, even when requested by
// several goroutines at the same time. Failures are cached too.
type Cache struct {
	reg     *Registry
	entries sync.Map // string -> *entry
}

type entry struct {
	once sync.Once
	tmpl *interp.Template
	err  error
}

// NewCache returns an empty cache parsing with reg.
func NewCache(reg *Registry) *Cache {
	return &Cache{reg: reg}
}

// Parse returns the template parsed from source, parsing it on first use.
func (c *Cache) Parse(ctx context.Context, source string) (*interp.Template, error) {
	value, hit := c.entries.LoadOrStore(source, new(entry))
	e, _ := value.(*entry)

	c.reg.Logger().TraceContext(
		ctx,
		"cache lookup",
		slog.String("source_hash", strconv.FormatUint(xxh3.HashString(source), 16)),
		slog.Bool("cache_hit", hit),
	)

	e.once.Do(func() {
		e.tmpl, e.err = ParseTemplate(ctx, source, c.reg)
	})

	return e.tmpl, e.err
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	n := 0

	c.entries.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}

// Clear removes every cached template.
func (c *Cache) Clear() { c.entries.Clear() }
