package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/ardnew/liquid/pkg"
)

// Filters lists the filters available to templates: the built-in table plus
// any loaded with --filters.
type Filters struct{}

// Run executes the filters command.
func (f *Filters) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := newSession(ctx)
	if err != nil {
		return err
	}

	w := stdout(ctx)

	for _, name := range slices.Sorted(maps.Keys(s.filters)) {
		line := name
		if file, ok := s.origin[name]; ok {
			line += "\t" + file
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return pkg.ErrRender.Wrap(err)
		}
	}

	return nil
}
