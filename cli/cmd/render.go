package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/liquid/compiler"
	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/log"
	"github.com/ardnew/liquid/pkg"
)

// Render parses a template and renders it against the loaded data.
//
// Multiple template files are concatenated in order and parsed as one
// template.
type Render struct {
	Output string `help:"Write output to file instead of stdout." placeholder:"FILE" short:"o" type:"path"`

	Template []string `arg:"" help:"Template file(s) or '-' for stdin." name:"template" optional:"" type:"existingfile"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := newSession(ctx)
	if err != nil {
		return err
	}

	tmpl, err := parseTemplate(ctx, r.Template, s.registry)
	if err != nil {
		return pkg.WrapError(err).With(slog.String("command", "render"))
	}

	w := stdout(ctx)

	if r.Output != "" {
		file, err := os.Create(r.Output)
		if err != nil {
			return pkg.ErrRender.Wrap(err).With(slog.String("file", r.Output))
		}
		defer file.Close()

		w = file
	}

	return renderTo(ctx, w, tmpl, s)
}

// parseTemplate parses the concatenation of the template files at paths.
func parseTemplate(
	ctx context.Context,
	paths []string,
	reg *compiler.Registry,
) (*interp.Template, error) {
	src := templateFiles(paths)
	defer src.Close()

	if src.IsZero() {
		return nil, ErrNoTemplate.With(slog.Any("paths", paths))
	}

	return compiler.ParseReader(ctx, src, reg)
}

func renderTo(ctx context.Context, w io.Writer, tmpl *interp.Template, s *session) error {
	err := tmpl.RenderTo(w, s.renderContext())
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "rendered template", slog.Int("nodes", len(tmpl.Nodes)))

	return nil
}
