package interp

import (
	"io"
	"strconv"
	"strings"

	"github.com/ardnew/liquid/pkg"
)

// Renderable is a node of a parsed template.
type Renderable interface {
	RenderTo(w io.Writer, ctx *Context) error
}

// Parent is implemented by nodes that own a nested sequence of nodes.
type Parent interface {
	Children() []Renderable
}

// Render renders r to a string.
func Render(r Renderable, ctx *Context) (string, error) {
	var sb strings.Builder

	err := r.RenderTo(&sb, ctx)
	if err != nil {
		return "", err
	}

	return sb.String(), nil
}

// RenderFunc adapts an ordinary function to a [Renderable].
type RenderFunc func(w io.Writer, ctx *Context) error

// RenderTo calls f.
func (f RenderFunc) RenderTo(w io.Writer, ctx *Context) error { return f(w, ctx) }

// Text is raw template text, rendered verbatim.
type Text string

// RenderTo writes t unchanged.
func (t Text) RenderTo(w io.Writer, _ *Context) error { return write(w, string(t)) }

func (t Text) String() string { return strconv.Quote(string(t)) }

// Template is an ordered sequence of nodes.
type Template struct {
	Nodes []Renderable
}

// NewTemplate returns a template rendering nodes in order.
func NewTemplate(nodes ...Renderable) *Template {
	return &Template{Nodes: nodes}
}

// RenderTo renders each node in order, stopping at the first failure.
func (t *Template) RenderTo(w io.Writer, ctx *Context) error {
	for _, n := range t.Nodes {
		if err := n.RenderTo(w, ctx); err != nil {
			return err
		}
	}

	return nil
}

// Children returns the nodes of the template.
func (t *Template) Children() []Renderable { return t.Nodes }

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return pkg.ErrRender.Wrap(err)
	}

	return nil
}
