package tags

import (
	"io"

	"github.com/ardnew/liquid/compiler"
	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/syntax"
)

// Comment is the node of a comment block. It renders nothing.
type Comment struct{}

// RenderTo writes nothing.
func (Comment) RenderTo(io.Writer, *interp.Context) error { return nil }

// CommentBlock parses `{% comment %}...{% endcomment %}`. The body is
// discarded without being parsed, so it may hold anything.
var CommentBlock = compiler.BlockParserFunc(func(
	string,
	[]syntax.Token,
	[]syntax.Element,
	*compiler.Registry,
) (interp.Renderable, error) {
	return Comment{}, nil
})

// Register installs every tag and block of this package in reg.
func Register(reg *compiler.Registry) {
	reg.RegisterBlock("comment", CommentBlock)
}
