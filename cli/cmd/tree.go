package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/tags"
)

// Tree parses a template and prints the resulting renderable tree.
type Tree struct {
	Format string `default:"text" enum:"text,yaml,json" help:"Output format (${enum})." short:"f"`

	Template []string `arg:"" help:"Template file(s) or '-' for stdin." name:"template" optional:"" type:"existingfile"`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	s, err := newSession(ctx)
	if err != nil {
		return err
	}

	tmpl, err := parseTemplate(ctx, t.Template, s.registry)
	if err != nil {
		return pkg.WrapError(err).With(slog.String("command", "tree"))
	}

	return writeTree(stdout(ctx), describe(tmpl), t.Format)
}

// node is the serializable description of a [interp.Renderable].
type node struct {
	Kind     string   `json:"kind"               yaml:"kind"`
	Value    string   `json:"value,omitempty"    yaml:"value,omitempty"`
	Filters  []string `json:"filters,omitempty"  yaml:"filters,omitempty"`
	Children []node   `json:"children,omitempty" yaml:"children,omitempty"`
}

func describe(r interp.Renderable) node {
	var n node

	switch r := r.(type) {
	case *interp.Template:
		n.Kind = "template"
	case interp.Text:
		n.Kind, n.Value = "text", string(r)
	case *interp.Variable:
		n.Kind, n.Value = "variable", r.String()
	case *interp.FilterChain:
		n.Kind, n.Value = "output", r.Entry.String()
		for _, f := range r.Filters {
			n.Filters = append(n.Filters, f.String())
		}
	case tags.Comment:
		n.Kind = "comment"
	default:
		n.Kind = strings.TrimPrefix(fmt.Sprintf("%T", r), "*")
	}

	if p, ok := r.(interp.Parent); ok {
		for _, c := range p.Children() {
			n.Children = append(n.Children, describe(c))
		}
	}

	return n
}

var (
	kindStyle   = lipgloss.NewStyle().Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	filterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func (n node) label() string {
	var sb strings.Builder

	sb.WriteString(kindStyle.Render(n.Kind))

	if n.Value != "" {
		value := n.Value
		if n.Kind == "text" {
			value = fmt.Sprintf("%q", value)
		}

		sb.WriteByte(' ')
		sb.WriteString(valueStyle.Render(value))
	}

	for _, f := range n.Filters {
		sb.WriteString(" | ")
		sb.WriteString(filterStyle.Render(f))
	}

	return sb.String()
}

func (n node) tree() *tree.Tree {
	t := tree.Root(n.label()).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(branchStyle)

	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(c.label())
		} else {
			t.Child(c.tree())
		}
	}

	return t
}

func writeTree(w io.Writer, n node, format string) error {
	switch format {
	case "text":
		_, err := fmt.Fprintln(w, n.tree().String())
		if err != nil {
			return pkg.ErrRender.Wrap(err)
		}

		return nil

	case "yaml":
		b, err := yaml.Marshal(n)
		if err != nil {
			return pkg.ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(b)
		if err != nil {
			return pkg.ErrRender.Wrap(err)
		}

		return nil

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		if err := enc.Encode(n); err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

		return nil
	}

	return ErrFormat.Describe(format)
}
