package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/syntax"
)

// Tokens lexes a template and prints each fragment with its tokens.
type Tokens struct {
	Width int `default:"48" help:"Truncate raw text to this many characters (0 disables)." short:"w"`

	Template []string `arg:"" help:"Template file(s) or '-' for stdin." name:"template" optional:"" type:"existingfile"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	src := templateFiles(t.Template)
	defer src.Close()

	if src.IsZero() {
		return ErrNoTemplate.With(slog.Any("paths", t.Template))
	}

	text, err := io.ReadAll(src)
	if err != nil {
		return pkg.ErrReadInput.Wrap(err)
	}

	elements, err := syntax.Tokenize(string(text))
	if err != nil {
		return pkg.WrapError(err).With(slog.String("command", "tokens"))
	}

	_, err = fmt.Fprintln(stdout(ctx), tokenTable(elements, t.Width))
	if err != nil {
		return pkg.ErrRender.Wrap(err)
	}

	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func tokenTable(elements []syntax.Element, width int) *table.Table {
	rows := make([][]string, len(elements))

	for i, e := range elements {
		source := e.Source
		if e.Kind == syntax.ElementRaw {
			source = strconv.Quote(truncate(source, width))
		}

		toks := make([]string, len(e.Tokens))
		for j, tok := range e.Tokens {
			toks[j] = tok.String()
		}

		rows[i] = []string{
			strconv.Itoa(i),
			e.Kind.String(),
			source,
			strings.Join(toks, " "),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "KIND", "SOURCE", "TOKENS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}

	return string(r[:width]) + "…"
}
