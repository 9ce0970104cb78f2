package compiler

import (
	"log/slog"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/syntax"
)

// endPrefix is prepended to a block name to form its closing tag name.
const endPrefix = "end"

// ParseTag builds the node for a tag fragment whose tokens are given.
//
// A registered tag is handed to its parser. A registered block consumes
// fragments from cur up to its matching closing tag, counting nested
// blocks of the same name so that their closing tags are kept in the body.
// The closing tag itself is consumed but not part of the body. A block that
// is never closed takes every remaining fragment as its body.
func ParseTag(cur *Cursor, tokens []syntax.Token, reg *Registry) (interp.Renderable, error) {
	if len(tokens) == 0 {
		return nil, pkg.UnexpectedToken("tag name", "")
	}

	name, ok := tokens[0].Name()
	if !ok {
		return nil, unsupportedTag(found(tokens[0]))
	}

	if p, ok := reg.Tag(name); ok {
		return p.ParseTag(name, tokens[1:], reg)
	}

	p, ok := reg.Block(name)
	if !ok {
		return nil, unsupportedTag(name)
	}

	body, closed := blockBody(cur, name)

	reg.Logger().Trace("block",
		slog.String("tag", name),
		slog.Int("children", len(body)),
		slog.Bool("closed", closed),
	)

	return p.ParseBlock(name, tokens[1:], body, reg)
}

// blockBody collects fragments up to the closing tag of the block name,
// reporting whether that closing tag was found before cur ran out.
func blockBody(cur *Cursor, name string) ([]syntax.Element, bool) {
	end := endPrefix + name
	body := make([]syntax.Element, 0)
	depth := 0

	for {
		el, ok := cur.Next()
		if !ok {
			return body, false
		}

		switch tag, _ := el.TagName(); {
		case tag == name:
			depth++
		case tag == end && depth > 0:
			depth--
		case tag == end:
			return body, true
		}

		body = append(body, el)
	}
}

func unsupportedTag(name string) *pkg.Error {
	return pkg.ErrUnsupportedTag.Describe(name).With(slog.String("tag", name))
}

// BlockSplit describes the fragments following a top-level delimiter tag.
type BlockSplit struct {
	// Delimiter is the name of the tag the split occurred at.
	Delimiter string
	// Args holds every token of the delimiter tag, its name included.
	Args []syntax.Token
	// Trailing holds the fragments from the delimiter tag onward.
	Trailing []syntax.Element
}

// SplitBlock divides elements at the first tag named in delimiters that is
// not nested inside another block.
//
// Nesting is tracked for every block name known to reg, so a delimiter
// enclosed in a nested block never causes a split. The fragments before the
// split are returned along with the split, or all of elements and nil when
// no top-level delimiter exists.
func SplitBlock(
	elements []syntax.Element,
	delimiters []string,
	reg *Registry,
) ([]syntax.Element, *BlockSplit) {
	delims := make(map[string]struct{}, len(delimiters))
	for _, d := range delimiters {
		delims[d] = struct{}{}
	}

	var stack []string

	for i, el := range elements {
		name, ok := el.TagName()
		if !ok {
			continue
		}

		if reg.IsBlock(name) {
			stack = append(stack, endPrefix+name)

			continue
		}

		if n := len(stack); n > 0 {
			if stack[n-1] == name {
				stack = stack[:n-1]
			}

			continue
		}

		if _, ok := delims[name]; ok {
			return elements[:i], &BlockSplit{
				Delimiter: name,
				Args:      el.Tokens,
				Trailing:  elements[i:],
			}
		}
	}

	return elements, nil
}
