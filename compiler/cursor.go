package compiler

import "github.com/ardnew/liquid/syntax"

// TokenCursor reads a token sequence front to back.
type TokenCursor struct {
	tokens []syntax.Token
	pos    int
}

// NewTokenCursor returns a cursor positioned at the first token.
func NewTokenCursor(tokens []syntax.Token) *TokenCursor {
	return &TokenCursor{tokens: tokens}
}

// Next consumes and returns the next token.
func (c *TokenCursor) Next() (syntax.Token, bool) {
	tok, ok := c.Peek()
	if ok {
		c.pos++
	}

	return tok, ok
}

// Peek returns the next token without consuming it.
func (c *TokenCursor) Peek() (syntax.Token, bool) {
	if c.pos >= len(c.tokens) {
		return syntax.Token{}, false
	}

	return c.tokens[c.pos], true
}

// Rest returns the tokens not yet consumed.
func (c *TokenCursor) Rest() []syntax.Token { return c.tokens[c.pos:] }

// Cursor reads a fragment sequence front to back.
//
// A single Cursor is shared by [Parse] and every block it encounters, so
// fragments gathered into a block body are never revisited at the outer
// level.
type Cursor struct {
	elements []syntax.Element
	pos      int
}

// NewCursor returns a cursor positioned at the first fragment.
func NewCursor(elements []syntax.Element) *Cursor {
	return &Cursor{elements: elements}
}

// Next consumes and returns the next fragment.
func (c *Cursor) Next() (syntax.Element, bool) {
	if c.pos >= len(c.elements) {
		return syntax.Element{}, false
	}

	c.pos++

	return c.elements[c.pos-1], true
}

// Rest returns the fragments not yet consumed.
func (c *Cursor) Rest() []syntax.Element { return c.elements[c.pos:] }
