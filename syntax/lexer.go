package syntax

import (
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ardnew/liquid/pkg"
)

// Marker delimiters recognized by [Tokenize].
const (
	OpenExpression  = "{{"
	CloseExpression = "}}"
	OpenTag         = "{%"
	CloseTag        = "%}"
)

// Tokenize splits template text into raw, expression, and tag fragments.
// The contents of each marker are lexed with [Granularize].
func Tokenize(text string) ([]Element, error) {
	elements := make([]Element, 0)

	for len(text) > 0 {
		start, open, closing, kind := nextMarker(text)
		if start < 0 {
			elements = append(elements, Raw(text))

			break
		}

		if start > 0 {
			elements = append(elements, Raw(text[:start]))
		}

		body := text[start+len(open):]

		end := strings.Index(body, closing)
		if end < 0 {
			return nil, pkg.UnexpectedToken("`"+closing+"`", "").
				With(slog.String("source", text[start:]))
		}

		source := text[start : start+len(open)+end+len(closing)]

		tokens, err := Granularize(body[:end])
		if err != nil {
			return nil, pkg.WrapError(err).With(slog.String("source", source))
		}

		switch kind {
		case ElementTag:
			if len(tokens) == 0 {
				return nil, pkg.UnexpectedToken("tag name", "").
					With(slog.String("source", source))
			}

			elements = append(elements, Tag(tokens, source))

		default:
			elements = append(elements, Expression(tokens, source))
		}

		text = text[len(source)+start:]
	}

	return elements, nil
}

// nextMarker locates the earliest opening marker in text.
func nextMarker(text string) (int, string, string, ElementKind) {
	expr := strings.Index(text, OpenExpression)
	tag := strings.Index(text, OpenTag)

	switch {
	case expr < 0 && tag < 0:
		return -1, "", "", ElementRaw
	case tag < 0 || (expr >= 0 && expr < tag):
		return expr, OpenExpression, CloseExpression, ElementExpression
	default:
		return tag, OpenTag, CloseTag, ElementTag
	}
}

// Granularize lexes the body of a single expression or tag marker.
func Granularize(text string) ([]Token, error) {
	l := &lexer{input: []byte(text)}

	tokens := make([]Token, 0)

	for {
		l.skipWhitespace()

		if l.eof() {
			return tokens, nil
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}
}

// lexer holds the scanning state of a single marker body.
type lexer struct {
	input []byte
	pos   int
}

func (l *lexer) next() (Token, error) {
	ch := l.peek()

	switch {
	case ch == '\'' || ch == '"':
		return l.scanString(ch)

	case isDigit(ch) || (ch == '-' && isDigit(l.peekAt(1))):
		return l.scanNumber()

	case isIdentifierStart(ch):
		return l.scanIdentifier(), nil
	}

	l.advance()

	switch ch {
	case '|':
		return Pipe, nil
	case ':':
		return Colon, nil
	case ',':
		return Comma, nil
	case '[':
		return OpenSquare, nil
	case ']':
		return CloseSquare, nil
	case '(':
		return OpenRound, nil
	case ')':
		return CloseRound, nil
	case '?':
		return Question, nil
	case '-':
		return Dash, nil
	case '.':
		if l.accept('.') {
			return DotDot, nil
		}

		return Dot, nil
	case '=':
		if l.accept('=') {
			return Comparison(OpEquals), nil
		}

		return Assignment, nil
	case '!':
		if l.accept('=') {
			return Comparison(OpNotEquals), nil
		}
	case '<':
		if l.accept('=') {
			return Comparison(OpLessThanEquals), nil
		}

		if l.accept('>') {
			return Comparison(OpNotEquals), nil
		}

		return Comparison(OpLessThan), nil
	case '>':
		if l.accept('=') {
			return Comparison(OpGreaterThanEquals), nil
		}

		return Comparison(OpGreaterThan), nil
	}

	return Token{}, pkg.UnexpectedToken("token", string(ch)).
		With(slog.Int("offset", l.pos-utf8.RuneLen(ch)))
}

func (l *lexer) scanString(quote rune) (Token, error) {
	start := l.pos
	l.advance() // skip opening quote

	for !l.eof() {
		if l.peek() == quote {
			text := string(l.input[start+1 : l.pos])
			l.advance() // skip closing quote

			return StringLiteral(text), nil
		}

		l.advance()
	}

	return Token{}, pkg.UnexpectedToken("`"+string(quote)+"`", "").
		With(slog.Int("offset", start))
}

func (l *lexer) scanNumber() (Token, error) {
	start := l.pos
	l.accept('-')

	for isDigit(l.peek()) {
		l.advance()
	}

	// A lone dot after digits introduces a fraction; two dots form a range.
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		l.advance()

		for isDigit(l.peek()) {
			l.advance()
		}

		text := string(l.input[start:l.pos])

		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{}, pkg.ErrInvalidArgument.Wrap(err).
				With(slog.String("number", text))
		}

		return FloatLiteral(f), nil
	}

	text := string(l.input[start:l.pos])

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return Token{}, pkg.ErrInvalidArgument.Wrap(err).
			With(slog.String("number", text))
	}

	return IntegerLiteral(i), nil
}

func (l *lexer) scanIdentifier() Token {
	start := l.pos

	for !l.eof() && isIdentifierContinue(l.peek()) {
		l.advance()
	}

	// A trailing question mark is part of predicate names like "empty?".
	l.accept('?')

	switch text := string(l.input[start:l.pos]); text {
	case "true":
		return BooleanLiteral(true)
	case "false":
		return BooleanLiteral(false)
	case "and":
		return And
	case "or":
		return Or
	case "contains":
		return Comparison(OpContains)
	default:
		return Identifier(text)
	}
}

// Helper methods

func (l *lexer) peek() rune { return l.peekAt(0) }

func (l *lexer) peekAt(n int) rune {
	pos := l.pos

	for ; n > 0 && pos < len(l.input); n-- {
		_, size := utf8.DecodeRune(l.input[pos:])
		pos += size
	}

	if pos >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[pos:])

	return r
}

func (l *lexer) advance() {
	if l.eof() {
		return
	}

	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.pos += size
}

func (l *lexer) accept(ch rune) bool {
	if !l.eof() && l.peek() == ch {
		l.advance()

		return true
	}

	return false
}

func (l *lexer) eof() bool { return l.pos >= len(l.input) }

func (l *lexer) skipWhitespace() {
	for !l.eof() && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

// Character classification

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	) || r == '-'
}
