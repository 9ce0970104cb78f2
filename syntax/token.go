package syntax

import (
	"strconv"
)

// Kind identifies the variant of a [Token].
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPipe
	KindDot
	KindColon
	KindComma
	KindOpenSquare
	KindCloseSquare
	KindOpenRound
	KindCloseRound
	KindQuestion
	KindDash
	KindAssignment
	KindDotDot
	KindComparison
	KindAnd
	KindOr
	KindIdentifier
	KindString
	KindInteger
	KindFloat
	KindBoolean
)

// ComparisonOperator identifies the operator carried by a comparison token.
type ComparisonOperator uint8

const (
	OpEquals ComparisonOperator = iota + 1
	OpNotEquals
	OpLessThan
	OpGreaterThan
	OpLessThanEquals
	OpGreaterThanEquals
	OpContains
)

var operatorText = map[ComparisonOperator]string{
	OpEquals:            "==",
	OpNotEquals:         "!=",
	OpLessThan:          "<",
	OpGreaterThan:       ">",
	OpLessThanEquals:    "<=",
	OpGreaterThanEquals: ">=",
	OpContains:          "contains",
}

func (op ComparisonOperator) String() string { return operatorText[op] }

// Token is the smallest lexical unit inside an expression or tag fragment.
//
// Tokens are plain values: two tokens are equal exactly when == says so,
// which makes them usable as map keys and in direct comparisons against
// the punctuation variables below. Only the field selected by Kind is
// meaningful for value-carrying tokens.
type Token struct {
	Text  string
	Int   int64
	Float float64
	Kind  Kind
	Op    ComparisonOperator
	Bool  bool
}

// Punctuation and keyword tokens.
var (
	Pipe        = Token{Kind: KindPipe}
	Dot         = Token{Kind: KindDot}
	Colon       = Token{Kind: KindColon}
	Comma       = Token{Kind: KindComma}
	OpenSquare  = Token{Kind: KindOpenSquare}
	CloseSquare = Token{Kind: KindCloseSquare}
	OpenRound   = Token{Kind: KindOpenRound}
	CloseRound  = Token{Kind: KindCloseRound}
	Question    = Token{Kind: KindQuestion}
	Dash        = Token{Kind: KindDash}
	Assignment  = Token{Kind: KindAssignment}
	DotDot      = Token{Kind: KindDotDot}
	And         = Token{Kind: KindAnd}
	Or          = Token{Kind: KindOr}
)

// Identifier returns an identifier token.
func Identifier(name string) Token { return Token{Kind: KindIdentifier, Text: name} }

// StringLiteral returns a string literal token holding the unquoted text.
func StringLiteral(s string) Token { return Token{Kind: KindString, Text: s} }

// IntegerLiteral returns an integer literal token.
func IntegerLiteral(i int64) Token { return Token{Kind: KindInteger, Int: i} }

// FloatLiteral returns a float literal token.
func FloatLiteral(f float64) Token { return Token{Kind: KindFloat, Float: f} }

// BooleanLiteral returns a boolean literal token.
func BooleanLiteral(b bool) Token { return Token{Kind: KindBoolean, Bool: b} }

// Comparison returns a comparison operator token.
func Comparison(op ComparisonOperator) Token { return Token{Kind: KindComparison, Op: op} }

// IsValue reports whether t can express a value: a literal or an identifier.
func (t Token) IsValue() bool {
	switch t.Kind {
	case KindString, KindInteger, KindFloat, KindBoolean, KindIdentifier:
		return true
	default:
		return false
	}
}

// Name returns the text of an identifier token.
func (t Token) Name() (string, bool) {
	if t.Kind != KindIdentifier {
		return "", false
	}

	return t.Text, true
}

// String returns the canonical display form used in diagnostics.
func (t Token) String() string {
	switch t.Kind {
	case KindPipe:
		return "|"
	case KindDot:
		return "."
	case KindColon:
		return ":"
	case KindComma:
		return ","
	case KindOpenSquare:
		return "["
	case KindCloseSquare:
		return "]"
	case KindOpenRound:
		return "("
	case KindCloseRound:
		return ")"
	case KindQuestion:
		return "?"
	case KindDash:
		return "-"
	case KindAssignment:
		return "="
	case KindDotDot:
		return ".."
	case KindComparison:
		return t.Op.String()
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindIdentifier, KindString:
		return t.Text
	case KindInteger:
		return strconv.FormatInt(t.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(t.Float, 'f', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(t.Bool)
	default:
		return "invalid"
	}
}
