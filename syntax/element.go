package syntax

// ElementKind identifies the variant of an [Element].
type ElementKind uint8

const (
	ElementRaw ElementKind = iota
	ElementExpression
	ElementTag
)

func (k ElementKind) String() string {
	switch k {
	case ElementRaw:
		return "raw"
	case ElementExpression:
		return "expression"
	case ElementTag:
		return "tag"
	default:
		return "invalid"
	}
}

// Element is a top-level template fragment.
//
// Raw fragments keep their text in Source and carry no tokens. Expression
// and tag fragments carry their tokens along with the original marker text
// for diagnostics.
type Element struct {
	Source string
	Tokens []Token
	Kind   ElementKind
}

// Raw returns a raw text fragment.
func Raw(text string) Element { return Element{Kind: ElementRaw, Source: text} }

// Expression returns an output expression fragment.
func Expression(tokens []Token, source string) Element {
	return Element{Kind: ElementExpression, Tokens: tokens, Source: source}
}

// Tag returns a tag fragment.
func Tag(tokens []Token, source string) Element {
	return Element{Kind: ElementTag, Tokens: tokens, Source: source}
}

// TagName returns the leading identifier of a tag fragment.
func (e Element) TagName() (string, bool) {
	if e.Kind != ElementTag || len(e.Tokens) == 0 {
		return "", false
	}

	return e.Tokens[0].Name()
}
