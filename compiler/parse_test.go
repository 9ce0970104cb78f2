package compiler

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/syntax"
)

// recorded is the node built by recordBlock: it keeps what the parser saw
// and renders its body.
type recorded struct {
	Name  string
	Args  []syntax.Token
	Body  []syntax.Element
	Nodes []interp.Renderable
}

func (r *recorded) RenderTo(w io.Writer, ctx *interp.Context) error {
	return interp.NewTemplate(r.Nodes...).RenderTo(w, ctx)
}

var recordBlock = BlockParserFunc(func(
	name string,
	args []syntax.Token,
	body []syntax.Element,
	reg *Registry,
) (interp.Renderable, error) {
	nodes, err := Parse(body, reg)
	if err != nil {
		return nil, err
	}

	return &recorded{Name: name, Args: args, Body: body, Nodes: nodes}, nil
})

var nullBlock = BlockParserFunc(func(string, []syntax.Token, []syntax.Element, *Registry) (interp.Renderable, error) {
	return interp.Text(""), nil
})

func blockRegistry() *Registry {
	return NewRegistry(
		WithBlock("comment", nullBlock),
		WithBlock("for", nullBlock),
		WithBlock("if", nullBlock),
	)
}

func tokenize(t *testing.T, text string) []syntax.Element {
	t.Helper()

	elements, err := syntax.Tokenize(text)
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", text, err)
	}

	return elements
}

func TestSplitBlock_HonoursNesting(t *testing.T) {
	elements := tokenize(t, strings.Join([]string{
		"{% for x in (1..10) %}",
		"{% if x == 2 %}",
		"{% for y (2..10) %}{{y}}{% else %} zz {% endfor %}",
		"{% else %}",
		"c",
		"{% endif %}",
		"{% else %}",
		"something",
		"{% endfor %}",
		"{% else %}",
		"trailing tags",
	}, ""))

	leading, split := SplitBlock(elements, []string{"else"}, blockRegistry())
	if split == nil {
		t.Fatal("split failed")
	}

	if split.Delimiter != "else" {
		t.Errorf("Delimiter = %q, want %q", split.Delimiter, "else")
	}

	if diff := cmp.Diff([]syntax.Token{syntax.Identifier("else")}, split.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}

	want := []syntax.Element{
		syntax.Tag([]syntax.Token{syntax.Identifier("else")}, "{% else %}"),
		syntax.Raw("trailing tags"),
	}
	if diff := cmp.Diff(want, split.Trailing); diff != "" {
		t.Errorf("Trailing mismatch (-want +got):\n%s", diff)
	}

	if len(leading)+len(split.Trailing) != len(elements) {
		t.Errorf("leading has %d fragments, want %d",
			len(leading), len(elements)-len(split.Trailing))
	}
}

func TestSplitBlock_NonMatchingStream(t *testing.T) {
	elements := tokenize(t,
		"{% comment %}A{%endcomment%} bunch of {{text}} with {{no}} else tag")

	leading, split := SplitBlock(elements, []string{"else"}, blockRegistry())
	if split != nil {
		t.Fatalf("unexpected split at %q", split.Delimiter)
	}

	if len(leading) != len(elements) {
		t.Errorf("leading has %d fragments, want %d", len(leading), len(elements))
	}
}

func TestSplitBlock_MultipleDelimiters(t *testing.T) {
	elements := tokenize(t, "a{% if %}{% elsif %}{% endif %}b{% elsif x %}c{% else %}d")

	leading, split := SplitBlock(elements, []string{"else", "elsif"}, blockRegistry())
	if split == nil {
		t.Fatal("split failed")
	}

	if split.Delimiter != "elsif" {
		t.Errorf("Delimiter = %q, want %q", split.Delimiter, "elsif")
	}

	if diff := cmp.Diff(granularize(t, "elsif x"), split.Args); diff != "" {
		t.Errorf("Args mismatch (-want +got):\n%s", diff)
	}

	if len(leading) != 5 || len(split.Trailing) != 4 {
		t.Errorf("split %d/%d fragments, want 5/4", len(leading), len(split.Trailing))
	}
}

func TestParse_Nesting(t *testing.T) {
	reg := NewRegistry(WithBlock("for", recordBlock))
	elements := tokenize(t, "{% for a %}x{% for b %}y{% endfor %}z{% endfor %}tail")

	nodes, err := Parse(elements, reg)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("Parse returned %d nodes, want 2", len(nodes))
	}

	outer, ok := nodes[0].(*recorded)
	if !ok {
		t.Fatalf("node 0 is %T, want *recorded", nodes[0])
	}

	wantBody := []syntax.Element{
		syntax.Raw("x"),
		syntax.Tag(granularize(t, "for b"), "{% for b %}"),
		syntax.Raw("y"),
		syntax.Tag(granularize(t, "endfor"), "{% endfor %}"),
		syntax.Raw("z"),
	}
	if diff := cmp.Diff(wantBody, outer.Body); diff != "" {
		t.Errorf("outer body mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff(granularize(t, "a"), outer.Args); diff != "" {
		t.Errorf("outer args mismatch (-want +got):\n%s", diff)
	}

	inner, ok := outer.Nodes[1].(*recorded)
	if !ok {
		t.Fatalf("outer node 1 is %T, want *recorded", outer.Nodes[1])
	}

	if diff := cmp.Diff([]syntax.Element{syntax.Raw("y")}, inner.Body); diff != "" {
		t.Errorf("inner body mismatch (-want +got):\n%s", diff)
	}

	if nodes[1] != interp.Text("tail") {
		t.Errorf("node 1 = %v, want tail text", nodes[1])
	}

	got, err := interp.Render(interp.NewTemplate(nodes...), interp.NewContext())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if got != "xyztail" {
		t.Errorf("Render() = %q, want %q", got, "xyztail")
	}
}

func TestParse_Idempotent(t *testing.T) {
	reg := NewRegistry(WithBlock("if", recordBlock))
	elements := tokenize(t, "{{ a.b | f: 1 }} {% if x %}{{ y[0] }}{% endif %}!")

	first, err := Parse(elements, reg)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	second, err := Parse(elements, reg)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-parse mismatch (-first +second):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		kind   error
		want   string
		source string
	}{
		{
			name:   "empty expression",
			input:  "a{{}}b",
			kind:   pkg.ErrUnexpectedToken,
			want:   "unexpected token: expected expression, found nothing",
			source: "{{}}",
		},
		{
			name:   "unsupported tag",
			input:  "{% nope 1 %}",
			kind:   pkg.ErrUnsupportedTag,
			want:   "unsupported tag: nope",
			source: "{% nope 1 %}",
		},
		{
			name:   "non-identifier tag",
			input:  "{% 'x' %}",
			kind:   pkg.ErrUnsupportedTag,
			want:   "unsupported tag: x",
			source: "{% 'x' %}",
		},
		{
			name:   "error inside block body",
			input:  "{% for %}{{ a b }}{% endfor %}",
			kind:   pkg.ErrUnexpectedToken,
			want:   "unexpected token: expected `|`, found `b`",
			source: "{{ a b }}",
		},
	}

	reg := NewRegistry(
		WithBlock("comment", nullBlock),
		WithBlock("for", recordBlock),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tokenize(t, tt.input), reg)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.input, nodes)
			}

			if !errors.Is(err, tt.kind) {
				t.Errorf("error %v is not %v", err, tt.kind)
			}

			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}

			var e *pkg.Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not a *pkg.Error", err)
			}

			if v, _ := e.Attr("source"); v.String() != tt.source {
				t.Errorf("source attribute = %q, want %q", v.String(), tt.source)
			}
		})
	}
}

func TestParse_UnclosedBlock(t *testing.T) {
	reg := NewRegistry(WithBlock("for", recordBlock))

	tests := []struct {
		name  string
		input string
		body  []syntax.Element
	}{
		{
			name:  "no closing tag",
			input: "a{% for x %}never closed",
			body:  []syntax.Element{syntax.Raw("never closed")},
		},
		{
			name:  "only nested closing tag",
			input: "a{% for x %}b{% for y %}c{% endfor %}",
			body: []syntax.Element{
				syntax.Raw("b"),
				syntax.Tag(granularize(t, "for y"), "{% for y %}"),
				syntax.Raw("c"),
				syntax.Tag(granularize(t, "endfor"), "{% endfor %}"),
			},
		},
		{
			name:  "empty body",
			input: "a{% for x %}",
			body:  []syntax.Element{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, err := Parse(tokenize(t, tt.input), reg)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}

			if len(nodes) != 2 || nodes[0] != interp.Text("a") {
				t.Fatalf("Parse(%q) = %v, want text then block", tt.input, nodes)
			}

			block, ok := nodes[1].(*recorded)
			if !ok {
				t.Fatalf("node 1 is %T, want *recorded", nodes[1])
			}

			if block.Name != "for" {
				t.Errorf("block name = %q, want %q", block.Name, "for")
			}

			if diff := cmp.Diff(granularize(t, "x"), block.Args); diff != "" {
				t.Errorf("args mismatch (-want +got):\n%s", diff)
			}

			if diff := cmp.Diff(tt.body, block.Body); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTag_EmptyTokens(t *testing.T) {
	_, err := ParseTag(NewCursor(nil), nil, NewRegistry())

	if want := "unexpected token: expected tag name, found nothing"; err == nil || err.Error() != want {
		t.Errorf("ParseTag error = %v, want %q", err, want)
	}
}

func TestParseTemplate(t *testing.T) {
	reg := NewRegistry(WithBlock("comment", nullBlock))
	ctx := interp.NewContext(interp.WithGlobals(map[string]any{
		"user": map[string]any{"name": "ada"},
	}))

	tmpl, err := ParseTemplate(context.Background(),
		"Hi {{ user.name }}{% comment %}{{ ignored }}{% endcomment %}!", reg)
	if err != nil {
		t.Fatalf("ParseTemplate error: %v", err)
	}

	got, err := interp.Render(tmpl, ctx)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if got != "Hi ada!" {
		t.Errorf("Render() = %q, want %q", got, "Hi ada!")
	}
}

func TestParseReader(t *testing.T) {
	tmpl, err := ParseReader(context.Background(), strings.NewReader("{{ 'x' }}y"), NewRegistry())
	if err != nil {
		t.Fatalf("ParseReader error: %v", err)
	}

	got, err := interp.Render(tmpl, interp.NewContext())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if got != "xy" {
		t.Errorf("Render() = %q, want %q", got, "xy")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestParseReader_ReadError(t *testing.T) {
	_, err := ParseReader(context.Background(), failingReader{}, NewRegistry())
	if !errors.Is(err, pkg.ErrReadInput) {
		t.Errorf("ParseReader error = %v, want %v", err, pkg.ErrReadInput)
	}
}

func TestCache(t *testing.T) {
	cache := NewCache(NewRegistry())
	ctx := context.Background()

	const source = "{{ a }}"

	var (
		wg      sync.WaitGroup
		results [8]*interp.Template
	)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			tmpl, err := cache.Parse(ctx, source)
			if err != nil {
				t.Errorf("Parse error: %v", err)
			}

			results[i] = tmpl
		}()
	}

	wg.Wait()

	for i, r := range results {
		if r == nil || r != results[0] {
			t.Errorf("result %d = %p, want %p", i, r, results[0])
		}
	}

	_, err := cache.Parse(ctx, "{{ }}")
	if !errors.Is(err, pkg.ErrUnexpectedToken) {
		t.Errorf("Parse error = %v, want %v", err, pkg.ErrUnexpectedToken)
	}

	_, again := cache.Parse(ctx, "{{ }}")
	if again != err {
		t.Errorf("failure was not cached: %v", again)
	}

	other, err := cache.Parse(ctx, "{{ b }}")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if other == results[0] {
		t.Error("distinct sources share a cached template")
	}

	if n := cache.Len(); n != 3 {
		t.Errorf("Len() = %d, want 3", n)
	}

	cache.Clear()

	if n := cache.Len(); n != 0 {
		t.Errorf("Len() after Clear = %d, want 0", n)
	}
}
