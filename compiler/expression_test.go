package compiler

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/pkg"
	"github.com/ardnew/liquid/syntax"
)

func granularize(t *testing.T, text string) []syntax.Token {
	t.Helper()

	tokens, err := syntax.Granularize(text)
	if err != nil {
		t.Fatalf("Granularize(%q) error: %v", text, err)
	}

	return tokens
}

func lit(v any) interp.Literal { return interp.Literal{Value: v} }

func TestParseOutput(t *testing.T) {
	defCall := interp.NewFilterCall("def", lit("1"), lit(2.0), lit("3"))

	tests := []struct {
		name  string
		input string
		want  *interp.FilterChain
	}{
		{
			name:  "filters",
			input: "abc | def:'1',2,'3' | blabla",
			want: interp.NewFilterChain(interp.NewVariable("abc"),
				defCall,
				interp.NewFilterCall("blabla"),
			),
		},
		{
			name:  "index",
			input: "abc[0] | def:'1',2,'3' | blabla",
			want: interp.NewFilterChain(interp.NewVariable("abc", lit(int64(0))),
				defCall,
				interp.NewFilterCall("blabla"),
			),
		},
		{
			name:  "literal entry",
			input: "'x' | upcase",
			want:  interp.NewFilterChain(lit("x"), interp.NewFilterCall("upcase")),
		},
		{
			name:  "no filters",
			input: "post.title",
			want:  interp.NewFilterChain(interp.NewVariable("post", lit("title"))),
		},
		{
			name:  "variable arguments",
			input: "a | f: b, 'c', true",
			want: interp.NewFilterChain(interp.NewVariable("a"),
				interp.NewFilterCall("f",
					interp.NewVariable("b"),
					lit("c"),
					lit(true),
				),
			),
		},
		{
			name:  "colon without arguments",
			input: "a | f: | g",
			want: interp.NewFilterChain(interp.NewVariable("a"),
				interp.NewFilterCall("f"),
				interp.NewFilterCall("g"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOutput(granularize(t, tt.input))
			if err != nil {
				t.Fatalf("ParseOutput(%q) error: %v", tt.input, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseOutput(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseOutput_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "requires filter names",
			input: "abc | '1','2','3' | blabla",
			want:  "unexpected token: expected identifier, found `1`",
		},
		{
			name:  "fails on missing colons",
			input: "abc | def '1',2,'3' | blabla",
			want:  "unexpected token: expected `:`, found `1`",
		},
		{
			name:  "fails on missing pipes",
			input: "abc | def:'1',2,'3' blabla",
			want:  "unexpected token: expected `,` | `|`, found `blabla`",
		},
		{
			name:  "trailing pipe",
			input: "abc |",
			want:  "unexpected token: expected identifier, found nothing",
		},
		{
			name:  "leftover before pipe",
			input: "abc def | f",
			want:  "unexpected token: expected `|`, found `def`",
		},
		{
			name:  "leading pipe",
			input: "| f",
			want:  "unexpected token: expected string | number | boolean | identifier, found `|`",
		},
		{
			name:  "malformed argument",
			input: "abc | f: (",
			want:  "unexpected token: expected string | number | boolean | identifier, found `(`",
		},
		{
			name:  "empty",
			input: "",
			want:  "unexpected token: expected expression, found nothing",
		},
		{
			name:  "unclosed bracket",
			input: "abc[0 | f",
			want:  "unexpected token: expected `]`, found `|`",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOutput(granularize(t, tt.input))
			if err == nil {
				t.Fatalf("ParseOutput(%q) succeeded", tt.input)
			}

			if !errors.Is(err, pkg.ErrUnexpectedToken) {
				t.Errorf("error %v is not %v", err, pkg.ErrUnexpectedToken)
			}

			if err.Error() != tt.want {
				t.Errorf("error = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestParseIndexes(t *testing.T) {
	tests := []struct {
		input string
		want  []interp.Expression
	}{
		{input: "", want: nil},
		{input: "| f", want: nil},
		{input: ".a", want: []interp.Expression{lit("a")}},
		{
			input: `.a[0]["b c"][k] | x`,
			want: []interp.Expression{
				lit("a"),
				lit(int64(0)),
				lit("b c"),
				interp.NewVariable("k"),
			},
		},
		{input: "[-1].size", want: []interp.Expression{lit(int64(-1)), lit("size")}},
	}

	for _, tt := range tests {
		got, err := ParseIndexes(granularize(t, tt.input))
		if err != nil {
			t.Fatalf("ParseIndexes(%q) error: %v", tt.input, err)
		}

		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("ParseIndexes(%q) mismatch (-want +got):\n%s", tt.input, diff)
		}
	}
}

func TestParseIndexes_Errors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{".", "unexpected token: expected identifier, found nothing"},
		{".1", "unexpected token: expected identifier, found `1`"},
		{"[", "unexpected token: expected string | whole number | identifier, found nothing"},
		{"[1.5]", "unexpected token: expected string | whole number | identifier, found `1.5`"},
		{"[true]", "unexpected token: expected string | whole number | identifier, found `true`"},
		{"[0", "unexpected token: expected `]`, found nothing"},
		{"[0.a", "unexpected token: expected `]`, found `.`"},
	}

	for _, tt := range tests {
		_, err := ParseIndexes(granularize(t, tt.input))
		if err == nil {
			t.Errorf("ParseIndexes(%q) succeeded", tt.input)

			continue
		}

		if err.Error() != tt.want {
			t.Errorf("ParseIndexes(%q) error = %q, want %q", tt.input, err.Error(), tt.want)
		}
	}
}

func TestParseExpression_Render(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		globals map[string]any
	}{
		{
			name:  "string",
			input: `"42"`,
		},
		{
			name:    "object dot access",
			input:   "post.number",
			globals: map[string]any{"post": map[string]any{"number": int64(42)}},
		},
		{
			name:    "object index access",
			input:   `post["number"]`,
			globals: map[string]any{"post": map[string]any{"number": int64(42)}},
		},
		{
			name:  "object variable access",
			input: "post[foo]",
			globals: map[string]any{
				"post": map[string]any{"number": int64(42)},
				"foo":  "number",
			},
		},
		{
			name:    "array index access",
			input:   "post[0]",
			globals: map[string]any{"post": []any{int64(42)}},
		},
		{
			name:  "mixed access",
			input: "post.child[0]",
			globals: map[string]any{
				"post": map[string]any{"child": []any{int64(42)}},
			},
		},
		{
			name:    "float scalar",
			input:   "n",
			globals: map[string]any{"n": 42.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseExpression(granularize(t, tt.input), NewRegistry())
			if err != nil {
				t.Fatalf("ParseExpression(%q) error: %v", tt.input, err)
			}

			got, err := interp.Render(node, interp.NewContext(interp.WithGlobals(tt.globals)))
			if err != nil {
				t.Fatalf("Render error: %v", err)
			}

			if got != "42" {
				t.Errorf("Render(%q) = %q, want %q", tt.input, got, "42")
			}
		})
	}
}

func TestParseExpression_Shape(t *testing.T) {
	echo := TagParserFunc(func(name string, args []syntax.Token, _ *Registry) (interp.Renderable, error) {
		return interp.Text(name + ":" + args[0].String()), nil
	})
	reg := NewRegistry(WithTag("echo", echo))

	tests := []struct {
		name  string
		input string
		want  interp.Renderable
	}{
		{
			name:  "bare path",
			input: "post.child[0]",
			want:  interp.NewVariable("post", lit("child"), lit(int64(0))),
		},
		{
			name:  "path with filters",
			input: "post.title | upcase",
			want: interp.NewFilterChain(
				interp.NewVariable("post", lit("title")),
				interp.NewFilterCall("upcase"),
			),
		},
		{
			name:  "bare identifier",
			input: "post",
			want:  interp.NewFilterChain(interp.NewVariable("post")),
		},
		{
			name:  "tag",
			input: "echo hi",
			want:  interp.Text("echo:hi"),
		},
		{
			name:  "tag root with accessor",
			input: "echo.x",
			want:  interp.NewVariable("echo", lit("x")),
		},
		{
			name:  "tag root with accessor and filters",
			input: "echo.x | upcase",
			want: interp.NewFilterChain(
				interp.NewVariable("echo", lit("x")),
				interp.NewFilterCall("upcase"),
			),
		},
		{
			name:  "tag root with index",
			input: "echo[0] | size",
			want: interp.NewFilterChain(
				interp.NewVariable("echo", lit(int64(0))),
				interp.NewFilterCall("size"),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseExpression(granularize(t, tt.input), reg)
			if err != nil {
				t.Fatalf("ParseExpression(%q) error: %v", tt.input, err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseExpression(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseExpression_Empty(t *testing.T) {
	_, err := ParseExpression(nil, NewRegistry())

	if want := "unexpected token: expected expression, found nothing"; err == nil || err.Error() != want {
		t.Errorf("ParseExpression(nil) error = %v, want %q", err, want)
	}
}
