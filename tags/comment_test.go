package tags

import (
	"testing"

	"github.com/ardnew/liquid/compiler"
	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/syntax"
)

func TestCommentBlock(t *testing.T) {
	reg := compiler.NewRegistry()
	Register(reg)

	body := []syntax.Element{syntax.Expression(nil, "This is a test")}

	node, err := CommentBlock.ParseBlock("comment", nil, body, reg)
	if err != nil {
		t.Fatalf("ParseBlock error: %v", err)
	}

	got, err := interp.Render(node, interp.NewContext())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestCommentBlock_Template(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a{% comment %}b{% endcomment %}c", "ac"},
		{"{% comment %}{{ missing | nope }}{% nope %}{% endcomment %}ok", "ok"},
		{"{% comment %}{% comment %}x{% endcomment %}y{% endcomment %}z", "z"},
		{"a{% comment %}never closed", "a"},
	}

	reg := compiler.NewRegistry()
	Register(reg)

	for _, tt := range tests {
		tmpl, err := compiler.ParseTemplate(t.Context(), tt.input, reg)
		if err != nil {
			t.Fatalf("ParseTemplate(%q) error: %v", tt.input, err)
		}

		got, err := interp.Render(tmpl, interp.NewContext())
		if err != nil {
			t.Fatalf("Render(%q) error: %v", tt.input, err)
		}

		if got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRegister(t *testing.T) {
	reg := compiler.NewRegistry()
	Register(reg)

	if !reg.IsBlock("comment") {
		t.Error("comment block was not registered")
	}
}
