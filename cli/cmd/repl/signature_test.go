package repl

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDetectFilterCall(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		want   filterCall
	}{
		{"no filter", "greeting", 8, filterCall{}},
		{"typing filter name", "a | app", 7, filterCall{}},
		{"first argument", "a | append:", 11, filterCall{name: "append", inCall: true}},
		{"first argument value", "a | append: 'x", 14, filterCall{name: "append", inCall: true}},
		{"second argument", "a | replace: 'x',", 17, filterCall{name: "replace", argIndex: 1, inCall: true}},
		{"quoted comma", "a | replace: ',", 15, filterCall{name: "replace", inCall: true}},
		{"quoted pipe", "a | append: '|", 14, filterCall{name: "append", inCall: true}},
		{"second filter", "a | f: 1, 2 | g: ", 17, filterCall{name: "g", inCall: true}},
		{"closed marker", "{{ a | f: 1 }} b", 16, filterCall{}},
		{"cursor before call", "a | f: 1", 3, filterCall{}},
		{"cursor past end", "a | f:", 99, filterCall{name: "f", inCall: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFilterCall(tt.input, tt.cursor)
			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(filterCall{})); diff != "" {
				t.Errorf("detectFilterCall(%q, %d) mismatch (-want +got):\n%s",
					tt.input, tt.cursor, diff)
			}
		})
	}
}

func TestSignature(t *testing.T) {
	if params, ok := signature("replace"); !ok || len(params) != 2 {
		t.Errorf(`signature("replace") = %v, %v`, params, ok)
	}

	for _, name := range []string{"upcase", "shout"} {
		if _, ok := signature(name); ok {
			t.Errorf("signature(%q) ok = true", name)
		}
	}
}

func TestRenderSignatureHint(t *testing.T) {
	tests := []struct {
		params []string
		idx    int
	}{
		{[]string{"search", "replacement"}, 0},
		{[]string{"search", "replacement"}, 1},
		{[]string{"...prefix"}, 3},
	}

	for _, tt := range tests {
		got := renderSignatureHint("f", tt.params, tt.idx)

		if !strings.HasPrefix(got, "f") {
			t.Errorf("hint %q does not start with the filter name", got)
		}

		for _, p := range tt.params {
			if !strings.Contains(got, p) {
				t.Errorf("hint %q missing parameter %q", got, p)
			}
		}
	}
}
