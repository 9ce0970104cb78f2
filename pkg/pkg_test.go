package pkg

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	expected := "liquid"
	if Name != expected {
		t.Errorf("Expected Name to be %q, got %q", expected, Name)
	}
}

func TestVersion(t *testing.T) {
	v := Version()
	if v == "" {
		t.Fatal("Expected Version to be non-empty")
	}

	if strings.ContainsAny(v, " \t\r\n") {
		t.Errorf("Expected Version without whitespace, got %q", v)
	}
}

func TestAuthor(t *testing.T) {
	if !slices.ContainsFunc(Author, func(a AuthorInfo) bool {
		return a.Name == "ardnew"
	}) {
		t.Errorf("Expected Author to contain %q", "ardnew")
	}
}

func TestError_Is(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel", ErrFilter, ErrFilter, true},
		{"wrapped", ErrFilter.Wrap(cause), ErrFilter, true},
		{"with attrs", ErrUnsupportedTag.With(slog.String("tag", "x")), ErrUnsupportedTag, true},
		{"described", UnexpectedToken("`:`", "1"), ErrUnexpectedToken, true},
		{"cause reachable", ErrFilter.Wrap(cause), cause, true},
		{"fmt wrapped", fmt.Errorf("ctx: %w", ErrUnknownIndex.Describe("x")), ErrUnknownIndex, true},
		{"different kind", ErrFilter.Wrap(cause), ErrUnsupportedFilter, false},
		{"not an Error", ErrFilter, cause, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"sentinel", ErrUnsupportedFilter, "unsupported filter"},
		{"token", UnexpectedToken("identifier", "1"), "unexpected token: expected identifier, found `1`"},
		{"exhausted", UnexpectedToken("`]`", ""), "unexpected token: expected `]`, found nothing"},
		{"wrapped", ErrFilter.Wrap(errors.New("bad input")), "filter error: bad input"},
		{"wrap only", WrapError(errors.New("plain")), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Attr(t *testing.T) {
	err := UnexpectedToken("`:`", "1").With(slog.String("source", "x | y"))

	for key, want := range map[string]string{
		"expected": "`:`",
		"found":    "1",
		"source":   "x | y",
	} {
		v, ok := err.Attr(key)
		if !ok {
			t.Errorf("missing attribute %q", key)

			continue
		}

		if v.String() != want {
			t.Errorf("attribute %q = %q, want %q", key, v.String(), want)
		}
	}

	if _, ok := err.Attr("missing"); ok {
		t.Error("unexpected attribute found")
	}

	// Sentinels are never mutated by With.
	if _, ok := ErrUnexpectedToken.Attr("expected"); ok {
		t.Error("sentinel was mutated")
	}
}

func TestError_LogValue(t *testing.T) {
	err := ErrFilter.Wrap(errors.New("inner")).With(slog.String("filter", "upcase"))

	got := map[string]string{}
	for _, a := range err.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	want := map[string]string{
		"error":  "filter error",
		"cause":  "inner",
		"filter": "upcase",
	}

	for k, v := range want {
		if got[k] != v {
			t.Errorf("LogValue[%q] = %q, want %q", k, got[k], v)
		}
	}
}
