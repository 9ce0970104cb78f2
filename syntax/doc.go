// Package syntax defines the lexical model of liquid templates.
//
// A template is a sequence of [Element] fragments: raw text, output
// expressions delimited by "{{ }}", and tags delimited by "{% %}". Expression
// and tag fragments carry the [Token] sequence lexed from their contents.
//
// [Tokenize] and [Granularize] produce these values from source text. The
// compiler consumes them read-only.
package syntax
