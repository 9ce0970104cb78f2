// Package compiler turns tokenized template fragments into a tree of
// renderable nodes.
//
// [Parse] walks the fragments produced by [syntax.Tokenize] once, front to
// back. Output fragments become filter chains or variables. Tag fragments
// are dispatched by name through a [Registry], and block tags collect the
// fragments up to their matching `end` tag as their body.
//
// The remaining exported functions ([ParseOutput], [ParseIndexes],
// [SplitBlock], [Expect], [ValueToken], [ToExpression]) are the toolkit
// used to write tag and block parsers.
package compiler
