package compiler

import (
	"maps"
	"slices"

	"github.com/ardnew/liquid/interp"
	"github.com/ardnew/liquid/log"
	"github.com/ardnew/liquid/syntax"
)

// TagParser builds the node for a single-fragment tag.
//
// ParseTag receives the tag name and the tokens following it.
type TagParser interface {
	ParseTag(name string, args []syntax.Token, reg *Registry) (interp.Renderable, error)
}

// TagParserFunc adapts an ordinary function to a [TagParser].
type TagParserFunc func(name string, args []syntax.Token, reg *Registry) (interp.Renderable, error)

// ParseTag calls f.
func (f TagParserFunc) ParseTag(
	name string,
	args []syntax.Token,
	reg *Registry,
) (interp.Renderable, error) {
	return f(name, args, reg)
}

// BlockParser builds the node for a block: an opening tag, the fragments it
// encloses, and its closing tag.
//
// ParseBlock receives the block name, the tokens following the name in the
// opening tag, and the enclosed fragments. The closing tag is not included.
type BlockParser interface {
	ParseBlock(
		name string,
		args []syntax.Token,
		body []syntax.Element,
		reg *Registry,
	) (interp.Renderable, error)
}

// BlockParserFunc adapts an ordinary function to a [BlockParser].
type BlockParserFunc func(
	name string,
	args []syntax.Token,
	body []syntax.Element,
	reg *Registry,
) (interp.Renderable, error)

// ParseBlock calls f.
func (f BlockParserFunc) ParseBlock(
	name string,
	args []syntax.Token,
	body []syntax.Element,
	reg *Registry,
) (interp.Renderable, error) {
	return f(name, args, body, reg)
}

// Registry maps tag and block names to the parsers that build them.
//
// Registration must complete before parsing begins. A Registry is only read
// while parsing, so one Registry may be shared by concurrent parses.
type Registry struct {
	tags   map[string]TagParser
	blocks map[string]BlockParser
	logger log.Logger
}

// Option configures a [Registry].
type Option func(*Registry)

// WithTag registers a tag parser.
func WithTag(name string, p TagParser) Option {
	return func(r *Registry) { r.RegisterTag(name, p) }
}

// WithBlock registers a block parser.
func WithBlock(name string, p BlockParser) Option {
	return func(r *Registry) { r.RegisterBlock(name, p) }
}

// WithLogger sets the logger used while parsing.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry returns an empty registry with opts applied.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tags:   make(map[string]TagParser),
		blocks: make(map[string]BlockParser),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// RegisterTag registers p under name, replacing any existing tag parser.
func (r *Registry) RegisterTag(name string, p TagParser) { r.tags[name] = p }

// RegisterBlock registers p under name, replacing any existing block parser.
func (r *Registry) RegisterBlock(name string, p BlockParser) { r.blocks[name] = p }

// Tag returns the tag parser registered under name.
func (r *Registry) Tag(name string) (TagParser, bool) {
	p, ok := r.tags[name]

	return p, ok
}

// Block returns the block parser registered under name.
func (r *Registry) Block(name string) (BlockParser, bool) {
	p, ok := r.blocks[name]

	return p, ok
}

// IsBlock reports whether name opens a block.
func (r *Registry) IsBlock(name string) bool {
	_, ok := r.blocks[name]

	return ok
}

// TagNames returns the registered tag names in sorted order.
func (r *Registry) TagNames() []string { return slices.Sorted(maps.Keys(r.tags)) }

// BlockNames returns the registered block names in sorted order.
func (r *Registry) BlockNames() []string { return slices.Sorted(maps.Keys(r.blocks)) }

// Logger returns the logger used while parsing.
func (r *Registry) Logger() log.Logger { return r.logger }
