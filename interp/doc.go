// Package interp evaluates parsed templates.
//
// A parsed template is a tree of [Renderable] nodes. Rendering resolves
// [Expression] values against a [Context], which holds variable scopes and
// the named [Filter] table consulted by [FilterChain].
//
// Values are plain Go values: nil, booleans, numbers, strings, []any, and
// map[string]any, with other maps, slices, and arrays reached by reflection.
package interp
