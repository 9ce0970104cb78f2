// Package filters provides the built-in template filters and filters
// defined by expr-lang programs.
//
// [Standard] returns the built-in table, ready for [interp.WithFilters].
// [Load] compiles user-defined filters from a YAML document.
package filters
