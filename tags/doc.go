// Package tags provides tag and block parsers for a [compiler.Registry].
package tags
