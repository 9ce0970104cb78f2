// Package cmd implements the liquid subcommands: render, tree, tokens,
// filters, init, and repl.
//
// Commands receive their [context.Context] from kong. Data and filter files
// given on the command line are stored in that context with [WithDataFiles]
// and [WithFilterFiles] before any command runs.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
