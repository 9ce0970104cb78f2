package cmd

import "github.com/ardnew/liquid/pkg"

// Command errors. Each derives its kind from [pkg.NewError] so that callers
// classify them with errors.Is like any other error of this module.
var (
	ErrWriteConfig = pkg.NewError("write configuration file")
	ErrFileExists  = pkg.NewError("file exists (use --force to overwrite)")
	ErrDecodeData  = pkg.NewError("decode template data")
	ErrNoTemplate  = pkg.NewError("no template source")
	ErrFormat      = pkg.NewError("unsupported output format")
)
