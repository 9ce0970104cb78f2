package repl

import "github.com/ardnew/liquid/pkg"

// Sentinel errors.
var (
	ErrOutOfBounds  = pkg.NewError("index out of range")
	ErrEditDeclined = pkg.NewError("decline edit")
	ErrCommand      = pkg.NewError("unknown command")
	ErrUsage        = pkg.NewError("invalid command usage")
)
