package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/liquid/cli"
	"github.com/ardnew/liquid/log"
)

func main() {
	ctx := context.Background()

	if err := cli.Run(ctx, os.Exit, os.Args[1:]...); err != nil {
		// The error's LogValue carries its attributes.
		log.ErrorContext(ctx, "run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
