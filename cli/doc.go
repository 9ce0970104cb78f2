// Package cli contains the command line interface for liquid.
//
// # Usage
//
//	liquid [flags] [render] TEMPLATE...
//	liquid [flags] tree|tokens TEMPLATE...
//	liquid [flags] filters|repl|init
//
// Templates are rendered against the variables defined in data files given
// with --data, using the built-in filters plus any defined in files given with
// --filters:
//
//	liquid -d site.yaml -d local.json -F filters.yaml page.liquid
//
// # Configuration
//
// Flag values are also read from config.yaml (and config.json) in the user
// configuration directory. The init command writes the current flag values
// there. Command-line flags override configured values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o liquid .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/liquid/pprof)
package cli
