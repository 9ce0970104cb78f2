// Package profile provides optional runtime profiling for liquid.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof -o liquid .
//
// Without the tag every [Profiler] is a no-op and [Modes] reports nothing.
//
// A profiler is configured by value and started once:
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start().Stop()
//
// Profile data is written to Path using the file name of the selected mode
// (cpu.pprof, mem.pprof, trace.out, ...) and can be inspected with:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The pprof build also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
