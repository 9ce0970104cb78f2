package profile

// Profiler selects a profiling mode and where its output is written.
type Profiler struct {
	// Mode is one of [Modes]. An empty Mode disables profiling.
	Mode string
	// Path is the output directory. Empty uses a temporary directory.
	Path string
	// Quiet suppresses the start and stop messages printed by the profiler.
	Quiet bool
}

// Enabled reports whether p would start a profiler.
func (p Profiler) Enabled() bool { return p.Mode != "" && supported(p.Mode) }

// Start initializes the profiler and returns an interface for stopping it.
//
// If build tag pprof is unset, or p.Mode is empty or unknown, then Start
// returns a no-op implementation.
// Both Start and Stop are always safely callable.
func (p Profiler) Start() interface{ Stop() } {
	if !p.Enabled() {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
