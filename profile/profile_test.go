package profile

import (
	"slices"
	"testing"
)

func TestProfiler_Disabled(t *testing.T) {
	for _, p := range []Profiler{
		{},
		{Mode: "no-such-mode"},
		{Path: t.TempDir(), Quiet: true},
	} {
		if p.Enabled() {
			t.Errorf("%+v: Enabled() = true", p)
		}

		// Must not panic and must be stoppable more than once.
		ctrl := p.Start()
		ctrl.Stop()
		ctrl.Stop()
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() = %v, not sorted", modes)
	}

	for _, m := range modes {
		if !(Profiler{Mode: m}).Enabled() {
			t.Errorf("mode %q listed but not enabled", m)
		}
	}
}
