package phase_test

import (
	"testing"

	"github.com/socraticlabs/copilot/phase"
)

func TestPhases_Order(t *testing.T) {
	want := []phase.Phase{
		phase.VisionAndScoping,
		phase.FunctionalRequirements,
		phase.DataModel,
		phase.NFRAndScale,
		phase.ArchitectureAndComponents,
		phase.DeepDiveAndTradeoffs,
	}

	got := phase.Phases()
	if len(got) != len(want) {
		t.Fatalf("got %d phases, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("phase %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFirst(t *testing.T) {
	if phase.First() != phase.VisionAndScoping {
		t.Errorf("First() = %s, want vision_and_scoping", phase.First())
	}
}

func TestValid(t *testing.T) {
	for _, p := range phase.Phases() {
		if !phase.Valid(p) {
			t.Errorf("Valid(%s) = false, want true", p)
		}
	}

	for _, p := range []phase.Phase{phase.Summarize, phase.End, "bogus", ""} {
		if phase.Valid(p) {
			t.Errorf("Valid(%s) = true, want false", p)
		}
	}
}

func TestNextPrev_Clamping(t *testing.T) {
	if got := phase.Next(phase.DeepDiveAndTradeoffs); got != phase.DeepDiveAndTradeoffs {
		t.Errorf("Next(last) = %s, want last phase", got)
	}
	if got := phase.Prev(phase.VisionAndScoping); got != phase.VisionAndScoping {
		t.Errorf("Prev(first) = %s, want first phase", got)
	}
}

func TestPrompt(t *testing.T) {
	for _, p := range phase.Phases() {
		if phase.Prompt(p) == "" {
			t.Errorf("Prompt(%s) is empty", p)
		}
	}
	if phase.Prompt(phase.Summarize) != "" {
		t.Error("Prompt(summarize) should be empty")
	}
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		p    phase.Phase
		want string
	}{
		{phase.VisionAndScoping, "Vision And Scoping"},
		{phase.NFRAndScale, "Nfr And Scale"},
		{phase.DeepDiveAndTradeoffs, "Deep Dive And Tradeoffs"},
	}

	for _, tt := range tests {
		if got := phase.Humanize(tt.p); got != tt.want {
			t.Errorf("Humanize(%s) = %q, want %q", tt.p, got, tt.want)
		}
	}
}
