// Package phase defines the fixed sequence of system-design discussion phases
// and the command router that selects transitions between them.
package phase

import "strings"

// Phase identifies one stage of the design discussion.
type Phase string

// The six discussion phases, in order, plus the two terminal pseudo-phases.
// Order is significant: it defines the default advance/retreat direction.
const (
	VisionAndScoping          Phase = "vision_and_scoping"
	FunctionalRequirements    Phase = "functional_requirements"
	DataModel                 Phase = "data_model"
	NFRAndScale               Phase = "nfr_and_scale"
	ArchitectureAndComponents Phase = "architecture_and_components"
	DeepDiveAndTradeoffs      Phase = "deep_dive_and_tradeoffs"

	Summarize Phase = "summarize"
	End       Phase = "end"
)

// phases is the immutable ordered registry of active discussion phases.
// Loaded once at startup; safe for concurrent read.
var phases = []Phase{
	VisionAndScoping,
	FunctionalRequirements,
	DataModel,
	NFRAndScale,
	ArchitectureAndComponents,
	DeepDiveAndTradeoffs,
}

var prompts = map[Phase]string{
	VisionAndScoping:          VisionAndScopingPrompt,
	FunctionalRequirements:    FunctionalRequirementsPrompt,
	DataModel:                 DataModelPrompt,
	NFRAndScale:               NFRAndScalePrompt,
	ArchitectureAndComponents: ArchitectureAndComponentsPrompt,
	DeepDiveAndTradeoffs:      DeepDiveAndTradeoffsPrompt,
}

// Phases returns the ordered list of active discussion phases. Callers must
// not modify the returned slice.
func Phases() []Phase {
	return phases
}

// First returns the entry phase for a new discussion.
func First() Phase {
	return phases[0]
}

// Valid reports whether p is an active discussion phase. The terminal
// pseudo-phases Summarize and End are not valid discussion phases.
func Valid(p Phase) bool {
	_, ok := prompts[p]
	return ok
}

// Index returns the position of p in the phase order, or -1 if p is not an
// active discussion phase.
func Index(p Phase) int {
	for i, candidate := range phases {
		if candidate == p {
			return i
		}
	}
	return -1
}

// Next returns the phase after p, clamped at the last phase: advancing past
// the end stays on the last phase. Unknown phases map to the first phase.
func Next(p Phase) Phase {
	i := Index(p)
	if i < 0 {
		return First()
	}
	if i+1 >= len(phases) {
		return phases[len(phases)-1]
	}
	return phases[i+1]
}

// Prev returns the phase before p, clamped at the first phase: retreating
// before the start stays on the first phase. Unknown phases map to the first
// phase.
func Prev(p Phase) Phase {
	i := Index(p)
	if i <= 0 {
		return First()
	}
	return phases[i-1]
}

// Prompt returns the guiding prompt for an active discussion phase, or ""
// for unknown phases and pseudo-phases.
func Prompt(p Phase) string {
	return prompts[p]
}

// Humanize converts a phase identifier to a display heading, e.g.
// "vision_and_scoping" becomes "Vision And Scoping".
func Humanize(p Phase) string {
	words := strings.Split(string(p), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
