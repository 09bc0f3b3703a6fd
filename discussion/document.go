package discussion

import (
	"strings"

	"github.com/socraticlabs/copilot/core/protocol"
	"github.com/socraticlabs/copilot/phase"
)

// Fragment is one contribution to a phase's accumulated design notes.
type Fragment struct {
	Author protocol.Role `json:"author"`
	Text   string        `json:"text"`
}

// Document accumulates design notes per phase. Entries are append-only: a
// phase's fragment list only ever grows, which makes the monotonicity
// guarantee structural rather than conventional. A phase key exists only
// after that phase has produced at least one exchange.
type Document map[phase.Phase][]Fragment

// Append adds a fragment to the given phase. Prior content is never replaced.
func (d Document) Append(p phase.Phase, author protocol.Role, text string) {
	d[p] = append(d[p], Fragment{Author: author, Text: text})
}

// Render joins the fragments accumulated for a phase with newlines. Returns
// "" when the phase has no entry.
func (d Document) Render(p phase.Phase) string {
	fragments := d[p]
	if len(fragments) == 0 {
		return ""
	}

	parts := make([]string, len(fragments))
	for i, f := range fragments {
		parts[i] = f.Text
	}
	return strings.Join(parts, "\n")
}

// RenderAll concatenates a human-readable section per populated phase, in the
// given order. Each section has a humanized phase heading followed by the
// accumulated fragment text. This is both the summarizer input and the raw
// fallback body when summarization fails.
func (d Document) RenderAll(order []phase.Phase) string {
	var b strings.Builder
	for _, p := range order {
		if _, ok := d[p]; !ok {
			continue
		}
		b.WriteString("--- ")
		b.WriteString(phase.Humanize(p))
		b.WriteString(" ---\n")
		b.WriteString(d.Render(p))
		b.WriteString("\n\n")
	}
	return b.String()
}

// Len returns the number of fragments accumulated for a phase.
func (d Document) Len(p phase.Phase) int {
	return len(d[p])
}
