// Package discussion defines the persisted record of a design conversation:
// the transcript, the accumulated per-phase document, and the current phase.
package discussion

import (
	"time"

	"github.com/google/uuid"

	"github.com/socraticlabs/copilot/core/protocol"
	"github.com/socraticlabs/copilot/phase"
)

const (
	// DefaultTitle is the list display title before any user message exists.
	DefaultTitle = "New Discussion"

	titleMaxRunes = 50
)

// Discussion is the unit of persistence and identity. The ID is assigned at
// creation and immutable; the transcript is append-only and never reordered
// or truncated; the phase is mutated only by the router's decision after each
// turn.
type Discussion struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Transcript []protocol.Message `json:"transcript"`
	Phase      phase.Phase        `json:"phase"`
	Document   Document           `json:"document"`

	// Asked records which phases have issued their guiding question. Entries
	// are set once and never reset, so revisiting a phase resumes free-form
	// discussion instead of re-asking.
	Asked map[phase.Phase]bool `json:"asked"`

	// Command is the raw user input driving routing for the current turn.
	// Transient bookkeeping, recomputed every turn.
	Command string `json:"command"`
}

// New creates a fresh Discussion with a unique UUIDv7 identifier, an empty
// transcript and document, and the first phase as its entry point.
func New() *Discussion {
	now := time.Now().UTC()
	return &Discussion{
		ID:        uuid.Must(uuid.NewV7()).String(),
		CreatedAt: now,
		UpdatedAt: now,
		Phase:     phase.First(),
		Document:  make(Document),
		Asked:     make(map[phase.Phase]bool),
	}
}

// AppendUser appends a user message to the transcript and records it as the
// pending routing command.
func (d *Discussion) AppendUser(text string) {
	d.Transcript = append(d.Transcript, protocol.NewMessage(protocol.RoleUser, text))
	d.Command = text
}

// AppendAssistant appends an assistant message to the transcript.
func (d *Discussion) AppendAssistant(text string) {
	d.Transcript = append(d.Transcript, protocol.NewMessage(protocol.RoleAssistant, text))
}

// MarkAsked records that phase p has issued its guiding question.
func (d *Discussion) MarkAsked(p phase.Phase) {
	if d.Asked == nil {
		d.Asked = make(map[phase.Phase]bool)
	}
	d.Asked[p] = true
}

// NeedsPrompt reports whether phase p should issue its guiding question on
// the next exchange.
func (d *Discussion) NeedsPrompt(p phase.Phase) bool {
	return !d.Asked[p]
}

// Closed reports whether the discussion has reached its terminal state. A
// closed discussion accepts no further phase transitions but remains loadable
// for read-only history display.
func (d *Discussion) Closed() bool {
	return d.Phase == phase.End
}

// Title derives the list display title: a prefix of the first user message,
// or DefaultTitle when no user message exists yet.
func (d *Discussion) Title() string {
	first := protocol.FirstUser(d.Transcript)
	if first == "" {
		return DefaultTitle
	}

	runes := []rune(first)
	if len(runes) <= titleMaxRunes {
		return first
	}
	return string(runes[:titleMaxRunes]) + "..."
}
