package engine

import (
	"context"
	"fmt"
	"iter"

	"github.com/socraticlabs/copilot/core/protocol"
	"github.com/socraticlabs/copilot/discussion"
	"github.com/socraticlabs/copilot/observability"
	"github.com/socraticlabs/copilot/phase"
)

// FallbackReply is the assistant response substituted when the model call
// fails during a phase turn. The failure is logged and swallowed; the
// conversation continues.
const FallbackReply = "I seem to be having trouble connecting. Could you try your message again?"

// SummaryFallbackPrefix precedes the raw rendered document when the model
// call fails during summarization.
const SummaryFallbackPrefix = "I encountered an error while generating the summary. Here is the raw data:\n\n"

// Turn runs one user input against a discussion and yields the resulting
// step. A missing id creates a fresh discussion; a supplied id resumes one,
// yielding ErrDiscussionNotFound if no record matches. The sequence is
// finite: exactly one Step per turn.
func (e *Engine) Turn(ctx context.Context, userText, id string) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		yield(e.turn(ctx, userText, id))
	}
}

// turn executes the whole step. Any unanticipated panic is caught here and
// surfaced as a structured error; state persisted by prior turns is left
// untouched.
func (e *Engine) turn(ctx context.Context, userText, id string) (step Step) {
	defer func() {
		if r := recover(); r != nil {
			e.emit(ctx, EventTurnError, observability.LevelError, map[string]any{
				"discussion_id": id,
				"error":         fmt.Sprint(r),
			})
			step = Step{DiscussionID: id, Err: fmt.Errorf("turn failed: %v", r)}
		}
	}()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	var d *discussion.Discussion
	if id == "" {
		d = discussion.New()
	} else {
		loaded, err := e.store.Load(ctx, id)
		if err != nil {
			return Step{DiscussionID: id, Err: fmt.Errorf("load discussion %s: %w", id, err)}
		}
		if loaded == nil {
			return Step{DiscussionID: id, Err: fmt.Errorf("%w: %s", ErrDiscussionNotFound, id)}
		}
		d = loaded
	}

	e.emit(ctx, EventTurnStart, observability.LevelInfo, map[string]any{
		"discussion_id": d.ID,
		"phase":         string(d.Phase),
		"resumed":       id != "",
	})

	if d.Closed() {
		// Terminal state: the record stays loadable for history display
		// but accepts no further transitions. Nothing changed, so the
		// stored record still matches the snapshot.
		return snapshot(d, phase.End, "", true)
	}

	d.AppendUser(userText)

	target := phase.Route(d.Phase, d.Command)
	e.emit(ctx, EventRouterDecide, observability.LevelInfo, map[string]any{
		"discussion_id": d.ID,
		"from":          string(d.Phase),
		"to":            string(target),
		"command":       d.Command,
	})

	// Single step per turn: one user input produces exactly one phase
	// execution, never a chain of advances.
	var reply string
	switch {
	case target == phase.End:
		// No processor runs and no write is attempted; the state visible
		// to later loads is unchanged from before this call, so Saved
		// stays true.
		return snapshot(d, phase.End, "", true)
	case target == phase.Summarize:
		reply = e.runSummary(ctx, d)
		d.Phase = phase.End
	default:
		reply = e.runPhase(ctx, d, target)
		d.Phase = target
	}

	saved := true
	if err := e.store.Save(ctx, d); err != nil {
		// Best effort: the user still sees the answer even when it could
		// not be durably saved.
		saved = false
		e.emit(ctx, EventStoreSave, observability.LevelWarning, map[string]any{
			"discussion_id": d.ID,
			"error":         err.Error(),
		})
	}

	return snapshot(d, target, reply, saved)
}

// runPhase executes one exchange of an active discussion phase: it emits the
// audit event, asks the model (including the guiding prompt if the phase has
// not asked it yet), and folds the reply into transcript and document. The
// transcript grows by exactly one assistant entry; the phase's document
// fragment never shrinks.
func (e *Engine) runPhase(ctx context.Context, d *discussion.Discussion, p phase.Phase) string {
	e.emit(ctx, EventPhaseRun, observability.LevelInfo, map[string]any{
		"discussion_id": d.ID,
		"phase":         string(p),
	})

	isNew := d.NeedsPrompt(p)

	messages := protocol.WithSystem(phase.Persona, d.Transcript)
	if isNew {
		messages = append(messages, protocol.NewMessage(protocol.RoleUser, phase.Prompt(p)))
	}

	reply, err := e.generator.Generate(ctx, messages)
	if err != nil {
		e.emit(ctx, EventGenerateFallback, observability.LevelWarning, map[string]any{
			"discussion_id": d.ID,
			"phase":         string(p),
			"error":         err.Error(),
		})
		reply = FallbackReply
	}

	userText := protocol.LastUser(d.Transcript)

	d.AppendAssistant(reply)
	d.Document.Append(p, protocol.RoleUser, userText)
	d.Document.Append(p, protocol.RoleAssistant, reply)
	if isNew {
		d.MarkAsked(p)
	}

	return reply
}

// runSummary renders the accumulated document in phase order and asks the
// model for the final synthesis. On failure the raw rendered document is
// returned behind an error notice instead.
func (e *Engine) runSummary(ctx context.Context, d *discussion.Discussion) string {
	e.emit(ctx, EventSummaryRun, observability.LevelInfo, map[string]any{
		"discussion_id": d.ID,
	})

	rendered := d.Document.RenderAll(phase.Phases())

	reply, err := e.generator.Generate(ctx, []protocol.Message{
		protocol.NewMessage(protocol.RoleUser, phase.SummaryInstruction+rendered),
	})
	if err != nil {
		e.emit(ctx, EventGenerateFallback, observability.LevelWarning, map[string]any{
			"discussion_id": d.ID,
			"phase":         string(phase.Summarize),
			"error":         err.Error(),
		})
		reply = SummaryFallbackPrefix + rendered
	}

	d.AppendAssistant(reply)
	return reply
}

func snapshot(d *discussion.Discussion, executed phase.Phase, reply string, saved bool) Step {
	step := Step{
		DiscussionID: d.ID,
		Phase:        executed,
		Reply:        reply,
		Transcript:   append([]protocol.Message(nil), d.Transcript...),
		Saved:        saved,
	}
	if phase.Valid(executed) {
		step.Fragment = d.Document.Render(executed)
	}
	return step
}
