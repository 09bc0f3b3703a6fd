package phase

import "strings"

// Command tokens recognized by the router. Matching is substring containment
// on the lowercased, trimmed command, checked in priority order: next wins
// over back, back over summarize, summarize over end/exit.
const (
	TokenNext      = "[next]"
	TokenBack      = "[back]"
	TokenSummarize = "[summarize]"
	TokenEnd       = "[end]"
	TokenExit      = "[exit]"
)

// Route maps the current phase and the latest raw user command to the phase
// that should run next. It returns one of: the same phase (free-form
// continuation), the adjacent phase clamped at either end of the sequence,
// Summarize, or End.
//
// Route is a pure function; audit emission is the caller's responsibility.
func Route(current Phase, command string) Phase {
	cmd := strings.ToLower(strings.TrimSpace(command))

	switch {
	case strings.Contains(cmd, TokenNext):
		return Next(current)
	case strings.Contains(cmd, TokenBack):
		return Prev(current)
	case strings.Contains(cmd, TokenSummarize):
		return Summarize
	case strings.Contains(cmd, TokenEnd), strings.Contains(cmd, TokenExit):
		return End
	default:
		return current
	}
}
