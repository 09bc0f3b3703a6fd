// Package protocol defines the conversation message types shared between the
// engine, the discussion record, and language-model providers.
package protocol

// Role identifies the speaker of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in a discussion transcript. The ordering of
// messages is semantically meaningful: transcripts are replayed verbatim to
// the language model and to the presentation layer.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NewMessage creates a Message with the given role and content.
//
// Example:
//
//	msg := protocol.NewMessage(protocol.RoleUser, "I want to build a URL shortener")
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// WithSystem prepends a system message to the given transcript. The transcript
// slice is not modified; a new slice is returned. Empty system content returns
// the transcript unchanged.
func WithSystem(system string, transcript []Message) []Message {
	if system == "" {
		return transcript
	}

	messages := make([]Message, 0, len(transcript)+1)
	messages = append(messages, NewMessage(RoleSystem, system))
	messages = append(messages, transcript...)
	return messages
}

// LastUser returns the content of the most recent user message in the
// transcript, or "" if the transcript contains no user message.
func LastUser(transcript []Message) string {
	for i := len(transcript) - 1; i >= 0; i-- {
		if transcript[i].Role == RoleUser {
			return transcript[i].Content
		}
	}
	return ""
}

// FirstUser returns the content of the earliest user message in the
// transcript, or "" if the transcript contains no user message.
func FirstUser(transcript []Message) string {
	for _, msg := range transcript {
		if msg.Role == RoleUser {
			return msg.Content
		}
	}
	return ""
}
