package protocol_test

import (
	"testing"

	"github.com/socraticlabs/copilot/core/protocol"
)

func TestWithSystem(t *testing.T) {
	transcript := []protocol.Message{
		protocol.NewMessage(protocol.RoleUser, "hello"),
		protocol.NewMessage(protocol.RoleAssistant, "hi"),
	}

	messages := protocol.WithSystem("persona", transcript)

	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	if messages[0].Role != protocol.RoleSystem || messages[0].Content != "persona" {
		t.Errorf("first message = %+v, want system persona", messages[0])
	}
	if messages[1].Content != "hello" || messages[2].Content != "hi" {
		t.Errorf("transcript order not preserved: %+v", messages[1:])
	}
}

func TestWithSystem_Empty(t *testing.T) {
	transcript := []protocol.Message{
		protocol.NewMessage(protocol.RoleUser, "hello"),
	}

	messages := protocol.WithSystem("", transcript)

	if len(messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(messages))
	}
}

func TestWithSystem_DoesNotMutate(t *testing.T) {
	transcript := []protocol.Message{
		protocol.NewMessage(protocol.RoleUser, "hello"),
	}

	_ = protocol.WithSystem("persona", transcript)

	if transcript[0].Role != protocol.RoleUser {
		t.Error("WithSystem modified the original transcript")
	}
}

func TestLastUser(t *testing.T) {
	tests := []struct {
		name       string
		transcript []protocol.Message
		want       string
	}{
		{
			name: "single user message",
			transcript: []protocol.Message{
				protocol.NewMessage(protocol.RoleUser, "first"),
			},
			want: "first",
		},
		{
			name: "user after assistant",
			transcript: []protocol.Message{
				protocol.NewMessage(protocol.RoleUser, "first"),
				protocol.NewMessage(protocol.RoleAssistant, "reply"),
				protocol.NewMessage(protocol.RoleUser, "second"),
			},
			want: "second",
		},
		{
			name: "assistant only",
			transcript: []protocol.Message{
				protocol.NewMessage(protocol.RoleAssistant, "reply"),
			},
			want: "",
		},
		{
			name:       "empty transcript",
			transcript: nil,
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := protocol.LastUser(tt.transcript); got != tt.want {
				t.Errorf("LastUser() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFirstUser(t *testing.T) {
	transcript := []protocol.Message{
		protocol.NewMessage(protocol.RoleAssistant, "welcome"),
		protocol.NewMessage(protocol.RoleUser, "first"),
		protocol.NewMessage(protocol.RoleUser, "second"),
	}

	if got := protocol.FirstUser(transcript); got != "first" {
		t.Errorf("FirstUser() = %q, want %q", got, "first")
	}

	if got := protocol.FirstUser(nil); got != "" {
		t.Errorf("FirstUser(nil) = %q, want empty", got)
	}
}
