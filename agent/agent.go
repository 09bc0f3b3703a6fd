// Package agent abstracts the language-model collaborator. The engine only
// sees the Generator interface; the default implementation talks to the
// Gemini API.
package agent

import (
	"context"

	"github.com/socraticlabs/copilot/core/protocol"
)

// Generator produces an assistant reply for an ordered message sequence. The
// call is synchronous and may fail; callers own fallback behavior. The
// collaborator implements no retry or backoff of its own, and a slow call
// blocks until ctx is done.
type Generator interface {
	Generate(ctx context.Context, messages []protocol.Message) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, messages []protocol.Message) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, messages []protocol.Message) (string, error) {
	return f(ctx, messages)
}
