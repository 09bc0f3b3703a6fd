package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/socraticlabs/copilot/core/protocol"
)

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini generator from configuration.
func NewGemini(ctx context.Context, cfg *Config) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{
		client:      client,
		model:       model,
		temperature: float32(temperature),
	}, nil
}

// Generate sends the message sequence to the model and returns the reply
// text. A leading system message becomes the system instruction; the rest of
// the transcript maps user messages to the user role and assistant messages
// to the model role.
func (g *Gemini) Generate(ctx context.Context, messages []protocol.Message) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}

	if len(messages) > 0 && messages[0].Role == protocol.RoleSystem {
		config.SystemInstruction = genai.NewContentFromText(messages[0].Content, genai.RoleUser)
		messages = messages[1:]
	}

	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		role := genai.Role(genai.RoleUser)
		if msg.Role == protocol.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
