// Package anthropic backs ai.Generator with the Anthropic Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	anth "github.com/liushuangls/go-anthropic/v2"

	"larder/internal/ai"
)

// maxTokens bounds the reply; every prompt in this system expects a short
// JSON array, so 1024 leaves generous headroom for verbose models.
const maxTokens = 1024

type Generator struct {
	client *anth.Client
	model  anth.Model
}

func New(apiKey, model string) *Generator {
	return &Generator{
		client: anth.NewClient(apiKey),
		model:  anth.Model(model),
	}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateMessages(ctx, anth.MessagesRequest{
		Model:     g.model,
		MaxTokens: maxTokens,
		Messages: []anth.Message{
			anth.NewUserTextMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call anthropic: %w", err)
	}

	text := resp.GetFirstContentText()
	if strings.TrimSpace(text) == "" {
		return "", ai.ErrEmptyResponse
	}
	return text, nil
}
