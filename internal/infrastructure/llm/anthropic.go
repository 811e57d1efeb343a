package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient submits classification prompts to the Anthropic Messages
// API. It satisfies the triage service's model interface.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

func NewAnthropicClient(apiKey, model string, maxTokens int64, timeout time.Duration) *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
	)

	return &AnthropicClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Complete sends one system+user exchange and returns the concatenated text
// reply.
func (c *AnthropicClient) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var textParts []string

	for i := range resp.Content {
		if resp.Content[i].Type == "text" {
			textParts = append(textParts, resp.Content[i].Text)
		}
	}

	return strings.Join(textParts, ""), nil
}
