package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sirupsen/logrus"
)

// AnthropicClient calls the Claude Messages API. The API key is read from the
// ANTHROPIC_API_KEY environment variable by the SDK.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	log       *logrus.Logger
}

// NewAnthropicClient initializes a Claude-backed client.
func NewAnthropicClient(model string, maxTokens int64, log *logrus.Logger) *AnthropicClient {
	return &AnthropicClient{
		client:    anthropic.NewClient(),
		model:     model,
		maxTokens: maxTokens,
		log:       log,
	}
}

// Generate sends a single-turn prompt and returns the concatenated text blocks.
func (c *AnthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()
	if text == "" {
		return "", fmt.Errorf("llm returned no text content")
	}

	c.log.Debugf("LLM response: %d chars for %d char prompt", len(text), len(prompt))
	return text, nil
}
