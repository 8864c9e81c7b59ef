package ai

import (
	"context"
	"fmt"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// AnthropicCompleter is the production Completer. The client reads
// ANTHROPIC_API_KEY from the environment.
type AnthropicCompleter struct {
	client anthropic.Client
	model  anthropic.Model
}

func NewAnthropicCompleter(model string) *AnthropicCompleter {
	return &AnthropicCompleter{
		client: anthropic.NewClient(),
		model:  anthropic.Model(model),
	}
}

func (c *AnthropicCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}
	return msg.Content[0].Text, nil
}
