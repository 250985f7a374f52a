package analyzer

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
	"github.com/sashabaranov/go-openai"
)

// llmClient switches between chat providers behind one completion
// call.
type llmClient struct {
	provider  string // anthropic, openai, openrouter
	model     string
	apiKey    string
	baseURL   string
	maxTokens int
}

func (c *llmClient) complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("no API key configured for provider %s", c.provider)
	}
	switch c.provider {
	case "anthropic":
		return c.completeAnthropic(ctx, system, user)
	case "openai", "openrouter":
		return c.completeOpenAI(ctx, system, user)
	default:
		return "", fmt.Errorf("unsupported LLM provider: %s", c.provider)
	}
}

func (c *llmClient) completeAnthropic(ctx context.Context, system, user string) (string, error) {
	client := anthropic.NewClient(c.apiKey)

	resp, err := client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(c.model),
		System:    system,
		MaxTokens: c.maxTokens,
		Messages: []anthropic.Message{
			{
				Role:    anthropic.RoleUser,
				Content: []anthropic.MessageContent{{Type: "text", Text: &user}},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}
	return resp.Content[0].GetText(), nil
}

func (c *llmClient) completeOpenAI(ctx context.Context, system, user string) (string, error) {
	cfg := openai.DefaultConfig(c.apiKey)
	baseURL := c.baseURL
	if c.provider == "openrouter" && baseURL == "" {
		baseURL = "https://openrouter.ai/api/v1"
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from %s", c.provider)
	}
	return resp.Choices[0].Message.Content, nil
}
