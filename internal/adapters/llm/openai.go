package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/equilibriumhq/equilibrium-bot/internal/domain"
)

const tipPromptTemplate = "User reported mood %d/5. Give one short, actionable tip."

// OpenAIClient implements domain.TipClient with a single chat completion per
// logged mood.
type OpenAIClient struct {
	client openai.Client
	model  string
}

// NewOpenAIClient creates a tip client. Retries are disabled: a failed tip
// request degrades to "no tip", it is never worth retrying.
func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if model == "" {
		model = string(openai.ChatModelGPT3_5Turbo)
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	)
	return &OpenAIClient{client: client, model: model}, nil
}

// TipFor implements domain.TipClient.
func (c *OpenAIClient) TipFor(ctx context.Context, mood int) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(tipPromptTemplate, mood)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("tip completion: %w: %w", domain.ErrExternalService, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("tip completion: %w: no choices returned", domain.ErrExternalService)
	}
	tip := strings.TrimSpace(resp.Choices[0].Message.Content)
	if tip == "" {
		return "", fmt.Errorf("tip completion: %w: empty text", domain.ErrExternalService)
	}
	return tip, nil
}
