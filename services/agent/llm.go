package agent

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatClient is the narrow completion surface the agent loop depends on.
// Tests substitute a scripted implementation.
type ChatClient interface {
	Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIChatClient adapts the OpenAI SDK to ChatClient. Construct one at
// process start and inject it; there is no package-level client.
type OpenAIChatClient struct {
	client openai.Client
}

// NewOpenAIChatClient builds a client for the given key. baseURL is optional
// and allows pointing at an OpenAI-compatible endpoint.
func NewOpenAIChatClient(apiKey, baseURL string) *OpenAIChatClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIChatClient{client: openai.NewClient(opts...)}
}

func (c *OpenAIChatClient) Complete(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
