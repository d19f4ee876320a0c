package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIInvoker calls the OpenAI API (or any compatible endpoint) through the
// go-openai client.
type OpenAIInvoker struct {
	client *openai.Client
}

func NewOpenAIInvoker(apiKey, baseURL string) *OpenAIInvoker {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIInvoker{client: openai.NewClientWithConfig(cfg)}
}

func (s *OpenAIInvoker) Name() string {
	return "openai"
}

func (s *OpenAIInvoker) Invoke(ctx context.Context, req Request) (*Response, error) {
	req = req.withDefaults()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: float32(req.Temperature),
		TopP:        float32(req.TopP),
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("openai returned status %d: %w", apiErr.HTTPStatusCode, ErrRateLimited)
		}
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from API")
	}

	return &Response{
		Text:         resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}
