package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/bilisum/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

type openAIService struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

func newOpenAI(key string, cfg config.LLMConfig) *openAIService {
	return &openAIService{
		client:      openai.NewClient(key),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}
}

func (o *openAIService) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: o.temperature,
		MaxTokens:   o.maxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && (apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= 500) {
			return nil, &rateLimitError{err: err}
		}
		return nil, fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, nil
	}

	choices := make([]string, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		choices = append(choices, c.Message.Content)
	}
	return &Completion{Choices: choices}, nil
}
