package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/nguyentantai21042004/bilisum/internal/config"
)

type anthropicService struct {
	client      *anthropic.Client
	model       string
	temperature float64
	maxTokens   int64
}

func newAnthropic(key string, cfg config.LLMConfig) *anthropicService {
	return &anthropicService{
		client:      anthropic.NewClient(option.WithAPIKey(key)),
		model:       cfg.Model,
		temperature: float64(cfg.Temperature),
		maxTokens:   int64(cfg.MaxTokens),
	}
}

func (a *anthropicService) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	msg := anthropic.MessageNewParams{
		Model:       anthropic.F(anthropic.Model(a.model)),
		MaxTokens:   anthropic.Int(a.maxTokens),
		Temperature: anthropic.Float(a.temperature),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(req.System),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.User)),
		}),
	}

	resp, err := a.client.Messages.New(ctx, msg)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500) {
			return nil, &rateLimitError{err: err}
		}
		return nil, fmt.Errorf("create message: %w", err)
	}

	if resp == nil || len(resp.Content) == 0 {
		return nil, nil
	}

	var choices []string
	for _, block := range resp.Content {
		if block.Text != "" {
			choices = append(choices, block.Text)
		}
	}
	if len(choices) == 0 {
		return nil, nil
	}
	return &Completion{Choices: choices}, nil
}
