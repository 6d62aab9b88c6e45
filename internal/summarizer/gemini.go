package summarizer

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/bilisum/internal/config"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
	"google.golang.org/genai"
)

type geminiService struct {
	mu          sync.Mutex
	apiKeys     []string
	currentKey  int
	model       string
	temperature float32
	maxTokens   int32
	logger      logger.Logger
}

func newGemini(keys []string, cfg config.LLMConfig, log logger.Logger) *geminiService {
	return &geminiService{
		apiKeys:     keys,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   int32(cfg.MaxTokens),
		logger:      log,
	}
}

// Complete calls Gemini, rotating API keys on 429 / quota errors.
// When every key is rate limited the error is reported as transient.
func (g *geminiService) Complete(ctx context.Context, req CompletionRequest) (*Completion, error) {
	var lastErr error

	for range len(g.apiKeys) {
		key, idx := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}

		result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.User), &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: req.System}}},
			Temperature:       genai.Ptr(g.temperature),
			MaxOutputTokens:   g.maxTokens,
		})
		if err != nil {
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey()
				lastErr = err
				continue
			}
			return nil, fmt.Errorf("generate content: %w", err)
		}

		if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
			return nil, nil
		}

		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		return &Completion{Choices: []string{text.String()}}, nil
	}

	return nil, &rateLimitError{err: fmt.Errorf("all API keys exhausted: %w", lastErr)}
}

func (g *geminiService) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

func (g *geminiService) rotateKey() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// rateLimitError wraps a provider error that should be retried later.
type rateLimitError struct {
	err error
}

func (e *rateLimitError) Error() string   { return e.err.Error() }
func (e *rateLimitError) Unwrap() error   { return e.err }
func (e *rateLimitError) Transient() bool { return true }
