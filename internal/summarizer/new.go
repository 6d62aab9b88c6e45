package summarizer

import (
	"fmt"
	"os"

	"github.com/nguyentantai21042004/bilisum/internal/config"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type implSummarizer struct {
	completions CompletionService
	logger      logger.Logger
}

// New creates a Summarizer on top of a completion backend.
func New(completions CompletionService, log logger.Logger) Summarizer {
	return &implSummarizer{
		completions: completions,
		logger:      log,
	}
}

// NewCompletionService builds the backend selected by cfg.Provider, reading
// API keys from the environment variables listed in cfg.APIKeyEnv.
func NewCompletionService(cfg config.LLMConfig, log logger.Logger) (CompletionService, error) {
	keys := apiKeys(cfg.APIKeyEnv)
	if len(keys) == 0 {
		return nil, fmt.Errorf("no API key found in %v", cfg.APIKeyEnv)
	}

	switch cfg.Provider {
	case "gemini":
		return newGemini(keys, cfg, log), nil
	case "openai":
		return newOpenAI(keys[0], cfg), nil
	case "anthropic":
		return newAnthropic(keys[0], cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func apiKeys(envNames []string) []string {
	var keys []string
	for _, name := range envNames {
		if v := os.Getenv(name); v != "" {
			keys = append(keys, v)
		}
	}
	return keys
}
