package summarizer

import (
	"context"
	"fmt"
	"strings"
)

// userInstruction stays in Chinese so summaries of Chinese transcripts
// come back in Chinese.
const userInstruction = "以最简、高效、科学的方式总结以下内容："

// Summarize sends the prompt as the system instruction and the transcript
// as the user message, returning the first choice.
func (s *implSummarizer) Summarize(ctx context.Context, transcript, prompt string) (string, error) {
	resp, err := s.completions.Complete(ctx, CompletionRequest{
		System: prompt,
		User:   userInstruction + transcript,
	})
	if err != nil {
		return "", fmt.Errorf("completion: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0]) == "" {
		s.logger.Warn(ctx, "Completion returned no usable content")
		return "", nil
	}

	return resp.Choices[0], nil
}
