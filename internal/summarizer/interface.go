package summarizer

import "context"

// Summarizer turns a transcript into a summary following a prompt template.
// An empty summary with a nil error means the model gave no usable answer.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, prompt string) (string, error)
}

// CompletionRequest is one system-plus-user chat completion.
type CompletionRequest struct {
	System string
	User   string
}

// Completion holds the text of each returned choice.
type Completion struct {
	Choices []string
}

// CompletionService is a chat completion backend.
// A nil Completion with a nil error means the response had no usable shape.
type CompletionService interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
