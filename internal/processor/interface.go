package processor

import (
	"context"

	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// Processor runs the resolve, summarize and write pipeline for one page.
// Page-level failures are logged and absorbed; the only error returned is
// the context's when the run is cancelled.
type Processor interface {
	Process(ctx context.Context, page models.Page, prompt string, saveNumber int) error
}

// Resolver yields the transcript of a page.
type Resolver interface {
	Resolve(ctx context.Context, videoID string, page int) (string, error)
}

// Summarizer yields a summary, or "" when the model gave nothing usable.
type Summarizer interface {
	Summarize(ctx context.Context, transcript, prompt string) (string, error)
}

// Writer persists a finished summary.
type Writer interface {
	Save(saveNumber int, title, content string) (string, error)
}
