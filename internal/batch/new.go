package batch

import (
	"io"

	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type implRunner struct {
	videos     VideoService
	series     SeriesService
	processor  PageProcessor
	checkpoint Checkpoint
	prompt     PromptSource
	logger     logger.Logger
	progress   io.Writer
}

// New creates a Runner. Progress bars are drawn to progress; nil hides them.
func New(videos VideoService, series SeriesService, processor PageProcessor, checkpoint Checkpoint, prompt PromptSource, log logger.Logger, progress io.Writer) Runner {
	return &implRunner{
		videos:     videos,
		series:     series,
		processor:  processor,
		checkpoint: checkpoint,
		prompt:     prompt,
		logger:     log,
		progress:   progress,
	}
}
