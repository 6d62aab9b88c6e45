package batch

import (
	"context"

	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// Runner walks a video or a season and processes every page that has no
// output yet.
type Runner interface {
	RunVideo(ctx context.Context, videoID string, startPage, endPage int) (Stats, error)
	RunSeason(ctx context.Context, seasonID int64) (Stats, error)
}

// Stats summarizes one run.
type Stats struct {
	Enumerated int
	Skipped    int
	Processed  int
}

// VideoService lists the pages of a video.
type VideoService interface {
	Pages(ctx context.Context, videoID string) ([]models.Page, error)
}

// SeriesService lists the videos of a season in series order.
type SeriesService interface {
	Videos(ctx context.Context, seasonID int64) ([]string, error)
}

// PageProcessor handles one page.
type PageProcessor interface {
	Process(ctx context.Context, page models.Page, prompt string, saveNumber int) error
}

// Checkpoint reports whether a page's output already exists.
type Checkpoint interface {
	Exists(saveNumber int, title string) bool
}

// PromptSource supplies the prompt for the next page.
type PromptSource interface {
	Prompt() string
}
