package batch

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/nguyentantai21042004/bilisum/internal/models"
	"github.com/nguyentantai21042004/bilisum/pkg/progress"
)

// RunVideo processes the selected pages of one video. A failure to list the
// pages is logged and ends the run without error.
func (r *implRunner) RunVideo(ctx context.Context, videoID string, startPage, endPage int) (Stats, error) {
	pages, err := r.videos.Pages(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			return Stats{}, ctx.Err()
		}
		r.logger.Error(ctx, "Failed to retrieve video pages for %s. Check BVID and credentials. Error: %v", videoID, err)
		return Stats{}, nil
	}
	r.logger.Info(ctx, "Found %d pages for BVID %s.", len(pages), videoID)

	items := VideoItems(pages, startPage, endPage)
	return r.run(ctx, slices.Values(items), len(items), fmt.Sprintf("Processing Pages for %s", videoID))
}

// RunSeason processes every page of every video in a season. Output numbers
// depend on the order the platform lists videos and pages in, so resuming is
// only correct while that order is stable.
func (r *implRunner) RunSeason(ctx context.Context, seasonID int64) (Stats, error) {
	videoIDs, err := r.series.Videos(ctx, seasonID)
	if err != nil {
		return Stats{}, fmt.Errorf("list season %d: %w", seasonID, err)
	}
	r.logger.Info(ctx, "Found %d videos in season %d.", len(videoIDs), seasonID)

	items := SeasonItems(ctx, r.videos, videoIDs, r.logger)
	return r.run(ctx, items, -1, fmt.Sprintf("Processing Season %d", seasonID))
}

func (r *implRunner) run(ctx context.Context, items iter.Seq[models.WorkItem], total int, description string) (Stats, error) {
	var stats Stats
	bar := progress.New(total, description, r.progress)
	defer bar.Finish()

	for item := range items {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Enumerated++

		if AlreadyDone(r.checkpoint, item) {
			r.logger.Info(ctx, "Skipping P%d '%s' as it already exists.", item.SaveNumber, item.Page.Title)
			stats.Skipped++
			_ = bar.Add(1)
			continue
		}

		if err := r.processor.Process(ctx, item.Page, r.prompt.Prompt(), item.SaveNumber); err != nil {
			return stats, err
		}
		stats.Processed++
		_ = bar.Add(1)
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}
	r.logger.Info(ctx, "Run complete: %d page(s), %d skipped, %d processed", stats.Enumerated, stats.Skipped, stats.Processed)
	return stats, nil
}
