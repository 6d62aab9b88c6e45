package batch

import (
	"cmp"
	"context"
	"iter"
	"slices"

	"github.com/nguyentantai21042004/bilisum/internal/logger"
	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// VideoItems returns the pages with start <= number <= end in ascending
// order, numbered by their own page number. An end of 0 means no upper bound.
func VideoItems(pages []models.Page, start, end int) []models.WorkItem {
	var items []models.WorkItem
	for _, p := range pages {
		if p.Number < start || (end > 0 && p.Number > end) {
			continue
		}
		items = append(items, models.WorkItem{SaveNumber: p.Number, Page: p})
	}

	slices.SortStableFunc(items, func(a, b models.WorkItem) int {
		return cmp.Compare(a.Page.Number, b.Page.Number)
	})
	return items
}

// SeasonItems yields every page of every video in order, numbered by a
// single counter starting at 1. Videos whose pages cannot be listed are
// logged and skipped without consuming numbers.
func SeasonItems(ctx context.Context, videos VideoService, videoIDs []string, log logger.Logger) iter.Seq[models.WorkItem] {
	return func(yield func(models.WorkItem) bool) {
		counter := 1
		for _, id := range videoIDs {
			if ctx.Err() != nil {
				return
			}

			pages, err := videos.Pages(ctx, id)
			if err != nil {
				log.Error(ctx, "Failed to retrieve pages for %s. Skipping video. Error: %v", id, err)
				continue
			}

			for _, p := range pages {
				if !yield(models.WorkItem{SaveNumber: counter, Page: p}) {
					return
				}
				counter++
			}
		}
	}
}

// AlreadyDone reports whether item's output file exists.
func AlreadyDone(cp Checkpoint, item models.WorkItem) bool {
	return cp.Exists(item.SaveNumber, item.Page.Title)
}
