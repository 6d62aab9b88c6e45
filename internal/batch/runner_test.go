package batch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/nguyentantai21042004/bilisum/internal/logger"
	"github.com/nguyentantai21042004/bilisum/internal/models"
	"github.com/nguyentantai21042004/bilisum/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideos struct {
	pages map[string][]models.Page
	fail  map[string]bool
}

func (f *fakeVideos) Pages(ctx context.Context, videoID string) ([]models.Page, error) {
	if f.fail[videoID] {
		return nil, errors.New("video unavailable")
	}
	return f.pages[videoID], nil
}

type fakeSeries struct {
	ids []string
	err error
}

func (f *fakeSeries) Videos(ctx context.Context, seasonID int64) ([]string, error) {
	return f.ids, f.err
}

type call struct {
	Page       models.Page
	Prompt     string
	SaveNumber int
}

// fakeProcessor saves through a real output writer so checkpoints exist
// on the next run.
type fakeProcessor struct {
	writer output.Writer
	calls  []call
	cancel context.CancelFunc
}

func (f *fakeProcessor) Process(ctx context.Context, page models.Page, prompt string, saveNumber int) error {
	f.calls = append(f.calls, call{Page: page, Prompt: prompt, SaveNumber: saveNumber})
	if f.cancel != nil {
		f.cancel()
		return ctx.Err()
	}
	_, err := f.writer.Save(saveNumber, page.Title, "summary")
	return err
}

type staticPrompt string

func (s staticPrompt) Prompt() string { return string(s) }

func pagesOf(videoID string, n int) []models.Page {
	pages := make([]models.Page, n)
	for i := range pages {
		pages[i] = models.Page{VideoID: videoID, Number: i + 1, Title: fmt.Sprintf("%s part %d", videoID, i+1)}
	}
	return pages
}

func newRunner(t *testing.T, videos *fakeVideos, series *fakeSeries) (Runner, *fakeProcessor, output.Writer) {
	w := output.New(t.TempDir(), false, logger.NewNop())
	proc := &fakeProcessor{writer: w}
	return New(videos, series, proc, w, staticPrompt("prompt"), logger.NewNop(), nil), proc, w
}

func saveNumbers(calls []call) []int {
	var n []int
	for _, c := range calls {
		n = append(n, c.SaveNumber)
	}
	return n
}

func TestRunVideoRange(t *testing.T) {
	videos := &fakeVideos{pages: map[string][]models.Page{"BV1": pagesOf("BV1", 5)}}
	r, proc, _ := newRunner(t, videos, nil)

	stats, err := r.RunVideo(context.Background(), "BV1", 2, 4)
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 4}, saveNumbers(proc.calls))
	assert.Equal(t, Stats{Enumerated: 3, Processed: 3}, stats)
	assert.Equal(t, "prompt", proc.calls[0].Prompt)
}

func TestRunVideoOpenEnd(t *testing.T) {
	videos := &fakeVideos{pages: map[string][]models.Page{"BV1": pagesOf("BV1", 4)}}
	r, proc, _ := newRunner(t, videos, nil)

	_, err := r.RunVideo(context.Background(), "BV1", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, saveNumbers(proc.calls))
}

func TestRunVideoIsIdempotent(t *testing.T) {
	videos := &fakeVideos{pages: map[string][]models.Page{"BV1": pagesOf("BV1", 3)}}
	r, proc, _ := newRunner(t, videos, nil)
	ctx := context.Background()

	_, err := r.RunVideo(ctx, "BV1", 1, 0)
	require.NoError(t, err)
	require.Len(t, proc.calls, 3)

	stats, err := r.RunVideo(ctx, "BV1", 1, 0)
	require.NoError(t, err)
	assert.Len(t, proc.calls, 3, "second run must not process any page")
	assert.Equal(t, Stats{Enumerated: 3, Skipped: 3}, stats)
}

func TestRunVideoPageListFailure(t *testing.T) {
	videos := &fakeVideos{fail: map[string]bool{"BVbad": true}}
	r, proc, _ := newRunner(t, videos, nil)

	stats, err := r.RunVideo(context.Background(), "BVbad", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, proc.calls)
	assert.Zero(t, stats.Enumerated)
}

func TestRunSeasonGlobalCounter(t *testing.T) {
	videos := &fakeVideos{pages: map[string][]models.Page{
		"BVa": pagesOf("BVa", 2),
		"BVb": pagesOf("BVb", 3),
	}}
	r, proc, _ := newRunner(t, videos, &fakeSeries{ids: []string{"BVa", "BVb"}})

	_, err := r.RunSeason(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, saveNumbers(proc.calls))
	assert.Equal(t, "BVb", proc.calls[2].Page.VideoID)
	assert.Equal(t, 1, proc.calls[2].Page.Number)
}

func TestRunSeasonSkipsFailedVideoWithoutConsumingNumbers(t *testing.T) {
	videos := &fakeVideos{
		pages: map[string][]models.Page{"BVa": pagesOf("BVa", 2), "BVc": pagesOf("BVc", 1)},
		fail:  map[string]bool{"BVb": true},
	}
	r, proc, _ := newRunner(t, videos, &fakeSeries{ids: []string{"BVa", "BVb", "BVc"}})

	_, err := r.RunSeason(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, saveNumbers(proc.calls))
}

func TestRunSeasonCounterAdvancesOverCheckpoints(t *testing.T) {
	videos := &fakeVideos{pages: map[string][]models.Page{
		"BVa": pagesOf("BVa", 2),
		"BVb": pagesOf("BVb", 2),
	}}
	r, proc, w := newRunner(t, videos, &fakeSeries{ids: []string{"BVa", "BVb"}})

	// pretend the first and third pages were done by an earlier run
	_, err := w.Save(1, "BVa part 1", "done")
	require.NoError(t, err)
	_, err = w.Save(3, "BVb part 1", "done")
	require.NoError(t, err)

	stats, err := r.RunSeason(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 4}, saveNumbers(proc.calls))
	assert.Equal(t, Stats{Enumerated: 4, Skipped: 2, Processed: 2}, stats)
}

func TestRunSeasonListFailure(t *testing.T) {
	r, _, _ := newRunner(t, &fakeVideos{}, &fakeSeries{err: errors.New("forbidden")})

	_, err := r.RunSeason(context.Background(), 42)
	assert.Error(t, err)
}

func TestRunStopsOnCancel(t *testing.T) {
	videos := &fakeVideos{pages: map[string][]models.Page{"BV1": pagesOf("BV1", 3)}}
	r, proc, _ := newRunner(t, videos, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	proc.cancel = cancel

	_, err := r.RunVideo(ctx, "BV1", 1, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, proc.calls, 1)
}

func TestVideoItemsSortsByNumber(t *testing.T) {
	pages := []models.Page{{Number: 3}, {Number: 1}, {Number: 2}}
	items := VideoItems(pages, 1, 0)

	var got []int
	for _, it := range items {
		got = append(got, it.SaveNumber)
	}
	assert.True(t, slices.Equal([]int{1, 2, 3}, got), "got %v", got)
}

func TestSeasonItemsStopsEarly(t *testing.T) {
	videos := &fakeVideos{pages: map[string][]models.Page{"BVa": pagesOf("BVa", 5)}}

	var got []int
	for item := range SeasonItems(context.Background(), videos, []string{"BVa"}, logger.NewNop()) {
		got = append(got, item.SaveNumber)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, got)
}
