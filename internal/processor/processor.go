package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// Process resolves, summarizes and saves one page, retrying transient
// failures with a linear backoff. Any other failure gives up on the page
// at once. It returns an error only when ctx is cancelled.
func (p *implProcessor) Process(ctx context.Context, page models.Page, prompt string, saveNumber int) error {
	startTime := time.Now()
	run := newPageRun()

	p.logger.Info(ctx, "Processing %s P%d (%s) as P%03d", page.VideoID, page.Number, page.Title, saveNumber)

	for attempt := 1; ; attempt++ {
		p.advance(ctx, page, run, StateResolving)

		err := p.attempt(ctx, page, run, prompt, saveNumber)
		if err == nil {
			p.logger.Debug(ctx, "%s P%d finished as %s in %s", page.VideoID, page.Number, run.state, time.Since(startTime))
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			p.advance(ctx, page, run, StateFailed)
			return ctxErr
		}

		if !IsTransient(err) {
			p.logger.Error(ctx, "Error processing %s P%d: %+v", page.VideoID, page.Number, err)
			p.advance(ctx, page, run, StateFailed)
			return nil
		}

		p.logger.Warn(ctx, "Attempt %d/%d for %s P%d failed: %v", attempt, p.opts.MaxAttempts, page.VideoID, page.Number, err)
		if attempt >= p.opts.MaxAttempts {
			p.logger.Error(ctx, "%s P%d failed after %d retries. Skipping.", page.VideoID, page.Number, p.opts.MaxAttempts)
			p.advance(ctx, page, run, StateFailed)
			return nil
		}

		p.advance(ctx, page, run, StateRetry)
		delay := p.opts.BackoffBase * time.Duration(attempt)
		p.logger.Info(ctx, "Retrying in %s...", delay)
		if err := p.sleep(ctx, delay); err != nil {
			p.advance(ctx, page, run, StateFailed)
			return err
		}
	}
}

// attempt runs the pipeline once. A nil return means the page reached a
// terminal state; a non-nil error leaves the retry decision to the caller.
func (p *implProcessor) attempt(ctx context.Context, page models.Page, run *pageRun, prompt string, saveNumber int) error {
	transcript, err := p.resolver.Resolve(ctx, page.VideoID, page.Number)
	if err != nil {
		return fmt.Errorf("resolve transcript: %w", err)
	}
	if strings.TrimSpace(transcript) == "" {
		p.logger.Warn(ctx, "Empty transcript for %s P%d, skipping summarization", page.VideoID, page.Number)
		p.advance(ctx, page, run, StateSkipped)
		return nil
	}

	p.advance(ctx, page, run, StateSummarizing)
	summary, err := p.summarizer.Summarize(ctx, transcript, prompt)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	if summary == "" {
		p.logger.Error(ctx, "No summary returned for %s P%d", page.VideoID, page.Number)
		p.advance(ctx, page, run, StateFailed)
		return nil
	}

	p.advance(ctx, page, run, StateWriting)
	path, err := p.writer.Save(saveNumber, page.Title, summary)
	if err != nil {
		return fmt.Errorf("save summary: %w", err)
	}

	p.advance(ctx, page, run, StateDone)
	p.logger.Info(ctx, "Saved: %s", path)
	return nil
}

func (p *implProcessor) advance(ctx context.Context, page models.Page, run *pageRun, to State) {
	from := run.state
	if err := run.transition(to); err != nil {
		p.logger.Error(ctx, "%s P%d: %v", page.VideoID, page.Number, err)
		return
	}
	p.logger.Debug(ctx, "%s P%d: %s -> %s", page.VideoID, page.Number, from, to)
}
