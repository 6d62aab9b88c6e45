package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

// Options tunes the retry policy.
type Options struct {
	MaxAttempts int
	BackoffBase time.Duration
}

type implProcessor struct {
	resolver   Resolver
	summarizer Summarizer
	writer     Writer
	opts       Options
	logger     logger.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// New creates a new Processor instance
func New(resolver Resolver, summarizer Summarizer, writer Writer, opts Options, log logger.Logger) Processor {
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 3
	}
	if opts.BackoffBase <= 0 {
		opts.BackoffBase = 5 * time.Second
	}

	return &implProcessor{
		resolver:   resolver,
		summarizer: summarizer,
		writer:     writer,
		opts:       opts,
		logger:     log,
		sleep:      sleepContext,
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
