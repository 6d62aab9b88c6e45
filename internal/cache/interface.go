package cache

import (
	"context"
	"time"
)

// Cache stores transcripts on disk keyed by video id and page number.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, text string) error
	EvictOlderThan(ctx context.Context, maxAge time.Duration) (int, error)
}
