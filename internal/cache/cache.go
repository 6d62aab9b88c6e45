package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const fileExt = ".txt"

// Key builds the cache key for one page of a video.
func Key(videoID string, page int) string {
	return fmt.Sprintf("%s_%d", videoID, page)
}

func (c *implCache) path(key string) string {
	return filepath.Join(c.dir, key+fileExt)
}

// Get returns the cached transcript for key. Existence implies validity.
func (c *implCache) Get(ctx context.Context, key string) (string, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read cache entry %s: %w", key, err)
	}
	return string(data), true, nil
}

// Put writes text under key. The entry is written to a temp file and renamed
// into place so readers never observe a partial entry.
func (c *implCache) Put(ctx context.Context, key, text string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(c.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write cache entry %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close cache entry %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, c.path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("commit cache entry %s: %w", key, err)
	}

	return nil
}

// EvictOlderThan removes entries whose modification time is older than maxAge.
// Per-file failures are logged and skipped.
func (c *implCache) EvictOlderThan(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cache dir: %w", err)
	}

	c.logger.Info(ctx, "Cleaning up cache in '%s' older than %s...", c.dir, maxAge)
	cutoff := c.now().Add(-maxAge)

	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}

		filePath := filepath.Join(c.dir, e.Name())
		info, err := e.Info()
		if err != nil {
			c.logger.Error(ctx, "Error reading cache file %s: %v", filePath, err)
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}

		if err := c.remove(filePath); err != nil {
			c.logger.Error(ctx, "Error removing cache file %s: %v", filePath, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		c.logger.Info(ctx, "Removed %d outdated cache file(s).", removed)
	} else {
		c.logger.Info(ctx, "No outdated cache files to remove.")
	}

	return removed, nil
}
