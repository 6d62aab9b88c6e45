package prompt

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type implWatcher struct {
	loader  Loader
	name    string
	path    string
	logger  logger.Logger
	watcher *fsnotify.Watcher

	mu      sync.RWMutex
	current string
}

// Prompt returns the most recently loaded prompt text.
func (w *implWatcher) Prompt() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Start follows the prompt file until ctx is cancelled.
// A reload that fails or yields an empty file keeps the previous prompt.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watching prompt file for changes: %s", w.path)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("watcher events channel closed")
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.reload(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Prompt watcher error: %v", err)
		}
	}
}

func (w *implWatcher) reload(ctx context.Context) {
	text, err := w.loader.Load(ctx, w.name)
	if err != nil {
		w.logger.Warn(ctx, "Failed to reload prompt %s, keeping previous version: %v", w.name, err)
		return
	}
	if strings.TrimSpace(text) == "" {
		w.logger.Warn(ctx, "Prompt %s is empty, keeping previous version", w.name)
		return
	}

	w.mu.Lock()
	changed := w.current != text
	w.current = text
	w.mu.Unlock()

	if changed {
		w.logger.Info(ctx, "Prompt %s reloaded", w.name)
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}
