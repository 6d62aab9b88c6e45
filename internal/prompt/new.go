package prompt

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type implLoader struct {
	dir string
}

// New creates a Loader reading <dir>/<name>.md files.
func New(dir string) Loader {
	return &implLoader{dir: dir}
}

// NewWatcher creates a Watcher for the named prompt, seeded with initial.
// The prompt directory is watched rather than the file itself so that
// editors that save by rename are followed.
func NewWatcher(loader Loader, name, initial string, log logger.Logger) (Watcher, error) {
	path := loader.Path(name)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		loader:  loader,
		name:    name,
		path:    filepath.Clean(path),
		logger:  log,
		watcher: watcher,
		current: initial,
	}, nil
}
