package prompt

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the named prompt template does not exist.
var ErrNotFound = errors.New("prompt not found")

// Loader reads named prompt templates.
type Loader interface {
	Load(ctx context.Context, name string) (string, error)
	Path(name string) string
}

// Source hands out the prompt text to use for the next page.
type Source interface {
	Prompt() string
}

// Watcher is a Source that follows edits to the prompt file.
type Watcher interface {
	Source
	Start(ctx context.Context) error
	Stop() error
}
