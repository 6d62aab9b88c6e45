package prompt

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type static string

// Static returns a Source that always hands out text.
func Static(text string) Source {
	return static(text)
}

func (s static) Prompt() string {
	return string(s)
}

func (l *implLoader) Path(name string) string {
	return filepath.Join(l.dir, name+".md")
}

// Load reads the prompt template. A missing file yields ErrNotFound.
func (l *implLoader) Load(ctx context.Context, name string) (string, error) {
	path := l.Path(name)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("read prompt %s: %w", path, err)
	}

	return string(data), nil
}
