package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Sanitize keeps letters, digits, spaces, '.', '_' and '-' and trims
// trailing whitespace.
func Sanitize(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r) || r == ' ' || r == '.' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// FileName returns P{n:03d}_{sanitized title}.md.
func FileName(saveNumber int, title string) string {
	return fmt.Sprintf("P%03d_%s.md", saveNumber, Sanitize(title))
}

func (w *implWriter) Path(saveNumber int, title string) string {
	return filepath.Join(w.dir, FileName(saveNumber, title))
}

func (w *implWriter) Exists(saveNumber int, title string) bool {
	_, err := os.Stat(w.Path(saveNumber, title))
	return err == nil
}

// Save writes content to the page's file and returns its path. The file is
// renamed into place once complete, so an interrupted write never leaves a
// checkpoint behind.
func (w *implWriter) Save(saveNumber int, title, content string) (string, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	path := w.Path(saveNumber, title)
	tmp, err := os.CreateTemp(w.dir, ".summary-*.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write summary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close summary: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		w.logger.Warn(context.Background(), "Failed to chmod %s: %v", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("move summary into place: %w", err)
	}

	if w.docx {
		docxPath := strings.TrimSuffix(path, ".md") + ".docx"
		heading := fmt.Sprintf("P%03d %s", saveNumber, title)
		if err := markdownToDocx(heading, content, docxPath); err != nil {
			w.logger.Warn(context.Background(), "Failed to render %s: %v", docxPath, err)
		}
	}

	return path, nil
}
