package executor

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	// maxTailLines bounds the stderr kept for error messages in streaming mode.
	maxTailLines = 20
	// maxLineBytes is the longest stderr line scanLines will split out.
	maxLineBytes = 1024 * 1024
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", commandError(name, err, stderr.String())
	}

	return stdout.String(), nil
}

// ExecuteStream runs an external command, forwarding stderr line by line.
func (e *implExecutor) ExecuteStream(ctx context.Context, onLine func(line string), name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start '%s': %w", name, err)
	}

	tail := scanLines(stderr, onLine)

	if err := cmd.Wait(); err != nil {
		return "", commandError(name, err, strings.Join(tail, "\n"))
	}

	return stdout.String(), nil
}

// scanLines reads r to EOF, calling onLine per line, and returns the last lines.
// Carriage returns are treated as line breaks so in-place progress updates are seen.
// If scanning stops early the rest of r is discarded so the writer never blocks.
func scanLines(r io.Reader, onLine func(line string)) []string {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	scanner.Split(scanCRLF)

	var tail []string
	for scanner.Scan() {
		line := scanner.Text()
		if onLine != nil {
			onLine(line)
		}
		tail = append(tail, line)
		if len(tail) > maxTailLines {
			tail = tail[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		tail = append(tail, fmt.Sprintf("(stderr truncated: %v)", err))
		_, _ = io.Copy(io.Discard, r)
	}
	return tail
}

func scanCRLF(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func commandError(name string, err error, stderr string) error {
	// Include stderr in error message for debugging
	stderrStr := strings.TrimSpace(stderr)
	if stderrStr != "" {
		return fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
	}
	return fmt.Errorf("command '%s' failed: %w", name, err)
}
