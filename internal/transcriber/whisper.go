package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/bilisum/pkg/progress"
)

var reProgress = regexp.MustCompile(`progress\s*=\s*(\d+)%`)

// ModelPath returns the ggml model file for the configured size.
func (t *implTranscriber) ModelPath() string {
	return filepath.Join(t.whisper.ModelDir, "ggml-"+t.whisper.ModelSize+".bin")
}

// runWhisper transcribes a WAV file and returns the path of the SRT output.
func (t *implTranscriber) runWhisper(ctx context.Context, wavPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	// -osrt: SRT output next to the prefix
	// -pp: print progress so the bar can follow along
	args := []string{
		"-m", t.ModelPath(),
		"-f", wavPath,
		"-osrt",
		"-t", strconv.Itoa(t.whisper.Threads),
		"-pp",
		"--output-file", outputPrefix,
	}
	// whisper.cpp falls back to English without -l, so "auto" must be passed explicitly.
	lang := t.whisper.Language
	if lang == "" {
		lang = "auto"
	}
	args = append(args, "-l", lang)
	if t.whisper.Device == "cpu" {
		args = append(args, "--no-gpu")
	}

	t.logger.Info(ctx, "Transcribing with whisper (%s, %s, %d threads): %s",
		t.whisper.ModelSize, t.whisper.Device, t.whisper.Threads, filepath.Base(wavPath))

	bar := progress.New(100, "Transcribing", t.progress)
	onLine := func(line string) {
		if m := reProgress.FindStringSubmatch(line); m != nil {
			if pct, err := strconv.Atoi(m[1]); err == nil {
				_ = bar.Set(pct)
			}
		}
	}

	if _, err := t.executor.ExecuteStream(ctx, onLine, t.whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}
	_ = bar.Finish()

	return outputPrefix + ".srt", nil
}
