package transcriber

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// Transcribe converts audioPath, runs whisper over it and formats the
// resulting cues. Intermediate files are removed; audioPath is left alone.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath string, mode models.TranscriptMode) (string, error) {
	wavPath, err := t.convertAudio(ctx, audioPath)
	if err != nil {
		return "", err
	}
	defer t.cleanupTempFile(ctx, wavPath)

	srtPath, err := t.runWhisper(ctx, wavPath)
	if err != nil {
		return "", err
	}
	defer t.cleanupTempFile(ctx, srtPath)

	content, err := os.ReadFile(srtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	segments, err := ParseSRT(string(content))
	if err != nil {
		return "", fmt.Errorf("parse whisper output: %w", err)
	}

	t.logger.Info(ctx, "Transcription produced %d segment(s)", len(segments))
	return Format(segments, mode), nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (t *implTranscriber) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		t.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		t.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
