package transcriber

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// convertAudio converts the downloaded stream to 16kHz mono WAV, the input
// format whisper.cpp expects.
func (t *implTranscriber) convertAudio(ctx context.Context, audioPath string) (string, error) {
	wavPath := strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + "_16k.wav"

	t.logger.Debug(ctx, "Converting audio: %s -> %s", audioPath, wavPath)

	args := []string{
		"-i", audioPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := t.executor.Execute(ctx, t.ffmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert audio: %w", err)
	}

	return wavPath, nil
}
