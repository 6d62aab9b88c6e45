package transcriber

import (
	"io"

	"github.com/nguyentantai21042004/bilisum/internal/config"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
	"github.com/nguyentantai21042004/bilisum/pkg/executor"
)

type implTranscriber struct {
	ffmpeg   config.FFmpegConfig
	whisper  config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
	progress io.Writer
}

// New creates a Transcriber backed by ffmpeg and whisper.cpp.
// Whisper progress is drawn to progress; nil disables the bar.
func New(ffmpeg config.FFmpegConfig, whisper config.WhisperConfig, exec executor.Executor, log logger.Logger, progress io.Writer) Transcriber {
	return &implTranscriber{
		ffmpeg:   ffmpeg,
		whisper:  whisper,
		executor: exec,
		logger:   log,
		progress: progress,
	}
}
