package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// Transcriber turns an audio file into transcript text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string, mode models.TranscriptMode) (string, error)
}
