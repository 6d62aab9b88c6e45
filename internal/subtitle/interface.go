package subtitle

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// ErrNoTrack is returned when a page has no official subtitle track.
var ErrNoTrack = errors.New("no subtitle track")

// Resolver produces the plain transcript for one page.
type Resolver interface {
	Resolve(ctx context.Context, videoID string, page int) (string, error)
}

// VideoService is the part of the platform API the resolver needs.
type VideoService interface {
	ContentID(ctx context.Context, videoID string, pageIndex int) (int64, error)
	SubtitleTracks(ctx context.Context, videoID string, cid int64) ([]models.SubtitleTrack, error)
}

// AudioDownloader fetches the audio of one page to a local file.
type AudioDownloader interface {
	DownloadAudio(ctx context.Context, videoID string, cid int64, page int) (string, error)
}

// TranscriptionService turns a local audio file into text.
type TranscriptionService interface {
	Transcribe(ctx context.Context, audioPath string, mode models.TranscriptMode) (string, error)
}
