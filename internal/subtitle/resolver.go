package subtitle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/bilisum/internal/cache"
	"github.com/nguyentantai21042004/bilisum/internal/models"
)

// Resolve returns the transcript of page (1-based) of videoID. A cached
// transcript short-circuits every remote call. Otherwise the first official
// subtitle track is used, falling back to speech-to-text. Non-empty results
// are cached. The returned text may be empty.
func (r *implResolver) Resolve(ctx context.Context, videoID string, page int) (string, error) {
	key := cache.Key(videoID, page)

	text, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn(ctx, "Cache read failed for %s: %v", key, err)
	} else if ok {
		r.logger.Info(ctx, "Using cached subtitles for %s P%d", videoID, page)
		return text, nil
	}
	r.logger.Info(ctx, "No cached subtitles for %s P%d", videoID, page)

	cid, err := r.videos.ContentID(ctx, videoID, page-1)
	if err != nil {
		return "", fmt.Errorf("get cid: %w", err)
	}

	text, err = r.official(ctx, videoID, cid)
	if errors.Is(err, ErrNoTrack) {
		r.logger.Info(ctx, "No official subtitles for %s P%d, transcribing audio", videoID, page)
		text, err = r.transcribe(ctx, videoID, cid, page)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(text) != "" {
		if err := r.cache.Put(ctx, key, text); err != nil {
			r.logger.Warn(ctx, "Failed to cache subtitles for %s: %v", key, err)
		}
	}

	return text, nil
}

// official fetches the first listed subtitle track, or ErrNoTrack.
func (r *implResolver) official(ctx context.Context, videoID string, cid int64) (string, error) {
	tracks, err := r.videos.SubtitleTracks(ctx, videoID, cid)
	if err != nil {
		return "", fmt.Errorf("list subtitle tracks: %w", err)
	}
	if len(tracks) == 0 {
		return "", ErrNoTrack
	}

	r.logger.Debug(ctx, "Fetching %s subtitles for %s", tracks[0].Language, videoID)
	return r.fetchDocument(ctx, tracks[0].URL)
}

func (r *implResolver) transcribe(ctx context.Context, videoID string, cid int64, page int) (string, error) {
	audioPath, err := r.downloader.DownloadAudio(ctx, videoID, cid, page)
	if err != nil {
		return "", fmt.Errorf("download audio: %w", err)
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			r.logger.Warn(ctx, "Failed to cleanup audio %s: %v", audioPath, err)
		}
	}()

	text, err := r.transcriber.Transcribe(ctx, audioPath, models.TranscriptPlain)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return text, nil
}
