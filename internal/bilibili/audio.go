package bilibili

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/h2non/filetype"
)

// ErrNoAudioStream is returned when the play URL response lists no audio.
var ErrNoAudioStream = errors.New("no audio stream available")

// sniffLen is the header length filetype needs to identify a container.
const sniffLen = 262

// DownloadAudio saves the audio stream of one page to the temp directory
// and returns its path. The caller owns the file.
func (c *Client) DownloadAudio(ctx context.Context, videoID string, cid int64, page int) (string, error) {
	streamURL, err := c.audioURL(ctx, videoID, cid)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(c.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	audioPath := filepath.Join(c.tempDir, fmt.Sprintf("%s_%d.m4a", videoID, page))

	c.logger.Info(ctx, "Downloading audio for %s P%d", videoID, page)
	if err := c.download(ctx, streamURL, audioPath); err != nil {
		os.Remove(audioPath)
		return "", err
	}

	if err := checkMedia(audioPath); err != nil {
		os.Remove(audioPath)
		return "", err
	}

	c.logger.Info(ctx, "Audio downloaded: %s", audioPath)
	return audioPath, nil
}

// audioURL picks the first DASH audio stream, falling back to the
// progressive stream for old videos without DASH.
func (c *Client) audioURL(ctx context.Context, videoID string, cid int64) (string, error) {
	data, err := c.getJSON(ctx, "/x/player/playurl", url.Values{
		"bvid":  {videoID},
		"cid":   {strconv.FormatInt(cid, 10)},
		"fnval": {"16"},
	})
	if err != nil {
		return "", fmt.Errorf("get play url: %w", err)
	}

	for _, path := range []string{"dash.audio.0.baseUrl", "dash.audio.0.base_url", "durl.0.url"} {
		if u := data.Get(path).String(); u != "" {
			return u, nil
		}
	}

	return "", fmt.Errorf("%s cid %d: %w", videoID, cid, ErrNoAudioStream)
}

func (c *Client) download(ctx context.Context, rawURL, dest string) error {
	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return err
	}

	resp, err := c.mediaClient.Do(req)
	if err != nil {
		return fmt.Errorf("download audio: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return fmt.Errorf("write audio file: %w", err)
	}

	return f.Close()
}

// checkMedia rejects downloads that are not an audio or video container,
// typically an HTML or JSON error page served with a 200 status.
func checkMedia(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read audio header: %w", err)
	}
	head = head[:n]

	if filetype.IsAudio(head) || filetype.IsVideo(head) {
		return nil
	}

	kind, _ := filetype.Match(head)
	return fmt.Errorf("downloaded file %s is not media (detected %q)", filepath.Base(path), kind.MIME.Value)
}
