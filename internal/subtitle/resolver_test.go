package subtitle

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nguyentantai21042004/bilisum/internal/bilibili"
	"github.com/nguyentantai21042004/bilisum/internal/cache"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
	"github.com/nguyentantai21042004/bilisum/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVideos struct {
	t        *testing.T
	forbid   bool
	cid      int64
	tracks   []models.SubtitleTrack
	cidCalls []int
}

func (f *fakeVideos) ContentID(ctx context.Context, videoID string, pageIndex int) (int64, error) {
	if f.forbid {
		f.t.Fatalf("ContentID called for %s", videoID)
	}
	f.cidCalls = append(f.cidCalls, pageIndex)
	return f.cid, nil
}

func (f *fakeVideos) SubtitleTracks(ctx context.Context, videoID string, cid int64) ([]models.SubtitleTrack, error) {
	if f.forbid {
		f.t.Fatalf("SubtitleTracks called for %s", videoID)
	}
	return f.tracks, nil
}

type fakeDownloader struct {
	t      *testing.T
	forbid bool
	dir    string
	calls  int
}

func (f *fakeDownloader) DownloadAudio(ctx context.Context, videoID string, cid int64, page int) (string, error) {
	if f.forbid {
		f.t.Fatalf("DownloadAudio called for %s", videoID)
	}
	f.calls++
	path := filepath.Join(f.dir, fmt.Sprintf("%s_%d.m4a", videoID, page))
	return path, os.WriteFile(path, []byte("audio"), 0644)
}

type fakeTranscriber struct {
	t      *testing.T
	forbid bool
	text   string
	mode   models.TranscriptMode
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath string, mode models.TranscriptMode) (string, error) {
	if f.forbid {
		f.t.Fatalf("Transcribe called for %s", audioPath)
	}
	f.mode = mode
	return f.text, nil
}

type fixture struct {
	cache       cache.Cache
	videos      *fakeVideos
	downloader  *fakeDownloader
	transcriber *fakeTranscriber
	resolver    Resolver
}

func newFixture(t *testing.T, httpClient *http.Client) *fixture {
	f := &fixture{
		cache:       cache.New(t.TempDir(), logger.NewNop()),
		videos:      &fakeVideos{t: t, cid: 77},
		downloader:  &fakeDownloader{t: t, dir: t.TempDir()},
		transcriber: &fakeTranscriber{t: t},
	}
	f.resolver = New(f.cache, f.videos, f.downloader, f.transcriber, httpClient, logger.NewNop())
	return f
}

func TestResolveCacheHitMakesNoCalls(t *testing.T) {
	f := newFixture(t, nil)
	f.videos.forbid = true
	f.downloader.forbid = true
	f.transcriber.forbid = true

	ctx := context.Background()
	require.NoError(t, f.cache.Put(ctx, cache.Key("BV1", 2), "cached text"))

	got, err := f.resolver.Resolve(ctx, "BV1", 2)
	require.NoError(t, err)
	assert.Equal(t, "cached text", got)
}

func TestResolveOfficialSubtitles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bfs/subtitle/1.json", r.URL.Path)
		fmt.Fprint(w, `{"font_size":0.4,"body":[{"from":0,"to":1,"content":"第一行"},{"from":1,"to":2,"content":"second"}]}`)
	}))
	defer srv.Close()

	f := newFixture(t, srv.Client())
	f.downloader.forbid = true
	f.transcriber.forbid = true
	// protocol-relative URL as returned by the platform
	f.videos.tracks = []models.SubtitleTrack{{Language: "zh-CN", URL: "//" + strings.TrimPrefix(srv.URL, "http://") + "/bfs/subtitle/1.json"}}
	f.resolver.(*implResolver).httpClient = &http.Client{Transport: rewriteScheme{srv.Client().Transport}}

	ctx := context.Background()
	got, err := f.resolver.Resolve(ctx, "BV1", 3)
	require.NoError(t, err)
	assert.Equal(t, "第一行\nsecond", got)
	assert.Equal(t, []int{2}, f.videos.cidCalls)

	cached, ok, err := f.cache.Get(ctx, cache.Key("BV1", 3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, got, cached)
}

func TestResolveFallsBackToTranscription(t *testing.T) {
	f := newFixture(t, nil)
	f.transcriber.text = "spoken words"

	ctx := context.Background()
	got, err := f.resolver.Resolve(ctx, "BV9", 1)
	require.NoError(t, err)
	assert.Equal(t, "spoken words", got)
	assert.Equal(t, models.TranscriptPlain, f.transcriber.mode)
	assert.Equal(t, 1, f.downloader.calls)

	_, statErr := os.Stat(filepath.Join(f.downloader.dir, "BV9_1.m4a"))
	assert.True(t, os.IsNotExist(statErr), "downloaded audio should be removed")

	_, ok, err := f.cache.Get(ctx, cache.Key("BV9", 1))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResolveEmptyTranscriptNotCached(t *testing.T) {
	f := newFixture(t, nil)
	f.transcriber.text = "  \n "

	ctx := context.Background()
	got, err := f.resolver.Resolve(ctx, "BV9", 4)
	require.NoError(t, err)
	assert.Equal(t, "  \n ", got)

	_, ok, err := f.cache.Get(ctx, cache.Key("BV9", 4))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveSubtitleStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	f := newFixture(t, &http.Client{Timeout: 5 * time.Second})
	f.downloader.forbid = true
	f.transcriber.forbid = true
	f.videos.tracks = []models.SubtitleTrack{{Language: "en", URL: srv.URL + "/sub.json"}}

	_, err := f.resolver.Resolve(context.Background(), "BV1", 1)
	var statusErr *bilibili.StatusError
	require.True(t, errors.As(err, &statusErr), "error = %v", err)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestResolveMalformedDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>not json</html>")
	}))
	defer srv.Close()

	f := newFixture(t, srv.Client())
	f.videos.tracks = []models.SubtitleTrack{{Language: "en", URL: srv.URL + "/sub.json"}}

	_, err := f.resolver.Resolve(context.Background(), "BV1", 1)
	require.Error(t, err)

	var statusErr *bilibili.StatusError
	assert.False(t, errors.As(err, &statusErr))
}

// rewriteScheme sends https requests to the plain-http test server.
type rewriteScheme struct {
	next http.RoundTripper
}

func (r rewriteScheme) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = "http"
	return r.next.RoundTrip(clone)
}
