package subtitle

import (
	"net/http"

	"github.com/nguyentantai21042004/bilisum/internal/cache"
	"github.com/nguyentantai21042004/bilisum/internal/logger"
)

type implResolver struct {
	cache       cache.Cache
	videos      VideoService
	downloader  AudioDownloader
	transcriber TranscriptionService
	httpClient  *http.Client
	logger      logger.Logger
}

// New creates a Resolver. httpClient is used for subtitle documents;
// nil means http.DefaultClient.
func New(c cache.Cache, videos VideoService, downloader AudioDownloader, transcriber TranscriptionService, httpClient *http.Client, log logger.Logger) Resolver {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &implResolver{
		cache:       c,
		videos:      videos,
		downloader:  downloader,
		transcriber: transcriber,
		httpClient:  httpClient,
		logger:      log,
	}
}
