package bilibili

import (
	"net/http"
	"sync"
	"time"

	"github.com/nguyentantai21042004/bilisum/internal/logger"
	"github.com/nguyentantai21042004/bilisum/internal/models"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.bilibili.com"
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	referer        = "https://www.bilibili.com"
)

// Options configures a Client.
type Options struct {
	BaseURL           string
	RequestsPerSecond float64
	Timeout           time.Duration
	TempDir           string
}

// Client talks to the Bilibili web API. API calls are rate limited;
// media downloads are not.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// mediaClient has no overall timeout; long streams are bounded by ctx.
	mediaClient *http.Client
	limiter     *rate.Limiter
	credential  Credential
	tempDir     string
	logger      logger.Logger

	mu    sync.Mutex
	pages map[string][]pageInfo
}

type pageInfo struct {
	page models.Page
	cid  int64
}

// New creates a Client.
func New(opts Options, cred Credential, log logger.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 2
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	burst := int(opts.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	mediaTransport := http.DefaultTransport.(*http.Transport).Clone()
	mediaTransport.ResponseHeaderTimeout = opts.Timeout

	return &Client{
		baseURL:     opts.BaseURL,
		httpClient:  &http.Client{Timeout: opts.Timeout},
		mediaClient: &http.Client{Transport: mediaTransport},
		limiter:     rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst),
		credential:  cred,
		tempDir:     opts.TempDir,
		logger:      log,
		pages:       make(map[string][]pageInfo),
	}
}
