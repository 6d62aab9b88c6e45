package subtitle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nguyentantai21042004/bilisum/internal/bilibili"
	"github.com/tidwall/gjson"
)

// fetchDocument downloads a subtitle document of the form
// {"body":[{"from":0.1,"to":2.3,"content":"..."}]} and joins the cue texts.
func (r *implResolver) fetchDocument(ctx context.Context, rawURL string) (string, error) {
	if strings.HasPrefix(rawURL, "//") {
		rawURL = "https:" + rawURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build subtitle request: %w", err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch subtitles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &bilibili.StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read subtitles: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return "", fmt.Errorf("subtitle document from %s is not valid JSON", rawURL)
	}

	var lines []string
	gjson.GetBytes(body, "body").ForEach(func(_, cue gjson.Result) bool {
		lines = append(lines, cue.Get("content").String())
		return true
	})

	return strings.Join(lines, "\n"), nil
}
