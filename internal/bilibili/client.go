package bilibili

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

// HTTPClient returns the underlying client so callers can reuse its
// timeout for related downloads.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// getJSON calls an API endpoint and returns the "data" member of the envelope.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values) (gjson.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, err
	}

	rawURL := c.baseURL + endpoint
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return gjson.Result{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return gjson.Result{}, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("read %s: %w", endpoint, err)
	}
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("invalid JSON from %s", endpoint)
	}

	envelope := gjson.ParseBytes(body)
	if code := envelope.Get("code").Int(); code != 0 {
		return gjson.Result{}, &APIError{
			Endpoint: endpoint,
			Code:     code,
			Message:  envelope.Get("message").String(),
		}
	}

	return envelope.Get("data"), nil
}

func (c *Client) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", referer)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	c.credential.apply(req)

	return req, nil
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
