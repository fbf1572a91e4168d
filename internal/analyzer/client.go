// Package analyzer calls the external header-analyzer service that renders a
// human-readable report for a raw header block. Its reachability is
// independent of verdict computation.
package analyzer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client submits a raw header block for analysis and returns the raw HTML
// report. Any failure (timeout, transport error, non-2xx status) is returned
// as an error and is never retried here; the caller decides what a failed
// call means for the submission.
type Client interface {
	Analyze(ctx context.Context, rawHeaders string) (string, error)
}

type httpClient struct {
	formURL string
	client  *http.Client
}

// NewHTTPClient builds a client for the analyzer form endpoint. The timeout
// bounds the whole call; on expiry the call surfaces as an ordinary error.
func NewHTTPClient(formURL string, timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &httpClient{
		formURL: formURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *httpClient) Analyze(ctx context.Context, rawHeaders string) (string, error) {
	form := url.Values{"headers": {rawHeaders}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.formURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building analyzer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling analyzer: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading analyzer response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("analyzer returned status %d", resp.StatusCode)
	}

	return string(body), nil
}
