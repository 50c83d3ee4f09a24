package sheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher retrieves the raw body of a sheet export.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type FetcherConfig struct {
	// Timeout bounds a single request. Zero leaves the request unbounded
	// apart from the caller's context.
	Timeout    time.Duration
	UserAgent  string
	HTTPClient httpDoer
}

type HTTPFetcher struct {
	userAgent  string
	httpClient httpDoer
}

func NewFetcher(cfg FetcherConfig) *HTTPFetcher {
	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: cfg.Timeout}
	}

	return &HTTPFetcher{
		userAgent:  strings.TrimSpace(cfg.UserAgent),
		httpClient: doer,
	}
}

// Fetch performs a single GET without retries and returns the body as text.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", &ConfigurationError{Field: "url", Reason: "is required"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &ConfigurationError{Field: "url", Reason: fmt.Sprintf("is invalid: %v", err)}
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.8")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		status := strings.TrimSpace(resp.Status)
		if status == "" {
			status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		}
		return "", &FetchError{URL: url, StatusCode: resp.StatusCode, Status: status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}
	return string(body), nil
}
