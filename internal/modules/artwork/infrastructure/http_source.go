package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultFetchTimeout = 10 * time.Second

	// maxImageBytes caps how much we read from the upstream body.
	maxImageBytes = 16 << 20
)

// HTTPSource fetches artwork over HTTP(S).
type HTTPSource struct {
	client *http.Client
}

// NewHTTPSource creates an HTTPSource with a default timeout.
func NewHTTPSource() *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: defaultFetchTimeout},
	}
}

// Fetch downloads the image and returns its body and content type.
func (s *HTTPSource) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, "", fmt.Errorf("invalid artwork url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, "", fmt.Errorf("unsupported artwork url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch artwork: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("artwork upstream returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read artwork body: %w", err)
	}

	return body, resp.Header.Get("Content-Type"), nil
}
