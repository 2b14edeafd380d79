// Package fetch provides a ContentFetcher for remote document sources.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/verity-labs/claimlens-cli/internal/core/ports/driven"
)

// Ensure HTTPFetcher implements the interface.
var _ driven.ContentFetcher = (*HTTPFetcher)(nil)

// Default configuration values.
const (
	DefaultTimeout = 60 * time.Second

	// DefaultMaxBytes caps a download at 64 MiB; filings and
	// transcripts are well under this.
	DefaultMaxBytes = 64 << 20
)

// Config holds configuration for the HTTP fetcher.
type Config struct {
	// Timeout is the per-request timeout (default: 60s).
	Timeout time.Duration

	// MaxBytes caps the response body size (default: 64 MiB).
	MaxBytes int64
}

// HTTPFetcher downloads document content over HTTP(S).
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher creates a new HTTP content fetcher.
func NewHTTPFetcher(cfg Config) *HTTPFetcher {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxBytes: cfg.MaxBytes,
	}
}

// Fetch downloads the content at the given URI.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", uri, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("fetch %s: content exceeds %d bytes", uri, f.maxBytes)
	}

	return data, nil
}
