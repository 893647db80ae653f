package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxBodySize caps a single fetched resource.
var maxBodySize = 16 << 20

// ErrTooLarge reports a resource over the size cap.
var ErrTooLarge = errors.New("resource exceeds the size limit")

// HTTP fetches resources from a remote origin.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTP returns a Source that resolves paths against baseURL. A zero
// timeout leaves the client without one.
func NewHTTP(baseURL string, timeout time.Duration) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Fetch issues a GET for p. The query string of p is preserved.
func (h *HTTP) Fetch(ctx context.Context, p string) ([]byte, error) {
	target := h.baseURL + "/" + strings.TrimLeft(p, "/")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", p, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", p, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Path: p, Code: resp.StatusCode}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, int64(maxBodySize)+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}
	if len(data) > maxBodySize {
		return nil, fmt.Errorf("reading %s: %w", p, ErrTooLarge)
	}
	return data, nil
}
