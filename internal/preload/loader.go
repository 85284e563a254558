package preload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Loader issues a single asset load. Implementations must be safe for
// concurrent use by multiple workers.
type Loader interface {
	Load(ctx context.Context, url string) error
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, url string) error

func (f LoaderFunc) Load(ctx context.Context, url string) error { return f(ctx, url) }

// HTTPLoader fetches assets over HTTP. Relative references are resolved
// against the configured site origin; data URIs and unresolvable local
// paths settle as immediate successes since they carry or imply no network
// cost.
type HTTPLoader struct {
	client *http.Client
	origin string
}

// NewHTTPLoader constructs a loader. origin may be empty; timeout bounds a
// single request as a backstop behind the scheduler's own per-asset timer.
func NewHTTPLoader(origin string, timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{
		client: &http.Client{Timeout: timeout},
		origin: strings.TrimRight(origin, "/"),
	}
}

func (l *HTTPLoader) Load(ctx context.Context, url string) error {
	if strings.HasPrefix(url, "data:") {
		return nil
	}

	target := url
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		if l.origin == "" {
			return nil
		}
		if strings.HasPrefix(url, "/") {
			target = l.origin + url
		} else {
			target = l.origin + "/" + url
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", target, err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", target, err)
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused; the bytes themselves are
	// discarded.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
	}
	return nil
}
