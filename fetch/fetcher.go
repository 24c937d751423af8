package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrStatus indicates an HTTP response outside the 2xx range.
var ErrStatus = errors.New("unexpected status code")

// maxBodyBytes caps how much of a response body is read. News listing pages
// are far smaller than this; the cap protects against runaway responses.
const maxBodyBytes = 2 << 20

// defaultHeaders mimic a desktop browser. Several official tax-authority
// sites refuse requests with a default Go user agent.
var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.5",
	"Connection":      "keep-alive",
}

// Options configure a Client. Zero values fall back to the defaults used by
// every adapter: 10 calls per 60s window, 30s per-call timeout.
type Options struct {
	Calls   int
	Window  time.Duration
	Timeout time.Duration
	Headers map[string]string
}

// Client is a rate-limited HTTP fetcher. It does not retry: some sites block
// permanently, some fail transiently, so retry policy belongs to the adapter
// that knows the site.
type Client struct {
	http    *http.Client
	limiter *Limiter
	timeout time.Duration
	headers map[string]string
}

// New creates a Client with its own private rate window.
func New(opts Options) *Client {
	if opts.Calls <= 0 {
		opts.Calls = 10
	}
	if opts.Window <= 0 {
		opts.Window = time.Minute
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	headers := opts.Headers
	if headers == nil {
		headers = defaultHeaders
	}

	return &Client{
		http:    &http.Client{},
		limiter: NewLimiter(opts.Calls, opts.Window),
		timeout: opts.Timeout,
		headers: headers,
	}
}

// Fetch performs a rate-limited GET and returns the response body. A call
// over quota suspends until the window permits it. Transport failures and
// non-2xx responses return an error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait for %s: %w", rawURL, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", rawURL, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: %w: %d", rawURL, ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", rawURL, err)
	}
	return string(body), nil
}
