// Package resolver performs the HTTP round trips used to check whether
// DOIs and reference URLs still resolve, with browser-like headers so
// publisher sites answer instead of stonewalling.
package resolver

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Resolver issues the two request shapes link validation needs.
// Implementations return the final status code after redirects; a
// non-nil error means the request never produced a response.
type Resolver interface {
	Head(ctx context.Context, url string) (int, error)
	Get(ctx context.Context, url string) (int, error)
}

// DefaultTimeout bounds a single resolution round trip.
const DefaultTimeout = 5 * time.Second

// defaultPace is the global request rate toward the outside world,
// independent of the per-domain window budgets enforced above us.
const defaultPace = rate.Limit(3)

// Client is an HTTP-backed Resolver.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithPace overrides the global requests-per-second pace.
func WithPace(limit rate.Limit) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, 1)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a resolver client with browser-like configuration.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: DefaultTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConnsPerHost: 10,
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: false},
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Publisher landing pages can chain several hops.
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects: %d", len(via))
				}
				if len(via) > 0 {
					req.Header = via[0].Header.Clone()
				}
				return nil
			},
		},
		limiter:   rate.NewLimiter(defaultPace, 1),
		userAgent: pickUserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Head resolves a URL with a HEAD request.
func (c *Client) Head(ctx context.Context, url string) (int, error) {
	return c.do(ctx, http.MethodHead, url)
}

// Get resolves a URL with a GET request. The body is discarded.
func (c *Client) Get(ctx context.Context, url string) (int, error) {
	return c.do(ctx, http.MethodGet, url)
}

func (c *Client) do(ctx context.Context, method, url string) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate wait aborted: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	c.addBrowserHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s failed: %w", method, url, err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

// addBrowserHeaders makes requests look like an ordinary browser visit;
// several publishers refuse bare-client traffic outright.
func (c *Client) addBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("DNT", "1")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
}

func pickUserAgent() string {
	userAgents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	}
	return userAgents[int(time.Now().UnixNano())%len(userAgents)]
}
