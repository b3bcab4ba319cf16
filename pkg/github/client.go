package github

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/toplangs/pkg/buildinfo"
	"github.com/matzehuels/toplangs/pkg/cache"
	"github.com/matzehuels/toplangs/pkg/errors"
	"github.com/matzehuels/toplangs/pkg/httputil"
	"github.com/matzehuels/toplangs/pkg/observability"
)

const (
	// DefaultBaseURL is the public GitHub API endpoint.
	DefaultBaseURL = "https://api.github.com"

	// DefaultCacheTTL is how long language statistics stay cached.
	DefaultCacheTTL = time.Hour

	userAgent   = "toplangs/"
	httpTimeout = 30 * time.Second

	// maxRateLimitWait is the longest Retry-After the client sleeps through
	// instead of failing.
	maxRateLimitWait = 10 * time.Second
)

// Client is a GitHub API client authenticated with a personal access token.
// A Client is safe for concurrent use.
type Client struct {
	token    string
	baseURL  string
	http     *http.Client
	cache    cache.Cache
	cacheTTL time.Duration
	refresh  bool
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a GitHub
// Enterprise server or a test server. A trailing slash is ignored.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithCache caches language statistics in ch for ttl.
// A ttl of zero or less uses [DefaultCacheTTL].
func WithCache(ch cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		if ch == nil {
			return
		}
		if ttl <= 0 {
			ttl = DefaultCacheTTL
		}
		c.cache, c.cacheTTL = ch, ttl
	}
}

// WithRefresh skips cache reads. Fresh results are still written back.
func WithRefresh(refresh bool) Option {
	return func(c *Client) { c.refresh = refresh }
}

// NewClient creates a client for the given token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: httpTimeout},
		cache:   cache.NewNullCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get performs a GET with retries and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.do(ctx, http.MethodGet, path, nil, out)
	})
}

// send performs a single non-idempotent request without retries.
func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	return c.do(ctx, method, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode %s %s", method, path)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create request")
	}
	c.setHeaders(req)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	host, reqPath := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, reqPath)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, reqPath, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", method, path)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, reqPath, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeDataFormat, err, "decode %s %s", method, path)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent+buildinfo.Version)
	if c.token != "" {
		req.Header.Set("Authorization", "bearer "+c.token)
	}
}

// apiError is the body GitHub sends with most non-2xx responses.
type apiError struct {
	Message string `json:"message"`
}

func checkStatus(resp *http.Response) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	msg := http.StatusText(code)
	var body apiError
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		if json.Unmarshal(data, &body) == nil && body.Message != "" {
			msg = body.Message
		}
	}

	switch {
	case code == http.StatusUnauthorized:
		return errors.New(errors.ErrCodeUnauthorized, "GitHub rejected the token: %s", msg)
	case code == http.StatusTooManyRequests,
		code == http.StatusForbidden && resp.Header.Get("X-RateLimit-Remaining") == "0":
		rl := rateLimited(resp)
		err := errors.Wrap(errors.ErrCodeRateLimited, rl, "GitHub rate limit exceeded")
		if rl.RetryAfter > 0 && rl.RetryAfter <= maxRateLimitWait {
			return &httputil.RetryableError{Err: err, After: rl.RetryAfter}
		}
		return err
	case code == http.StatusForbidden:
		return errors.New(errors.ErrCodeForbidden, "access denied: %s", msg)
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s", msg)
	case code >= 500:
		return &httputil.RetryableError{Err: errors.New(errors.ErrCodeNetwork, "status %d: %s", code, msg)}
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d: %s", code, msg)
	}
}

// rateLimited reads the wait from Retry-After (seconds) or, failing that,
// from the X-RateLimit-Reset epoch.
func rateLimited(resp *http.Response) *errors.RateLimitedError {
	e := &errors.RateLimitedError{}
	if v, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && v > 0 {
		e.RetryAfter = time.Duration(v) * time.Second
	} else if v, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		e.RetryAfter = max(time.Until(time.Unix(v, 0)).Round(time.Second), 0)
	}
	return e
}
