// Package api is the HTTP client for the transcript backend. It keeps the session
// cookie between calls and serves list-shaped reads from a small-blob cache.
package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sort"
	"strings"
	"time"

	"transcript-app/domain/repository"
	"transcript-app/infrastructure/logger"

	"github.com/goccy/go-json"
)

// ErrBackendUnreachable is returned when the server answers with something other than JSON,
// which usually means the URL points at the wrong service or the backend is not running.
var ErrBackendUnreachable = errors.New("backend server is not responding, make sure the backend is running")

// APIError is a non-2xx response carrying the server's error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type errorBody struct {
	Error string `json:"error"`
}

// Options customize a single request.
type Options struct {
	Method string
	Body   interface{}
	Header http.Header
}

type Client struct {
	baseURL string
	origin  *url.URL
	http    *http.Client
	cache   repository.IBlobCache
}

type Option func(*Client)

// WithHTTPClient replaces the transport. h is copied, so attaching a cookie jar
// never touches the caller's client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		hc := *h
		c.http = &hc
	}
}

// New builds a client for baseURL. cache may be nil, in which case every read goes to the network.
func New(baseURL string, cache repository.IBlobCache, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	origin, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	c := &Client{
		baseURL: baseURL,
		origin:  origin,
		http:    &http.Client{Timeout: 60 * time.Second},
		cache:   cache,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// BaseURL is the backend origin requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Cookies returns the cookies currently held for the backend origin.
func (c *Client) Cookies() []*http.Cookie {
	return c.http.Jar.Cookies(c.origin)
}

// SetCookies seeds the jar, e.g. with a session restored from disk.
func (c *Client) SetCookies(cookies []*http.Cookie) {
	c.http.Jar.SetCookies(c.origin, cookies)
}

// Request sends a JSON request to endpoint and decodes the JSON response into out (if non-nil).
func (c *Client) Request(ctx context.Context, endpoint string, opts Options, out interface{}) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, values := range opts.Header {
		req.Header.Del(k)
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("cannot connect to server, make sure backend is running on %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return fmt.Errorf("%w (%s %s returned status %d)", ErrBackendUnreachable, method, endpoint, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("cannot connect to server, make sure backend is running on %s: %w", c.baseURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if len(raw) > 0 {
			_ = json.Unmarshal(raw, &eb)
		}
		if eb.Error == "" {
			eb.Error = "Request failed"
		}
		return &APIError{StatusCode: resp.StatusCode, Message: eb.Error}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, endpoint, err)
	}
	return nil
}

// scopedKey ties a cache key to the session currently held in the jar, so clients
// sharing one cache never read each other's lists.
func (c *Client) scopedKey(key string) string {
	cookies := c.Cookies()
	if len(cookies) == 0 {
		return key + ":anonymous"
	}
	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	sort.Strings(pairs)
	sum := sha256.Sum256([]byte(strings.Join(pairs, ";")))
	return key + ":" + hex.EncodeToString(sum[:8])
}

// dropSessionCache forgets the cached lists of the current session.
func (c *Client) dropSessionCache(ctx context.Context) {
	for _, key := range []string{CacheKeyTranscripts, CacheKeyMemories, CacheKeyAISettings} {
		c.invalidate(ctx, key)
	}
}

// cachedGet serves endpoint from the cache under key, fetching and storing it for ttl on a miss.
// A failed fetch leaves the cache untouched.
func (c *Client) cachedGet(ctx context.Context, key string, ttl time.Duration, endpoint string, out interface{}) error {
	if c.cacheGet(ctx, key, out) {
		return nil
	}
	if err := c.Request(ctx, endpoint, Options{}, out); err != nil {
		return err
	}
	c.cacheSet(ctx, key, out, ttl)
	return nil
}

func (c *Client) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if c.cache == nil {
		return false
	}
	key = c.scopedKey(key)
	ok, err := c.cache.Get(ctx, key, out)
	if err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Cache read failed, fetching from backend")
		return false
	}
	return ok
}

func (c *Client) cacheSet(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if c.cache == nil {
		return
	}
	key = c.scopedKey(key)
	if err := c.cache.Set(ctx, key, value, ttl); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Cache write failed")
	}
}

func (c *Client) invalidate(ctx context.Context, key string) {
	if c.cache == nil {
		return
	}
	key = c.scopedKey(key)
	if err := c.cache.Remove(ctx, key); err != nil {
		logger.GetLogger().WithField("error", err).WithField("key", key).Warn("Cache invalidation failed")
	}
}
