// Package calendarific is a caching client for the Calendarific holiday API.
package calendarific

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"

	"github.com/briangreenhill/holidayagent/cache"
)

const (
	DefaultBaseURL       = "https://calendarific.com/api/v2"
	DefaultMaxConcurrent = 4
	DefaultTimeout       = 15 * time.Second

	APIKeyEnv = "CALENDARIFIC_API_KEY"

	holidaysPath = "/holidays"
)

// Params selects holidays. Zero values mean "not set" for every field but Year.
type Params struct {
	Country string
	Year    int
	Month   int
	Day     int
	Type    string
}

// Query returns the request parameters without the credential.
// Unset optional fields are absent.
func (p Params) Query() map[string]string {
	q := map[string]string{"year": strconv.Itoa(p.Year)}
	if p.Country != "" {
		q["country"] = strings.ToUpper(p.Country)
	}
	if p.Month != 0 {
		q["month"] = strconv.Itoa(p.Month)
	}
	if p.Day != 0 {
		q["day"] = strconv.Itoa(p.Day)
	}
	if p.Type != "" {
		q["type"] = p.Type
	}
	return q
}

// CacheKey is the canonical cache key for p
func (p Params) CacheKey() string {
	return cache.KeyFor(holidaysPath, p.Query())
}

// Observer receives client events; the metrics package implements it
type Observer interface {
	CacheHit()
	CacheMiss()
	Upstream(statusCode int)
}

type nopObserver struct{}

func (nopObserver) CacheHit()    {}
func (nopObserver) CacheMiss()   {}
func (nopObserver) Upstream(int) {}

type Client struct {
	http    *http.Client
	baseURL *url.URL
	apiKey  string

	cache               cache.Cache // optional; nil means no cache
	cacheProviderErrors bool

	group    singleflight.Group
	sem      *semaphore.Weighted
	observer Observer
	log      zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(raw); err == nil && raw != "" {
			c.baseURL = u
		}
	}
}

func WithCache(store cache.Cache) Option {
	return func(c *Client) { c.cache = store }
}

// WithCacheProviderErrors stores responses before meta.code is checked,
// so a provider error is replayed from cache until it expires.
func WithCacheProviderErrors(enabled bool) Option {
	return func(c *Client) { c.cacheProviderErrors = enabled }
}

// WithMaxConcurrent caps in-flight requests to the provider
func WithMaxConcurrent(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.sem = semaphore.NewWeighted(int64(n))
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Client) {
		if o != nil {
			c.observer = o
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a client. An empty apiKey is accepted here; it is reported
// as a ConfigurationError on the first request that misses the cache.
func New(apiKey string, opts ...Option) *Client {
	u, _ := url.Parse(DefaultBaseURL)
	c := &Client{
		http:     &http.Client{Timeout: DefaultTimeout},
		baseURL:  u,
		apiKey:   apiKey,
		sem:      semaphore.NewWeighted(DefaultMaxConcurrent),
		observer: nopObserver{},
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Holidays returns the holidays matching p, from cache when possible
func (c *Client) Holidays(ctx context.Context, p Params) (*Response, error) {
	key := p.CacheKey()

	if c.cache != nil {
		if entry, ok := c.cache.Read(key); ok {
			var out Response
			if err := json.Unmarshal(entry.Body, &out); err == nil {
				c.log.Debug().Str("key", key).Msg("cache hit")
				c.observer.CacheHit()
				return &out, nil
			}
		}
		c.observer.CacheMiss()
	}

	if c.apiKey == "" {
		return nil, &ConfigurationError{Setting: APIKeyEnv}
	}

	// The shared fetch outlives any one caller; each caller still stops
	// waiting when its own ctx ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		return c.fetch(shared, key, p)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Response), nil
	}
}

func (c *Client) fetch(ctx context.Context, key string, p Params) (*Response, error) {
	if err := c.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer c.sem.Release(1)

	req, err := c.newReq(ctx, holidaysPath, p.Query())
	if err != nil {
		return nil, err
	}
	c.log.Info().Str("url", redact(req.URL)).Msg("calling calendarific")

	resp, err := c.http.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redact(req.URL)
		}
		return nil, fmt.Errorf("GET %s: %w", holidaysPath, err)
	}
	defer resp.Body.Close()
	c.observer.Upstream(resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", holidaysPath, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", holidaysPath, err)
	}

	if c.cacheProviderErrors {
		c.store(key, body)
	}
	if out.Meta.Code != http.StatusOK {
		return nil, &ProviderError{Code: out.Meta.Code, Type: out.Meta.ErrorType, Detail: out.Meta.ErrorDetail}
	}
	if !c.cacheProviderErrors {
		c.store(key, body)
	}
	return &out, nil
}

func (c *Client) store(key string, body []byte) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Write(key, &cache.Entry{Body: json.RawMessage(body)}); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

func (c *Client) newReq(ctx context.Context, p string, q map[string]string) (*http.Request, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, p)
	qq := u.Query()
	qq.Set("api_key", c.apiKey)
	for k, v := range q {
		qq.Set(k, v)
	}
	u.RawQuery = qq.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// redact hides the credential in logged URLs
func redact(u *url.URL) string {
	cp := *u
	q := cp.Query()
	if q.Has("api_key") {
		q.Set("api_key", "REDACTED")
	}
	cp.RawQuery = q.Encode()
	return cp.String()
}
