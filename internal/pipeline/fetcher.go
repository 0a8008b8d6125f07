package pipeline

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/cache"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/util"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// ErrDisallowed is returned when robots.txt forbids the URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// retryTimer supplies the timer that paces retries; nil selects the real
// clock. Tests replace it.
var retryTimer = func() backoff.Timer { return nil }

// StatusError is a non-2xx response
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.Code, e.Status)
}

// Fetcher fetches page bodies over HTTP
type Fetcher struct {
	httpClient   *http.Client
	userAgent    string
	maxBytes     int64
	maxAttempts  int
	retryInitial time.Duration
	retryMax     time.Duration
	robots       *util.RobotsChecker
	cache        cache.Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewFetcher creates a new Fetcher with the given transport settings.
// Retries default to 3 attempts starting at one second.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64, insecure bool, httpProxy, httpsProxy, noProxy string) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(httpProxy, httpsProxy, noProxy)
	if insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		userAgent:    userAgent,
		maxBytes:     maxBytes,
		maxAttempts:  3,
		retryInitial: time.Second,
		retryMax:     8 * time.Second,
		logger:       zap.NewNop(),
	}
}

// SetRetry configures the attempt budget and backoff bounds
func (f *Fetcher) SetRetry(attempts int, initial, max time.Duration) {
	if attempts < 1 {
		attempts = 1
	}
	f.maxAttempts = attempts
	f.retryInitial = initial
	f.retryMax = max
}

// SetRobots enables robots.txt checks
func (f *Fetcher) SetRobots(r *util.RobotsChecker) {
	f.robots = r
}

// SetCache enables the page body cache
func (f *Fetcher) SetCache(c cache.Cache, ttl time.Duration) {
	f.cache = c
	f.cacheTTL = ttl
}

// SetLogger sets the logger used for retry warnings
func (f *Fetcher) SetLogger(l *zap.Logger) {
	if l != nil {
		f.logger = l
	}
}

// FetchMeta describes the HTTP response a body came from
type FetchMeta struct {
	StatusCode  int
	ContentType string
}

// FetchResult contains the fetched body and metadata
type FetchResult struct {
	HTML      string
	Meta      FetchMeta
	FinalURL  string
	FromCache bool
	Attempts  int
}

// Fetch retrieves the body of rawURL in a single attempt
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	if f.cache != nil {
		if body, ok := f.cache.Get(cache.CacheKey(rawURL)); ok {
			return &FetchResult{HTML: string(body), FinalURL: rawURL, FromCache: true}, nil
		}
	}

	if f.robots != nil {
		allowed, _, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots: %w", err)
		}
		if !allowed {
			return nil, ErrDisallowed
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if f.cache != nil && len(body) > 0 {
		if err := f.cache.Set(cache.CacheKey(rawURL), body, f.cacheTTL); err != nil {
			f.logger.Warn("cache write failed", zap.String("url", rawURL), zap.Error(err))
		}
	}

	return &FetchResult{
		HTML: string(body),
		Meta: FetchMeta{
			StatusCode:  resp.StatusCode,
			ContentType: resp.Header.Get("Content-Type"),
		},
		FinalURL: resp.Request.URL.String(),
	}, nil
}

// FetchWithRetry fetches rawURL, retrying network errors, 5xx and 429 with
// exponential backoff. Other failures are returned at once. Cancelling ctx
// aborts the wait between attempts.
func (f *Fetcher) FetchWithRetry(ctx context.Context, rawURL string) (*FetchResult, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.retryInitial
	b.MaxInterval = f.retryMax
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(f.maxAttempts-1)), ctx)

	var (
		result  *FetchResult
		attempt int
	)
	op := func() error {
		attempt++
		res, err := f.Fetch(ctx, rawURL)
		if err != nil {
			if !isRetryableFetchError(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		result = res
		return nil
	}
	notify := func(err error, delay time.Duration) {
		f.logger.Warn("fetch attempt failed, retrying",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
	}

	if err := backoff.RetryNotifyWithTimer(op, policy, notify, retryTimer()); err != nil {
		return nil, err
	}
	result.Attempts = attempt
	return result, nil
}

// isRetryableFetchError reports whether err is worth another attempt
func isRetryableFetchError(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return retryableStatus(se.Code)
	}
	return strings.HasPrefix(err.Error(), "fetch: ")
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// FetchPage returns the body of rawURL, retrying transient failures
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	res, err := f.FetchWithRetry(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}
