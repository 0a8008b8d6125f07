// Package util holds the transport helpers shared by the fetcher: proxy
// selection and robots.txt rules.
package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers robots.txt questions, fetching each host's rules
// once per process
type RobotsChecker struct {
	mu     sync.RWMutex
	hosts  map[string]*robotstxt.RobotsData
	client *http.Client
	agent  string
}

// NewRobotsChecker creates a checker that identifies itself with the
// product token of userAgent
func NewRobotsChecker(userAgent string, timeout time.Duration) *RobotsChecker {
	return &RobotsChecker{
		hosts:  make(map[string]*robotstxt.RobotsData),
		client: &http.Client{Timeout: timeout},
		agent:  NormalizeUserAgent(userAgent),
	}
}

// CanFetch reports whether rawURL may be fetched and the crawl delay the
// host asks for. Hosts whose robots.txt cannot be read are allowed.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}
	if u.Host == "" {
		return false, 0, fmt.Errorf("parse URL: missing host in %q", rawURL)
	}

	data := r.rules(ctx, u)
	if data == nil {
		return true, 0, nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	var delay time.Duration
	if g := data.FindGroup(r.agent); g != nil {
		delay = g.CrawlDelay
	}
	return data.TestAgent(path, r.agent), delay, nil
}

func (r *RobotsChecker) rules(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	key := u.Scheme + "://" + u.Host

	r.mu.RLock()
	data, ok := r.hosts[key]
	r.mu.RUnlock()
	if ok {
		return data
	}

	data, err := r.fetch(ctx, key+"/robots.txt")
	if err != nil {
		// transient; try again next time
		return nil
	}

	r.mu.Lock()
	r.hosts[key] = data
	r.mu.Unlock()
	return data
}

func (r *RobotsChecker) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.agent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}

// Reset forgets every cached host
func (r *RobotsChecker) Reset() {
	r.mu.Lock()
	r.hosts = make(map[string]*robotstxt.RobotsData)
	r.mu.Unlock()
}

// NormalizeUserAgent reduces a browser-style user agent to its product
// token, e.g. "Mozilla/5.0 (X11)" becomes "Mozilla"
func NormalizeUserAgent(ua string) string {
	fields := strings.Fields(ua)
	if len(fields) == 0 {
		return ua
	}
	product, _, _ := strings.Cut(fields[0], "/")
	return product
}
