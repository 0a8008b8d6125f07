package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

var batchNow = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

// mockScraper returns a venue for every URL except those listed as failing
type mockScraper struct {
	failing map[string]bool
	calls   atomic.Int32
	delay   time.Duration
}

func (m *mockScraper) Scrape(ctx context.Context, url string) model.Record {
	m.calls.Add(1)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return model.NewFailure(url, batchNow, model.MsgFetchFailed)
		}
	}
	if m.failing[url] {
		return model.NewFailure(url, batchNow, model.MsgFetchFailed)
	}
	return model.Venue{Header: model.NewHeader(model.KindVenue, url, batchNow), Name: "V"}
}

func TestBatch_Run(t *testing.T) {
	s := &mockScraper{failing: map[string]bool{"https://example.com/b": true}}
	b := NewBatch(s, nil, 2, 0, nil)

	urls := []string{"https://example.com/a", "https://example.com/b", "https://example.com/c"}
	var got []model.Record
	if err := b.Run(context.Background(), urls, func(r model.Record) { got = append(got, r) }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	kinds := map[model.Kind]int{}
	for _, r := range got {
		kinds[r.Kind()]++
	}
	if kinds[model.KindVenue] != 2 || kinds[model.KindError] != 1 {
		t.Errorf("unexpected kinds: %v", kinds)
	}
}

func TestBatch_RunPreservesOrderWithOneWorker(t *testing.T) {
	b := NewBatch(&mockScraper{}, nil, 1, 0, nil)
	urls := []string{"https://example.com/1", "https://example.com/2", "https://example.com/3"}

	var order []string
	_ = b.Run(context.Background(), urls, func(r model.Record) {
		order = append(order, r.Meta().SourceURL)
	})

	for i, u := range urls {
		if i >= len(order) || order[i] != u {
			t.Fatalf("order = %v, want %v", order, urls)
		}
	}
}

func TestBatch_RunEmpty(t *testing.T) {
	s := &mockScraper{}
	b := NewBatch(s, nil, 2, 0, nil)

	called := false
	if err := b.Run(context.Background(), nil, func(model.Record) { called = true }); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if called || s.calls.Load() != 0 {
		t.Error("empty batch scraped something")
	}
}

func TestBatch_RunCancelled(t *testing.T) {
	s := &mockScraper{delay: 20 * time.Millisecond}
	b := NewBatch(s, nil, 1, 0, nil)

	urls := make([]string, 50)
	for i := range urls {
		urls[i] = "https://example.com/p"
	}

	ctx, cancel := context.WithCancel(context.Background())
	var n int
	err := b.Run(ctx, urls, func(r model.Record) {
		n++
		if n == 2 {
			cancel()
		}
		if r.Kind() == model.KindError {
			t.Errorf("cancelled fetch surfaced as a failure record")
		}
	})

	if err == nil {
		t.Fatal("expected context error")
	}
	if n >= len(urls) {
		t.Errorf("batch ran to completion after cancel: %d records", n)
	}
}

func TestBatch_RespectsDelay(t *testing.T) {
	b := NewBatch(&mockScraper{}, NewLimiter(0, 1), 1, 20*time.Millisecond, nil)

	start := time.Now()
	_ = b.Run(context.Background(), []string{"https://example.com/a", "https://example.com/b"}, func(model.Record) {})
	if d := time.Since(start); d < 40*time.Millisecond {
		t.Errorf("expected at least 40ms with delay, got %v", d)
	}
}
