package worker

import (
	"context"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"go.uber.org/zap"
)

// Scraper turns a URL into a record
type Scraper interface {
	Scrape(ctx context.Context, url string) model.Record
}

// Batch scrapes a list of URLs with a worker pool
type Batch struct {
	scraper Scraper
	limiter *Limiter
	workers int
	delay   time.Duration
	logger  *zap.Logger
}

// NewBatch creates a batch runner. A nil limiter disables rate limiting;
// delay is slept after every limiter wait.
func NewBatch(s Scraper, limiter *Limiter, workers int, delay time.Duration, logger *zap.Logger) *Batch {
	if limiter == nil {
		limiter = NewLimiter(0, 1)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{scraper: s, limiter: limiter, workers: workers, delay: delay, logger: logger}
}

// Run scrapes urls and hands each record to emit in completion order.
// emit is only called from the goroutine running Run. When ctx is
// cancelled the remaining URLs are skipped and ctx.Err() is returned.
func (b *Batch) Run(ctx context.Context, urls []string, emit func(model.Record)) error {
	if len(urls) == 0 {
		return nil
	}

	pool := NewPool[string, model.Record](ctx, b.workers, b.scrapeOne)
	pool.Start()
	defer pool.Shutdown()

	go func() {
		defer pool.Close()
		for _, u := range urls {
			if !pool.Submit(u) {
				return
			}
		}
	}()

	for rec := range pool.Results() {
		emit(rec)
	}

	if err := ctx.Err(); err != nil {
		b.logger.Warn("batch interrupted", zap.Error(err))
		return err
	}
	return nil
}

func (b *Batch) scrapeOne(ctx context.Context, url string) (model.Record, bool) {
	if err := b.limiter.WaitWithDelay(ctx, url, b.delay); err != nil {
		return nil, false
	}

	rec := b.scraper.Scrape(ctx, url)
	if ctx.Err() != nil && rec.Kind() == model.KindError {
		// fetch aborted by cancellation, not a real failure
		return nil, false
	}
	return rec, true
}
