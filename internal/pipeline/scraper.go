// Package pipeline turns a URL into a record: fetch, classify, extract.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/cache"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/classify"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/util"
	"go.uber.org/zap"
)

// PageFetcher retrieves a page body
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Scraper fetches and classifies single pages. Failures come back as
// records, never as errors.
type Scraper struct {
	fetcher    PageFetcher
	classifier *classify.Classifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewScraper wires the HTTP fetcher, optional cache and robots checks and the
// classifier from cfg
func NewScraper(cfg *model.Config, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}

	f := NewFetcher(
		cfg.HTTP.Timeout,
		cfg.HTTP.UserAgent,
		cfg.HTTP.MaxBodyBytes,
		cfg.HTTP.InsecureTLS,
		cfg.HTTP.HTTPProxy,
		cfg.HTTP.HTTPSProxy,
		cfg.HTTP.NoProxy,
	)
	f.SetRetry(cfg.HTTP.MaxRetries, cfg.HTTP.RetryInitial, cfg.HTTP.RetryMax)
	f.SetLogger(logger.Named("fetch"))
	if cfg.HTTP.RespectRobots {
		f.SetRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout))
	}
	if cfg.Cache.Enabled {
		f.SetCache(cache.New(cfg.Cache.Dir, cfg.Cache.MemoryTTL, cfg.Cache.DiskTTL), cfg.Cache.DiskTTL)
	}

	return NewScraperWith(f, classify.New(cfg.Classifier.Mode, nil), logger, nil)
}

// NewScraperWith builds a scraper from parts. A nil clock uses time.Now.
func NewScraperWith(f PageFetcher, c *classify.Classifier, logger *zap.Logger, clock func() time.Time) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Scraper{fetcher: f, classifier: c, logger: logger, now: clock}
}

// Scrape fetches url and returns its record
func (s *Scraper) Scrape(ctx context.Context, url string) (rec model.Record) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scrape panicked", zap.String("url", url), zap.Any("panic", r))
			rec = model.NewFailure(url, s.now(), fmt.Sprint(r))
		}
	}()

	body, err := s.fetcher.FetchPage(ctx, url)
	if err != nil || strings.TrimSpace(body) == "" {
		if err != nil {
			s.logger.Warn("fetch failed", zap.String("url", url), zap.Error(err))
		} else {
			s.logger.Warn("empty page", zap.String("url", url))
		}
		return model.NewFailure(url, s.now(), model.MsgFetchFailed)
	}

	return s.ScrapeBody(body, url)
}

// ScrapeBody classifies an already fetched body
func (s *Scraper) ScrapeBody(body, url string) model.Record {
	return s.Inspect(body, url).Record
}

// Inspect classifies body and returns the full classifier result
func (s *Scraper) Inspect(body, url string) classify.Result {
	res := s.classifier.Classify(body, url)

	if res.Scores != nil {
		s.logger.Debug("classifier scores",
			zap.String("url", url),
			zap.Int("venue", res.Scores[model.KindVenue]),
			zap.Int("coach", res.Scores[model.KindCoach]),
			zap.Int("player", res.Scores[model.KindPlayer]),
			zap.Bool("from_url", res.FromURL))
	}
	for _, d := range res.Diagnostics {
		s.logger.Warn("extractor diagnostic", zap.String("url", url), zap.Error(d))
	}

	s.logRecord(res.Record)
	return res
}

func (s *Scraper) logRecord(r model.Record) {
	url := r.Meta().SourceURL
	name, phone, email, location := model.Summary(r)

	switch r.Kind() {
	case model.KindVenue:
		s.logger.Info("VENUE extracted",
			zap.String("name", model.OrPlaceholder(name, model.NoName)),
			zap.String("phone", model.OrPlaceholder(phone, model.NoPhone)),
			zap.String("address", model.OrPlaceholder(location, model.NoAddress)),
			zap.String("url", url))
	case model.KindCoach:
		s.logger.Info("COACH extracted",
			zap.String("name", model.OrPlaceholder(name, model.NoName)),
			zap.String("phone", model.OrPlaceholder(phone, model.NoPhone)),
			zap.String("email", model.OrPlaceholder(email, model.NoEmail)),
			zap.String("location", model.OrPlaceholder(location, model.NoLocation)),
			zap.String("url", url))
	case model.KindPlayer:
		s.logger.Info("PLAYER extracted",
			zap.String("name", model.OrPlaceholder(name, model.NoName)),
			zap.String("phone", model.OrPlaceholder(phone, model.NoPhone)),
			zap.String("email", model.OrPlaceholder(email, model.NoEmail)),
			zap.String("location", model.OrPlaceholder(location, model.NoLocation)),
			zap.String("url", url))
	default:
		s.logger.Info("content type undetermined", zap.String("url", url))
	}
}
