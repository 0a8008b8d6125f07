// Package classify decides whether a page is a venue, coach or player profile
// and returns the matching extractor's record.
package classify

import (
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/extract"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// Result is the outcome of classifying one page
type Result struct {
	Kind        model.Kind
	Record      model.Record       // Unknown record when Kind is KindUnknown
	Scores      map[model.Kind]int // nil in signature mode
	FromURL     bool               // kind was decided by the URL rather than the page
	Diagnostics []error            // non-fatal extractor notes, e.g. coach JSON problems
}

// candidate is one extractor the classifier can run
type candidate struct {
	kind    model.Kind
	extract func(p *extract.Page, sourceURL string, now time.Time) (model.Record, error)
}

// Scoring order; earlier candidates win ties
var candidates = []candidate{
	{model.KindVenue, func(p *extract.Page, u string, now time.Time) (model.Record, error) {
		return extract.ExtractVenue(p, u, now), nil
	}},
	{model.KindPlayer, func(p *extract.Page, u string, now time.Time) (model.Record, error) {
		return extract.ExtractPlayer(p, u, now), nil
	}},
	{model.KindCoach, func(p *extract.Page, u string, now time.Time) (model.Record, error) {
		return extract.ExtractCoach(p, u, now)
	}},
}

func candidateFor(kind model.Kind) (candidate, bool) {
	for _, c := range candidates {
		if c.kind == kind {
			return c, true
		}
	}
	return candidate{}, false
}

// Classifier picks the content type of fetched pages.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	mode   string
	now    func() time.Time
	scorer *Scorer
}

// New creates a classifier for the given mode (model.ModeScoring or
// model.ModeSignature). A nil clock uses time.Now.
func New(mode string, clock func() time.Time) *Classifier {
	if mode != model.ModeSignature {
		mode = model.ModeScoring
	}
	if clock == nil {
		clock = time.Now
	}
	return &Classifier{mode: mode, now: clock, scorer: NewScorer()}
}

// Mode returns the active classification mode
func (c *Classifier) Mode() string {
	return c.mode
}

// Classify runs the configured mode over body fetched from sourceURL
func (c *Classifier) Classify(body, sourceURL string) Result {
	now := c.now()
	page := extract.ParsePage(body)

	if c.mode == model.ModeSignature {
		return c.bySignature(page, sourceURL, now)
	}
	return c.byScore(page, sourceURL, now)
}

// byScore runs every extractor and keeps the best-scoring record. When no
// extractor found a single field the URL decides which record to keep.
func (c *Classifier) byScore(page *extract.Page, sourceURL string, now time.Time) Result {
	res := Result{Scores: make(map[model.Kind]int, len(candidates))}
	records := make(map[model.Kind]model.Record, len(candidates))

	var (
		best      model.Kind
		bestScore = -1
		anyFields bool
	)
	for _, cand := range candidates {
		rec, err := cand.extract(page, sourceURL, now)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, err)
		}
		records[cand.kind] = rec

		s := c.scorer.Calculate(rec, cand.kind)
		res.Scores[cand.kind] = s.Total
		if s.Fields > 0 {
			anyFields = true
		}
		if s.Total > bestScore {
			best, bestScore = cand.kind, s.Total
		}
	}

	if anyFields && bestScore > 0 {
		res.Kind = best
		res.Record = records[best]
		return res
	}

	if kind := KindFromURL(sourceURL); kind != model.KindUnknown {
		res.FromURL = true
		res.Kind = kind
		res.Record = records[kind]
		return res
	}
	res.Kind = model.KindUnknown
	res.Record = model.NewUnknown(sourceURL, now, model.MsgUndetermined)
	return res
}

// bySignature picks a kind from the URL, then from the template anchors,
// and runs only that extractor
func (c *Classifier) bySignature(page *extract.Page, sourceURL string, now time.Time) Result {
	var res Result

	kind := KindFromURL(sourceURL)
	if kind != model.KindUnknown {
		res.FromURL = true
	} else {
		kind = KindFromSignature(page.Root)
	}

	cand, ok := candidateFor(kind)
	if !ok {
		res.Kind = model.KindUnknown
		res.Record = model.NewUnknown(sourceURL, now, model.MsgUndetermined)
		return res
	}

	rec, err := cand.extract(page, sourceURL, now)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, err)
	}
	res.Kind = kind
	res.Record = rec
	return res
}
