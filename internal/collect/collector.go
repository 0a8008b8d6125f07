// Package collect buckets scraped records by kind and keeps batch counters.
package collect

import (
	"sync"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// Snapshot is a copy of the collected records and counters at one moment
type Snapshot struct {
	Venues  []model.Venue
	Coaches []model.Coach
	Players []model.Player
	Others  []model.Record // unknown and error records
	Stats   model.Stats
}

// Empty reports whether no records have been collected
func (s Snapshot) Empty() bool {
	return len(s.Venues)+len(s.Coaches)+len(s.Players)+len(s.Others) == 0
}

// Collector accumulates records. It is safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	now     func() time.Time
	started time.Time

	venues  []model.Venue
	coaches []model.Coach
	players []model.Player
	others  []model.Record

	processed int
	success   int
	errors    int
}

// New creates a collector; the clock starts on the first Add unless Start
// is called. A nil clock uses time.Now.
func New(clock func() time.Time) *Collector {
	if clock == nil {
		clock = time.Now
	}
	return &Collector{now: clock}
}

// Start marks the beginning of the run for rate calculations
func (c *Collector) Start() {
	c.mu.Lock()
	c.started = c.now()
	c.mu.Unlock()
}

// Add files r into its bucket and returns the processed count
func (c *Collector) Add(r model.Record) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started.IsZero() {
		c.started = c.now()
	}

	switch rec := r.(type) {
	case model.Venue:
		c.venues = append(c.venues, rec)
	case model.Coach:
		c.coaches = append(c.coaches, rec)
	case model.Player:
		c.players = append(c.players, rec)
	default:
		c.others = append(c.others, r)
	}

	c.processed++
	if r != nil && r.Kind().IsProfile() {
		c.success++
	} else {
		c.errors++
	}
	return c.processed
}

// Stats returns the current counters and throughput
func (c *Collector) Stats() model.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *Collector) statsLocked() model.Stats {
	s := model.Stats{
		Processed: c.processed,
		Success:   c.success,
		Errors:    c.errors,
		Venues:    len(c.venues),
		Coaches:   len(c.coaches),
		Players:   len(c.players),
		Others:    len(c.others),
	}
	if !c.started.IsZero() {
		s.Elapsed = c.now().Sub(c.started)
	}
	if secs := s.Elapsed.Seconds(); secs > 0 {
		s.RatePerSecond = float64(c.processed) / secs
		s.RatePerMinute = s.RatePerSecond * 60
	}
	return s
}

// Snapshot copies the buckets so they can be exported while collection
// continues
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Venues:  append([]model.Venue(nil), c.venues...),
		Coaches: append([]model.Coach(nil), c.coaches...),
		Players: append([]model.Player(nil), c.players...),
		Others:  append([]model.Record(nil), c.others...),
		Stats:   c.statsLocked(),
	}
}
