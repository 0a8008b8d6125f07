package collect

import (
	"sync"
	"testing"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(kind model.Kind) model.Header {
	return model.NewHeader(kind, "https://www.bookmyplayer.com/x", time.Time{})
}

func TestCollector_Buckets(t *testing.T) {
	t.Parallel()

	c := New(nil)
	c.Add(model.Venue{Header: header(model.KindVenue), Name: "Ace"})
	c.Add(model.Coach{Header: header(model.KindCoach), Name: "Rahul"})
	c.Add(model.Coach{Header: header(model.KindCoach), Name: "Amit"})
	c.Add(model.Player{Header: header(model.KindPlayer), Name: "Priya"})
	c.Add(model.NewUnknown("https://example.com", time.Time{}, model.MsgUndetermined))
	n := c.Add(model.NewFailure("https://example.com/x", time.Time{}, model.MsgFetchFailed))

	assert.Equal(t, 6, n)

	snap := c.Snapshot()
	assert.Len(t, snap.Venues, 1)
	assert.Len(t, snap.Coaches, 2)
	assert.Len(t, snap.Players, 1)
	assert.Len(t, snap.Others, 2)
	assert.False(t, snap.Empty())

	s := snap.Stats
	assert.Equal(t, 6, s.Processed)
	assert.Equal(t, 4, s.Success)
	assert.Equal(t, 2, s.Errors)
	assert.Equal(t, 1, s.Venues)
	assert.Equal(t, 2, s.Coaches)
	assert.Equal(t, 1, s.Players)
	assert.Equal(t, 2, s.Others)
}

func TestCollector_Rates(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c := New(func() time.Time { return now })
	c.Start()

	for i := 0; i < 30; i++ {
		c.Add(model.Venue{Header: header(model.KindVenue)})
	}
	now = now.Add(10 * time.Second)

	s := c.Stats()
	assert.Equal(t, 10*time.Second, s.Elapsed)
	assert.InDelta(t, 3.0, s.RatePerSecond, 1e-9)
	assert.InDelta(t, 180.0, s.RatePerMinute, 1e-9)
}

func TestCollector_EmptyStats(t *testing.T) {
	t.Parallel()

	c := New(nil)
	s := c.Stats()
	assert.Zero(t, s.Processed)
	assert.Zero(t, s.RatePerSecond)
	assert.True(t, c.Snapshot().Empty())
}

func TestCollector_SnapshotIsCopy(t *testing.T) {
	t.Parallel()

	c := New(nil)
	c.Add(model.Venue{Header: header(model.KindVenue), Name: "A"})
	snap := c.Snapshot()
	c.Add(model.Venue{Header: header(model.KindVenue), Name: "B"})

	require.Len(t, snap.Venues, 1)
	assert.Equal(t, "A", snap.Venues[0].Name)
}

func TestCollector_ConcurrentAdd(t *testing.T) {
	t.Parallel()

	c := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Add(model.Player{Header: header(model.KindPlayer)})
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, c.Stats().Players)
}
