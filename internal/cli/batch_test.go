package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/logging"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type urlScraper struct{}

func (urlScraper) Scrape(_ context.Context, url string) model.Record {
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	switch {
	case strings.Contains(url, "aid"):
		return model.Venue{Header: model.NewHeader(model.KindVenue, url, now), Name: "Ace"}
	case strings.Contains(url, "chid"):
		return model.Coach{Header: model.NewHeader(model.KindCoach, url, now), Name: "Rahul"}
	default:
		return model.NewFailure(url, now, model.MsgFetchFailed)
	}
}

func testBatchConfig(t *testing.T, urls ...string) *model.Config {
	t.Helper()
	dir := t.TempDir()
	in := filepath.Join(dir, "urls.txt")
	require.NoError(t, os.WriteFile(in, []byte(strings.Join(urls, "\n")), 0o644))

	cfg := model.DefaultConfig()
	cfg.Batch.InputFile = in
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.RateLimiting.RequestsPerSecond = 0
	cfg.RateLimiting.Delay = 0
	return cfg
}

func TestBatchRun_Execute(t *testing.T) {
	cfg := testBatchConfig(t,
		"https://www.bookmyplayer.com/pune/ace-aid-1",
		"https://www.bookmyplayer.com/pune/rahul-chid-2",
		"https://www.bookmyplayer.com/pune/ace-aid-1",
		"https://www.bookmyplayer.com/broken",
	)

	run := newBatchRun(cfg, logging.Nop(), "run-1")
	stats, err := run.execute(context.Background(), urlScraper{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.Processed)
	assert.Equal(t, 2, stats.Success)
	assert.Equal(t, 1, stats.Errors)
	assert.Equal(t, 1, stats.Venues)
	assert.Equal(t, 1, stats.Coaches)

	require.NotEmpty(t, run.finalFile)
	assert.FileExists(t, run.finalFile)
	assert.Contains(t, filepath.Base(run.finalFile), "bookmyplayer_final_")
}

func TestBatchRun_AutoSave(t *testing.T) {
	cfg := testBatchConfig(t,
		"https://www.bookmyplayer.com/a-aid-1",
		"https://www.bookmyplayer.com/b-aid-2",
		"https://www.bookmyplayer.com/c-aid-3",
	)
	cfg.Batch.AutoSaveInterval = 2

	run := newBatchRun(cfg, logging.Nop(), "run-2")
	_, err := run.execute(context.Background(), urlScraper{})
	require.NoError(t, err)

	progress, err := filepath.Glob(filepath.Join(cfg.Output.Dir, "bookmyplayer_progress_*.xlsx"))
	require.NoError(t, err)
	assert.Len(t, progress, 1)
}

func TestBatchRun_BadInputSavesNothing(t *testing.T) {
	cfg := testBatchConfig(t)
	cfg.Batch.InputFile = filepath.Join(t.TempDir(), "missing.csv")

	run := newBatchRun(cfg, logging.Nop(), "run-3")
	_, err := run.execute(context.Background(), urlScraper{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load input")
	assert.NoDirExists(t, cfg.Output.Dir)
}

func TestBatchRun_Cancelled(t *testing.T) {
	cfg := testBatchConfig(t, "https://www.bookmyplayer.com/a-aid-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	run := newBatchRun(cfg, logging.Nop(), "run-4")
	stats, err := run.execute(ctx, urlScraper{})
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.Processed, 1)
}
