package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/collect"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/export"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/input"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/logging"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/pipeline"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/worker"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var batchCmd = &cobra.Command{
	Use:   "batch [input]",
	Short: "Scrape every URL of an input file",
	Long: `Batch reads URLs from an .xlsx or .csv column or from a text file (one per
line), scrapes them with a worker pool and saves the records to Excel.

Progress is checkpointed every --auto-save records into
<output>/<prefix>_progress_<timestamp>.xlsx with a stats_<timestamp>.json
next to it. Ctrl-C stops the run and writes a final save.

Example:
  bmpscrape batch BookMyPlayer.xlsx
  bmpscrape batch urls.csv --column url --start-from 5000 --auto-save 500
  bmpscrape batch urls.txt --workers 4 --rps 2 --sqlite records.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

var batchFlagKeys = map[string]string{
	"workers":    "concurrency.workers",
	"rps":        "rate_limiting.requests_per_second",
	"burst":      "rate_limiting.burst_size",
	"delay":      "rate_limiting.delay",
	"column":     "batch.url_column",
	"start-from": "batch.start_from",
	"auto-save":  "batch.auto_save_interval",
	"output-dir": "output.dir",
	"prefix":     "output.file_prefix",
	"sqlite":     "output.sqlite_path",
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addFetchFlags(batchCmd)
	f := batchCmd.Flags()
	f.Int("workers", 1, "number of concurrent workers")
	f.Float64("rps", 2, "requests per second per host (0 disables)")
	f.Int("burst", 1, "rate limiter burst size")
	f.Duration("delay", time.Second, "fixed pause after each request")
	f.String("column", "url", "URL column: header name or zero-based index")
	f.Int("start-from", 0, "skip this many URLs of the input")
	f.Int("auto-save", 1000, "checkpoint every N records")
	f.String("output-dir", "output", "directory for workbooks and stats")
	f.String("prefix", "bookmyplayer", "output file name prefix")
	f.String("sqlite", "", "also store records in this sqlite database")
}

func runBatch(cmd *cobra.Command, args []string) error {
	keys := presentFlags(cmd, fetchFlagKeys)
	for k, v := range batchFlagKeys {
		keys[k] = v
	}
	cfg, err := loadConfig(cmd, keys)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Batch.InputFile = args[0]
	}

	logs, err := setupLogging(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logs.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run := newBatchRun(cfg, logs, export.NewRunID())
	if cfg.Output.SQLitePath != "" {
		sink, err := export.OpenSink(cfg.Output.SQLitePath, run.saver.RunID())
		if err != nil {
			return err
		}
		defer func() { _ = sink.Close() }()
		run.sink = sink
	}

	scraper := pipeline.NewScraper(cfg, logs.Main)
	stats, err := run.execute(ctx, scraper)
	if err != nil {
		return err
	}

	printTable(cmd.ErrOrStderr(), "Scraping Completed", []row{
		{"Run ID", run.saver.RunID()},
		{"Total processed", fmt.Sprint(stats.Processed)},
		{"Successful", fmt.Sprint(stats.Success)},
		{"Errors", fmt.Sprint(stats.Errors)},
		{"Venues", fmt.Sprint(stats.Venues)},
		{"Coaches", fmt.Sprint(stats.Coaches)},
		{"Players", fmt.Sprint(stats.Players)},
		{"Total time", stats.Elapsed.Round(100 * time.Millisecond).String()},
		{"Average rate", fmt.Sprintf("%.1f URLs/minute", stats.RatePerMinute)},
		{"Final file", run.finalFile},
	})
	return nil
}

// batchRun holds the state of one batch invocation
type batchRun struct {
	cfg       *model.Config
	logger    *zap.Logger
	progress  *zap.Logger
	collector *collect.Collector
	saver     *export.Saver
	sink      *export.Sink
	finalFile string
}

func newBatchRun(cfg *model.Config, logs *logging.Loggers, runID string) *batchRun {
	return &batchRun{
		cfg:       cfg,
		logger:    logs.Main,
		progress:  logs.Progress,
		collector: collect.New(nil),
		saver:     export.NewSaver(cfg.Output.Dir, cfg.Output.FilePrefix, runID, nil, logs.Main),
	}
}

// execute loads the input, scrapes it and writes the final save. An input
// error triggers an error-recovery save before it is returned.
func (r *batchRun) execute(ctx context.Context, s worker.Scraper) (model.Stats, error) {
	r.logger.Info("loading URLs", zap.String("input", r.cfg.Batch.InputFile))

	in, err := input.Load(r.cfg.Batch.InputFile, input.Options{
		Column:    r.cfg.Batch.URLColumn,
		StartFrom: r.cfg.Batch.StartFrom,
		Dedup:     true,
	})
	if err != nil {
		r.logger.Error("error processing input file", zap.Error(err))
		r.save(export.LabelErrorRecovery)
		return model.Stats{}, fmt.Errorf("load input: %w", err)
	}

	if in.Skipped > 0 {
		r.logger.Info("starting from record", zap.Int("start_from", in.Skipped))
	}
	r.logger.Info("URLs to process",
		zap.Int("count", len(in.URLs)),
		zap.Int("duplicates", in.Duplicates))
	if len(in.URLs) == 0 {
		r.logger.Warn("no URLs found to process")
		return r.collector.Stats(), nil
	}

	limiter := worker.NewLimiterFromConfig(r.cfg.RateLimiting)
	b := worker.NewBatch(s, limiter, r.cfg.Concurrency.Workers, r.cfg.RateLimiting.Delay, r.logger)

	r.collector.Start()
	total := len(in.URLs)
	runErr := b.Run(ctx, in.URLs, func(rec model.Record) {
		r.record(ctx, rec, in.Skipped, total)
	})
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return r.collector.Stats(), runErr
	}
	if runErr != nil {
		r.logger.Info("received interrupt, saving progress and shutting down")
	}

	r.finalFile = r.save(export.LabelFinal)
	return r.collector.Stats(), nil
}

// record files one result and emits progress, summaries and checkpoints
func (r *batchRun) record(ctx context.Context, rec model.Record, offset, total int) {
	n := r.collector.Add(rec)
	i := offset + n

	if n == 1 || i%100 == 0 {
		st := r.collector.Stats()
		r.progress.Info("processing",
			zap.String("position", fmt.Sprintf("%d/%d", n, total)),
			zap.Int("record", i),
			zap.Int("success", st.Success),
			zap.Int("errors", st.Errors),
			zap.String("rate", fmt.Sprintf("%.1f/min", st.RatePerMinute)),
			zap.String("url", shorten(rec.Meta().SourceURL, 100)))
	}
	if i%10 == 0 {
		st := r.collector.Stats()
		r.logger.Info("SUMMARY",
			zap.String("position", fmt.Sprintf("%d/%d", n, total)),
			zap.Int("venues", st.Venues),
			zap.Int("coaches", st.Coaches),
			zap.Int("players", st.Players),
			zap.Int("errors", st.Errors))
	}

	if r.sink != nil {
		if err := r.sink.Insert(context.WithoutCancel(ctx), rec); err != nil {
			r.logger.Warn("sqlite insert failed", zap.String("url", rec.Meta().SourceURL), zap.Error(err))
		}
	}

	if every := r.cfg.Batch.AutoSaveInterval; every > 0 && n%every == 0 {
		if file := r.save(export.LabelProgress); file != "" {
			r.logger.Info("auto-saved", zap.Int("records", n))
		}
	}
}

// save writes a checkpoint and returns its path, or "" when nothing was written
func (r *batchRun) save(label string) string {
	file, err := r.saver.Save(label, r.collector.Snapshot())
	if err != nil {
		if errors.Is(err, export.ErrNothingToSave) {
			r.logger.Warn("nothing to save", zap.String("label", label))
		} else {
			r.logger.Error("failed to save progress", zap.String("label", label), zap.Error(err))
		}
		return ""
	}
	return file
}
