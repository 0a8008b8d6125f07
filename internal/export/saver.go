package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/collect"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Save labels used in output file names
const (
	LabelProgress      = "progress"
	LabelFinal         = "final"
	LabelErrorRecovery = "error_recovery"
)

// TimestampLayout is the timestamp format used in output file names
const TimestampLayout = "20060102_150405"

// NewRunID returns a fresh identifier for one batch run
func NewRunID() string {
	return uuid.NewString()
}

// Saver writes workbook and stats pairs into an output directory
type Saver struct {
	dir    string
	prefix string
	runID  string
	now    func() time.Time
	logger *zap.Logger
}

// NewSaver creates a saver. A nil clock uses time.Now.
func NewSaver(dir, prefix, runID string, clock func() time.Time, logger *zap.Logger) *Saver {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Saver{dir: dir, prefix: prefix, runID: runID, now: clock, logger: logger}
}

// RunID returns the run identifier written into stats files
func (s *Saver) RunID() string {
	return s.runID
}

// Save writes <prefix>_<label>_<ts>.xlsx and stats_<ts>.json and returns the
// workbook path
func (s *Saver) Save(label string, snap collect.Snapshot) (string, error) {
	if snap.Empty() {
		return "", ErrNothingToSave
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	ts := s.now().Format(TimestampLayout)
	book := filepath.Join(s.dir, fmt.Sprintf("%s_%s_%s.xlsx", s.prefix, label, ts))

	if err := WriteWorkbook(book, snap); err != nil {
		return "", fmt.Errorf("save %s: %w", label, err)
	}

	stats := model.NewSaveStats(snap.Stats, s.runID, ts, book)
	if err := WriteStats(filepath.Join(s.dir, "stats_"+ts+".json"), stats); err != nil {
		return "", err
	}

	st := snap.Stats
	s.logger.Info("progress saved",
		zap.String("file", book),
		zap.Int("processed", st.Processed),
		zap.Int("success", st.Success),
		zap.Int("errors", st.Errors),
		zap.Int("venues", st.Venues),
		zap.Int("coaches", st.Coaches),
		zap.Int("players", st.Players))
	return book, nil
}
