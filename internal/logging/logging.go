// Package logging builds the zap loggers used by the CLI: JSON lines to
// stderr and to rotated files under the log directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// File names under the log directory
const (
	MainLogFile     = "bmpscrape.log"
	ProgressLogFile = "progress.log"
)

// EncoderConfig is the production config with capital levels and ISO8601 times
func EncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func newCore(w zapcore.WriteSyncer, level zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewCore(zapcore.NewJSONEncoder(EncoderConfig()), w, level)
}

func options() []zap.Option {
	return []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.DPanicLevel),
	}
}

// rotating returns a size-rotated, compressed log file
func rotating(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 5,
		LocalTime:  true,
		Compress:   true,
	}
}

// Loggers bundles the application logger with the progress logger
type Loggers struct {
	Main     *zap.Logger
	Progress *zap.Logger

	closers []io.Closer
}

// New builds loggers from cfg. Console output goes to console, usually
// os.Stderr. The progress logger also writes progress.log when file
// logging is on.
func New(cfg model.LoggingConfig, console io.Writer) (*Loggers, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var cores []zapcore.Core
	var progressCores []zapcore.Core
	l := &Loggers{}

	if cfg.Console && console != nil {
		c := newCore(zapcore.Lock(zapcore.AddSync(console)), level)
		cores = append(cores, c)
		progressCores = append(progressCores, c)
	}

	if cfg.File {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		main := rotating(filepath.Join(cfg.Dir, MainLogFile))
		progress := rotating(filepath.Join(cfg.Dir, ProgressLogFile))
		l.closers = append(l.closers, main, progress)

		mainCore := newCore(zapcore.AddSync(main), level)
		cores = append(cores, mainCore)
		progressCores = append(progressCores, mainCore, newCore(zapcore.AddSync(progress), zapcore.InfoLevel))
	}

	l.Main = zap.New(zapcore.NewTee(cores...), options()...)
	l.Progress = zap.New(zapcore.NewTee(progressCores...), options()...).Named("progress")
	return l, nil
}

// Close flushes and closes the log files
func (l *Loggers) Close() error {
	var err error
	if l.Main != nil {
		_ = l.Main.Sync()
	}
	if l.Progress != nil {
		_ = l.Progress.Sync()
	}
	for _, c := range l.closers {
		err = multierr.Append(err, c.Close())
	}
	return err
}

// Nop returns loggers that discard everything
func Nop() *Loggers {
	return &Loggers{Main: zap.NewNop(), Progress: zap.NewNop()}
}
