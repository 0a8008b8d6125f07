package model

import (
	"errors"
	"fmt"
	"time"
)

// Configuration validation errors
var (
	ErrInvalidTimeout        = errors.New("http.timeout must be positive")
	ErrInvalidMaxRetries     = errors.New("http.max_retries must be at least 1")
	ErrInvalidMaxBodyBytes   = errors.New("http.max_body_bytes must be positive")
	ErrInvalidWorkers        = errors.New("concurrency.workers must be at least 1")
	ErrInvalidRate           = errors.New("rate_limiting.requests_per_second must be non-negative")
	ErrInvalidDelay          = errors.New("rate_limiting.delay must be non-negative")
	ErrInvalidHostRate       = errors.New("rate_limiting.host_rates entries need a host and a non-negative rate")
	ErrInvalidStartFrom      = errors.New("batch.start_from must be non-negative")
	ErrInvalidAutoSave       = errors.New("batch.auto_save_interval must be at least 1")
	ErrMissingOutputDir      = errors.New("output.dir is required")
	ErrInvalidClassifierMode = errors.New("classifier.mode must be one of: scoring, signature")
	ErrInvalidLogLevel       = errors.New("logging.level must be one of: debug, info, warn, error")
)

// Classifier modes
const (
	ModeScoring   = "scoring"
	ModeSignature = "signature"
)

// DefaultUserAgent is the browser user agent the site serves full pages to
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Config is the complete runtime configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Batch        BatchConfig        `yaml:"batch" mapstructure:"batch"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Classifier   ClassifierConfig   `yaml:"classifier" mapstructure:"classifier"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// HTTPConfig controls page fetching
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	MaxRetries    int           `yaml:"max_retries" mapstructure:"max_retries"` // total attempts per URL
	RetryInitial  time.Duration `yaml:"retry_initial" mapstructure:"retry_initial"`
	RetryMax      time.Duration `yaml:"retry_max" mapstructure:"retry_max"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	InsecureTLS   bool          `yaml:"insecure_tls" mapstructure:"insecure_tls"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// CacheConfig controls the page body cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig controls the batch worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RateLimitingConfig controls request pacing per domain
type RateLimitingConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"` // 0 disables the token bucket
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	Delay             time.Duration `yaml:"delay" mapstructure:"delay"` // fixed pause after each request
	HostRates         []HostRate    `yaml:"host_rates,omitempty" mapstructure:"host_rates"`
}

// HostRate overrides the request rate for one host
type HostRate struct {
	Host              string  `yaml:"host" mapstructure:"host"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// BatchConfig controls batch input and checkpointing
type BatchConfig struct {
	InputFile        string `yaml:"input_file" mapstructure:"input_file"`
	URLColumn        string `yaml:"url_column" mapstructure:"url_column"` // header name or zero-based index
	StartFrom        int    `yaml:"start_from" mapstructure:"start_from"`
	AutoSaveInterval int    `yaml:"auto_save_interval" mapstructure:"auto_save_interval"`
}

// OutputConfig controls where results are written
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	FilePrefix string `yaml:"file_prefix" mapstructure:"file_prefix"`
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"` // empty disables the sqlite sink
}

// ClassifierConfig selects the content-type detection strategy
type ClassifierConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"`
}

// LoggingConfig controls log sinks
type LoggingConfig struct {
	Level   string `yaml:"level" mapstructure:"level"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Console bool   `yaml:"console" mapstructure:"console"`
	File    bool   `yaml:"file" mapstructure:"file"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     DefaultUserAgent,
			MaxBodyBytes:  5_000_000,
			MaxRetries:    3,
			RetryInitial:  time.Second,
			RetryMax:      8 * time.Second,
			RespectRobots: false,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       ".bmpscrape-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         1,
			Delay:             time.Second,
		},
		Batch: BatchConfig{
			InputFile:        "BookMyPlayer.xlsx",
			URLColumn:        "url",
			StartFrom:        0,
			AutoSaveInterval: 1000,
		},
		Output: OutputConfig{
			Dir:        "output",
			FilePrefix: "bookmyplayer",
		},
		Classifier: ClassifierConfig{
			Mode: ModeScoring,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Dir:     "logs",
			Console: true,
			File:    true,
		},
	}
}

// Validate checks the configuration for values the scraper cannot run with
func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.HTTP.MaxRetries < 1 {
		return ErrInvalidMaxRetries
	}
	if c.HTTP.MaxBodyBytes <= 0 {
		return ErrInvalidMaxBodyBytes
	}
	if c.Concurrency.Workers < 1 {
		return ErrInvalidWorkers
	}
	if c.RateLimiting.RequestsPerSecond < 0 {
		return ErrInvalidRate
	}
	if c.RateLimiting.Delay < 0 {
		return ErrInvalidDelay
	}
	for _, hr := range c.RateLimiting.HostRates {
		if hr.Host == "" || hr.RequestsPerSecond < 0 {
			return fmt.Errorf("%w: got %+v", ErrInvalidHostRate, hr)
		}
	}
	if c.Batch.StartFrom < 0 {
		return ErrInvalidStartFrom
	}
	if c.Batch.AutoSaveInterval < 1 {
		return ErrInvalidAutoSave
	}
	if c.Output.Dir == "" {
		return ErrMissingOutputDir
	}

	switch c.Classifier.Mode {
	case ModeScoring, ModeSignature:
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidClassifierMode, c.Classifier.Mode)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return nil
}
