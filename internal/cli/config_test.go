package cli

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newTestViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	require.NoError(t, configureViper(v))
	return v
}

func TestDecodeConfig_Defaults(t *testing.T) {
	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestDecodeConfig_LegacyEnv(t *testing.T) {
	t.Setenv("REQUEST_DELAY", "2.5")
	t.Setenv("TIMEOUT", "45")
	t.Setenv("MAX_WORKERS", "4")
	t.Setenv("AUTO_SAVE_INTERVAL", "250")
	t.Setenv("INPUT_FILE", "urls.csv")

	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, 2500*time.Millisecond, cfg.RateLimiting.Delay)
	assert.Equal(t, 45*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 4, cfg.Concurrency.Workers)
	assert.Equal(t, 250, cfg.Batch.AutoSaveInterval)
	assert.Equal(t, "urls.csv", cfg.Batch.InputFile)
}

func TestDecodeConfig_PrefixedEnvWins(t *testing.T) {
	t.Setenv("TIMEOUT", "45")
	t.Setenv("BMPSCRAPE_HTTP_TIMEOUT", "10s")
	t.Setenv("BMPSCRAPE_CLASSIFIER_MODE", "signature")

	cfg, err := decodeConfig(newTestViper(t))
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, model.ModeSignature, cfg.Classifier.Mode)
}

func TestDecodeConfig_Invalid(t *testing.T) {
	t.Setenv("BMPSCRAPE_CONCURRENCY_WORKERS", "0")

	_, err := decodeConfig(newTestViper(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidWorkers)
}

func TestDecodeConfig_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  start_from: 5000\nrate_limiting:\n  delay: 3\n"), 0o644))

	v := newTestViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Batch.StartFrom)
	assert.Equal(t, 3*time.Second, cfg.RateLimiting.Delay)
}

func TestDecodeConfig_HostRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "rate_limiting:\n  host_rates:\n    - host: www.bookmyplayer.com\n      requests_per_second: 0.5\n      burst_size: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	v := newTestViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, []model.HostRate{
		{Host: "www.bookmyplayer.com", RequestsPerSecond: 0.5, BurstSize: 2},
	}, cfg.RateLimiting.HostRates)
}

func TestBindFlags(t *testing.T) {
	v := newTestViper(t)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 1, "")
	fs.Duration("delay", time.Second, "")

	require.NoError(t, bindFlags(v, fs, map[string]string{
		"workers": "concurrency.workers",
		"delay":   "rate_limiting.delay",
	}))
	require.NoError(t, fs.Parse([]string{"--workers", "8"}))

	cfg, err := decodeConfig(v)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Concurrency.Workers)
	assert.Equal(t, time.Second, cfg.RateLimiting.Delay)

	err = bindFlags(v, fs, map[string]string{"nope": "x"})
	assert.Error(t, err)
}

func TestFlatten(t *testing.T) {
	flat, err := flatten(model.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, "30s", flat["http.timeout"])
	assert.Equal(t, 1, flat["concurrency.workers"])
	assert.Equal(t, "bookmyplayer", flat["output.file_prefix"])
	assert.Contains(t, flat, "logging.level")
	assert.NotContains(t, flat, "http")
}

func TestSecondsToDuration(t *testing.T) {
	durType := reflect.TypeOf(time.Duration(0))
	strType := reflect.TypeOf("")

	tests := []struct {
		name string
		to   reflect.Type
		in   any
		want any
	}{
		{"fractional string", durType, "2.5", 2500 * time.Millisecond},
		{"padded string", durType, " 30 ", 30 * time.Second},
		{"int", durType, 3, 3 * time.Second},
		{"float", durType, 0.5, 500 * time.Millisecond},
		{"unit string passes through", durType, "1m", "1m"},
		{"other target untouched", strType, "2.5", "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := secondsToDuration(reflect.TypeOf(tt.in), tt.to, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, writeDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# bmpscrape configuration")

	var got model.Config
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, *model.DefaultConfig(), got)

	err = writeDefaultConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
