package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// legacyEnv maps the environment names of earlier deployments onto config keys
var legacyEnv = map[string]string{
	"batch.auto_save_interval": "AUTO_SAVE_INTERVAL",
	"rate_limiting.delay":      "REQUEST_DELAY",
	"batch.input_file":         "INPUT_FILE",
	"batch.url_column":         "URL_COLUMN",
	"batch.start_from":         "START_FROM",
	"http.timeout":             "TIMEOUT",
	"http.max_retries":         "MAX_RETRIES",
	"http.user_agent":          "USER_AGENT",
	"output.dir":               "OUTPUT_DIR",
	"logging.dir":              "LOG_DIR",
	"concurrency.workers":      "MAX_WORKERS",
}

const envPrefix = "BMPSCRAPE"

// configureViper registers every config key with its default and binds the
// BMPSCRAPE_* and legacy environment names
func configureViper(v *viper.Viper) error {
	defaults, err := flatten(model.DefaultConfig())
	if err != nil {
		return err
	}
	for key, val := range defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, legacy := range legacyEnv {
		prefixed := envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return fmt.Errorf("bind env %s: %w", legacy, err)
		}
	}
	return nil
}

// flatten turns cfg into dotted keys, e.g. "http.timeout"
func flatten(cfg *model.Config) (map[string]any, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal defaults: %w", err)
	}

	out := make(map[string]any)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, val := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if sub, ok := val.(map[string]any); ok {
				walk(key, sub)
				continue
			}
			out[key] = val
		}
	}
	walk("", tree)
	return out, nil
}

// secondsToDuration reads bare numbers as seconds, as the legacy TIMEOUT and
// REQUEST_DELAY variables were
func secondsToDuration(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch d := data.(type) {
	case string:
		secs, err := strconv.ParseFloat(strings.TrimSpace(d), 64)
		if err != nil {
			return data, nil
		}
		return time.Duration(secs * float64(time.Second)), nil
	case int:
		return time.Duration(d) * time.Second, nil
	case float64:
		return time.Duration(d * float64(time.Second)), nil
	}
	return data, nil
}

// decodeConfig builds and validates the effective configuration
func decodeConfig(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		secondsToDuration,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, hook); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if verbose {
		cfg.Logging.Level = "debug"
	} else if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadConfig binds the command's flags and returns the effective config
func loadConfig(cmd *cobra.Command, flagKeys map[string]string) (*model.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	v := viper.GetViper()
	if err := bindFlags(v, cmd.Flags(), flagKeys); err != nil {
		return nil, err
	}
	return decodeConfig(v)
}

// bindFlags binds flag names to config keys; only flags the user set
// override lower layers
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, flagKeys map[string]string) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("unknown flag %q", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func defaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, ".bmpscrape", "config.yaml"), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage bmpscrape configuration",
	Long: `Manage bmpscrape configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (BMPSCRAPE_*, plus AUTO_SAVE_INTERVAL, REQUEST_DELAY,
   INPUT_FILE, URL_COLUMN, START_FROM, TIMEOUT, MAX_RETRIES, USER_AGENT,
   OUTPUT_DIR, LOG_DIR, MAX_WORKERS)
3. Config file (~/.bmpscrape/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, nil)
		if err != nil {
			return err
		}

		if f := viper.ConfigFileUsed(); f != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", f)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (defaults and environment only)\n\n")
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long:  `Create ~/.bmpscrape/config.yaml (or the --config path) with every option at its default.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			p, err := defaultConfigPath()
			if err != nil {
				return err
			}
			path = p
		}
		if err := writeDefaultConfig(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Created default configuration: %s\n", path)
		return nil
	},
}

const configHeader = `# bmpscrape configuration
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (BMPSCRAPE_*, e.g. BMPSCRAPE_HTTP_TIMEOUT=45s)
#   3. This config file
#   4. Built-in defaults

`

// writeDefaultConfig writes the defaults to path, refusing to overwrite
func writeDefaultConfig(path string) (err error) {
	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'bmpscrape config show' to view it, or delete it first to recreate", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	if _, err := f.WriteString(configHeader); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
