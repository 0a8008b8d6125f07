package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	scanOut     string
	scanTimeout time.Duration
)

var scanCmd = &cobra.Command{
	Use:   "scan <url>",
	Short: "Scrape a single BookMyPlayer page",
	Long: `Scan fetches one page, classifies it as a venue, coach or player profile
and prints the extracted record as JSON.

Example:
  bmpscrape scan https://www.bookmyplayer.com/pune/ace-cricket-academy-aid-100
  bmpscrape scan https://www.bookmyplayer.com/pune/rahul-chid-7 --out rahul.json
  bmpscrape scan https://www.bookmyplayer.com/pune/x --mode signature`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

// flags shared by scan and batch, keyed by config path
var fetchFlagKeys = map[string]string{
	"timeout":     "http.timeout",
	"ua":          "http.user_agent",
	"max-bytes":   "http.max_body_bytes",
	"retries":     "http.max_retries",
	"insecure":    "http.insecure_tls",
	"robots":      "http.respect_robots",
	"http-proxy":  "http.http_proxy",
	"https-proxy": "http.https_proxy",
	"cache":       "cache.enabled",
	"mode":        "classifier.mode",
}

func addFetchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Duration("timeout", 30*time.Second, "per-request HTTP timeout")
	f.String("ua", "", "HTTP User-Agent")
	f.Int64("max-bytes", 5<<20, "max response bytes to read")
	f.Int("retries", 3, "attempts per URL")
	f.Bool("insecure", false, "skip TLS certificate verification")
	f.Bool("robots", false, "honour robots.txt")
	f.String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	f.String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	f.Bool("cache", false, "cache fetched pages on disk")
	f.String("mode", "scoring", "classifier mode: scoring or signature")
}

func init() {
	rootCmd.AddCommand(scanCmd)

	addFetchFlags(scanCmd)
	scanCmd.Flags().StringVar(&scanOut, "out", "", "also write the record JSON to this file")
	scanCmd.Flags().DurationVar(&scanTimeout, "deadline", 2*time.Minute, "overall deadline including retries")
}

func runScan(cmd *cobra.Command, args []string) error {
	url := args[0]

	cfg, err := loadConfig(cmd, presentFlags(cmd, fetchFlagKeys))
	if err != nil {
		return err
	}
	logs, err := setupLogging(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logs.Close() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), scanTimeout)
	defer cancel()

	rec := pipeline.NewScraper(cfg, logs.Main).Scrape(ctx, url)

	if err := writeJSON(cmd.OutOrStdout(), rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	if scanOut != "" {
		f, err := os.Create(scanOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := writeJSON(f, rec); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if verbose {
		printTable(cmd.ErrOrStderr(), "Scan Result", recordRows(rec))
	}
	return nil
}

// presentFlags keeps the keys whose flags cmd defines
func presentFlags(cmd *cobra.Command, keys map[string]string) map[string]string {
	out := make(map[string]string, len(keys))
	for name, key := range keys {
		if cmd.Flags().Lookup(name) != nil {
			out[name] = key
		}
	}
	return out
}
