package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/classify"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	classifyURL    string
	classifyScores bool
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Classify a saved page without fetching it",
	Long: `Classify runs the classifier and extractors over a page saved to disk
(or read from stdin when the file is "-") and prints the record as JSON.
The --url flag supplies the address the page came from; URL patterns
decide the type when the page itself is inconclusive.

Example:
  bmpscrape classify page.html --url https://www.bookmyplayer.com/pune/rahul-chid-7
  curl -s https://www.bookmyplayer.com/x | bmpscrape classify - --url https://www.bookmyplayer.com/x --scores`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyURL, "url", "", "URL the page was fetched from")
	classifyCmd.Flags().String("mode", "scoring", "classifier mode: scoring or signature")
	classifyCmd.Flags().BoolVar(&classifyScores, "scores", false, "print per-type scores to stderr")
}

func readPage(cmd *cobra.Command, path string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open page: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return string(body), nil
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, map[string]string{"mode": "classifier.mode"})
	if err != nil {
		return err
	}
	logs, err := setupLogging(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logs.Close() }()

	body, err := readPage(cmd, args[0])
	if err != nil {
		return err
	}

	c := classify.New(cfg.Classifier.Mode, nil)
	s := pipeline.NewScraperWith(nil, c, logs.Main, nil)
	res := s.Inspect(body, classifyURL)

	if classifyScores {
		rows := []row{
			{"Mode", c.Mode()},
			{"Decided by URL", fmt.Sprint(res.FromURL)},
		}
		for _, k := range []model.Kind{model.KindVenue, model.KindCoach, model.KindPlayer} {
			if res.Scores != nil {
				rows = append(rows, row{string(k), fmt.Sprint(res.Scores[k])})
			}
		}
		printTable(cmd.ErrOrStderr(), "Classifier Scores", rows)
	}

	return writeJSON(cmd.OutOrStdout(), res.Record)
}
