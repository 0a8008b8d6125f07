package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/logging"
	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

func setupLogging(cmd *cobra.Command, cfg *model.Config) (*logging.Loggers, error) {
	logs, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	return logs, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// row is one label/value line of a summary table
type row struct {
	label string
	value string
}

// printTable writes rows as an aligned two-column table framed by rules
func printTable(w io.Writer, title string, rows []row) {
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, runewidth.StringWidth(r.label))
	}

	width := runewidth.StringWidth(title) + 4
	for _, r := range rows {
		width = max(width, labelWidth+3+runewidth.StringWidth(r.value))
	}
	rule := strings.Repeat("═", width)

	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintln(w, rule)
	for _, r := range rows {
		fmt.Fprintf(w, "  %s : %s\n", runewidth.FillRight(r.label, labelWidth), r.value)
	}
	fmt.Fprintln(w)
}

// recordRows summarises a record for the terminal
func recordRows(r model.Record) []row {
	h := r.Meta()
	rows := []row{
		{"Type", string(r.Kind())},
		{"URL", h.SourceURL},
	}

	name, phone, email, location := model.Summary(r)
	switch r.Kind() {
	case model.KindVenue:
		rows = append(rows,
			row{"Name", model.OrPlaceholder(name, model.NoName)},
			row{"Phone", model.OrPlaceholder(phone, model.NoPhone)},
			row{"Address", model.OrPlaceholder(location, model.NoAddress)})
	case model.KindCoach, model.KindPlayer:
		rows = append(rows,
			row{"Name", model.OrPlaceholder(name, model.NoName)},
			row{"Phone", model.OrPlaceholder(phone, model.NoPhone)},
			row{"Email", model.OrPlaceholder(email, model.NoEmail)},
			row{"Location", model.OrPlaceholder(location, model.NoLocation)})
	default:
		rows = append(rows, row{"Error", model.ErrorMessage(r)})
	}
	return rows
}

// shorten truncates s to n terminal cells
func shorten(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}
