package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/model"
)

// WriteStats writes the stats document as indented JSON
func WriteStats(path string, s model.SaveStats) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
