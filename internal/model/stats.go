package model

import "time"

// Stats is a point-in-time snapshot of batch progress
type Stats struct {
	Processed     int           `json:"processed"`
	Success       int           `json:"success"`
	Errors        int           `json:"errors"`
	Venues        int           `json:"venues"`
	Coaches       int           `json:"coaches"`
	Players       int           `json:"players"`
	Others        int           `json:"others"`
	Elapsed       time.Duration `json:"-"`
	RatePerSecond float64       `json:"-"`
	RatePerMinute float64       `json:"-"`
}

// SaveStats is the stats document written next to each spreadsheet
type SaveStats struct {
	Processed int    `json:"processed"`
	Success   int    `json:"success"`
	Errors    int    `json:"errors"`
	Venues    int    `json:"venues"`
	Coaches   int    `json:"coaches"`
	Players   int    `json:"players"`
	Others    int    `json:"others"`
	RunID     string `json:"run_id"`
	Timestamp string `json:"timestamp"`
	Filename  string `json:"filename"`
}

// NewSaveStats copies the counters of s into a stats document
func NewSaveStats(s Stats, runID, timestamp, filename string) SaveStats {
	return SaveStats{
		Processed: s.Processed,
		Success:   s.Success,
		Errors:    s.Errors,
		Venues:    s.Venues,
		Coaches:   s.Coaches,
		Players:   s.Players,
		Others:    s.Others,
		RunID:     runID,
		Timestamp: timestamp,
		Filename:  filename,
	}
}
