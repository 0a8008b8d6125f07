// Package export writes collected records to spreadsheets, stats files and
// an optional sqlite database.
package export

import (
	"errors"
	"fmt"

	"github.com/bhargavak04/Book-My-Player-Scrape/internal/collect"
	"github.com/xuri/excelize/v2"
	"go.uber.org/multierr"
)

// ErrNothingToSave is returned when every bucket is empty
var ErrNothingToSave = errors.New("no records to save")

type sheet struct {
	name    string
	columns []string
	rows    [][]any
}

func sheetsOf(snap collect.Snapshot) []sheet {
	var out []sheet

	if len(snap.Venues) > 0 {
		s := sheet{name: SheetVenues, columns: venueColumns}
		for _, v := range snap.Venues {
			s.rows = append(s.rows, venueRow(v))
		}
		out = append(out, s)
	}
	if len(snap.Coaches) > 0 {
		s := sheet{name: SheetCoaches, columns: coachColumns}
		for _, c := range snap.Coaches {
			s.rows = append(s.rows, coachRow(c))
		}
		out = append(out, s)
	}
	if len(snap.Players) > 0 {
		s := sheet{name: SheetPlayers, columns: playerColumns}
		for _, p := range snap.Players {
			s.rows = append(s.rows, playerRow(p))
		}
		out = append(out, s)
	}
	if len(snap.Others) > 0 {
		s := sheet{name: SheetErrors, columns: errorColumns}
		for _, r := range snap.Others {
			s.rows = append(s.rows, errorRow(r))
		}
		out = append(out, s)
	}
	return out
}

// WriteWorkbook saves snap to path with one sheet per non-empty bucket
func WriteWorkbook(path string, snap collect.Snapshot) (err error) {
	sheets := sheetsOf(snap)
	if len(sheets) == 0 {
		return ErrNothingToSave
	}

	f := excelize.NewFile()
	defer func() { err = multierr.Append(err, f.Close()) }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", s.name, err)
		}

		if err := writeSheet(f, s, bold); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, s sheet, headerStyle int) error {
	header := make([]any, len(s.columns))
	for i, c := range s.columns {
		header[i] = c
	}
	if err := f.SetSheetRow(s.name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", s.name, err)
	}
	if err := f.SetRowStyle(s.name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", s.name, err)
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", s.name, i+1, err)
		}
	}
	return nil
}
