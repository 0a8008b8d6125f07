// Package input loads the URL list for a batch run from a spreadsheet, a
// CSV file or a plain text file.
package input

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/xuri/excelize/v2"
)

var (
	ErrColumnNotFound = errors.New("column not found")
	ErrEmptySheet     = errors.New("sheet has no rows")
)

// Options controls which cells become URLs
type Options struct {
	Column    string // header name or zero-based index; spreadsheet and CSV only
	StartFrom int    // skip this many non-blank entries
	Dedup     bool
}

// Result is the loaded URL list
type Result struct {
	URLs       []string
	Total      int // non-blank entries before StartFrom
	Skipped    int
	Duplicates int
}

// Load reads URLs from path. .xlsx and .csv files read one column below a
// header row; anything else is one URL per line with # comments.
func Load(path string, opts Options) (*Result, error) {
	var (
		values []string
		err    error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		values, err = readWorkbook(path, opts.Column)
	case ".csv":
		values, err = readCSV(path, opts.Column)
	default:
		values, err = readLines(path)
	}
	if err != nil {
		return nil, err
	}

	return selectURLs(values, opts), nil
}

func selectURLs(values []string, opts Options) *Result {
	res := &Result{Total: len(values)}

	if opts.StartFrom > 0 {
		n := min(opts.StartFrom, len(values))
		res.Skipped = n
		values = values[n:]
	}

	if !opts.Dedup {
		res.URLs = values
		return res
	}

	seen := bloom.NewWithEstimates(uint(max(len(values), 1)), 1e-9)
	for _, v := range values {
		if seen.TestAndAddString(v) {
			res.Duplicates++
			continue
		}
		res.URLs = append(res.URLs, v)
	}
	return res
}

func readWorkbook(path, column string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return columnValues(rows, column)
}

func readCSV(path, column string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return columnValues(rows, column)
}

// columnValues returns the non-blank cells of column below the header row
func columnValues(rows [][]string, column string) ([]string, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	idx, err := resolveColumn(rows[0], column)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, row := range rows[1:] {
		if idx >= len(row) {
			continue
		}
		if v := strings.TrimSpace(row[idx]); v != "" {
			out = append(out, v)
		}
	}
	return out, nil
}

func resolveColumn(header []string, column string) (int, error) {
	column = strings.TrimSpace(column)
	for i, h := range header {
		if strings.TrimSpace(h) == column {
			return i, nil
		}
	}
	if i, err := strconv.Atoi(column); err == nil && i >= 0 && i < len(header) {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q (available: %s)", ErrColumnNotFound, column, strings.Join(header, ", "))
}

func readLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var out []string
	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return out, nil
}
