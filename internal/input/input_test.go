package input

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "BookMyPlayer.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_TextFile(t *testing.T) {
	content := `# BookMyPlayer sample
https://www.bookmyplayer.com/pune/a-aid-1

https://www.bookmyplayer.com/pune/b-chid-2
https://www.bookmyplayer.com/pune/a-aid-1
`
	path := writeFile(t, "urls.txt", content)

	res, err := Load(path, Options{Dedup: true})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{
		"https://www.bookmyplayer.com/pune/a-aid-1",
		"https://www.bookmyplayer.com/pune/b-chid-2",
	}
	if !reflect.DeepEqual(res.URLs, want) {
		t.Errorf("URLs = %v, want %v", res.URLs, want)
	}
	if res.Total != 3 || res.Duplicates != 1 {
		t.Errorf("Total = %d, Duplicates = %d; want 3, 1", res.Total, res.Duplicates)
	}
}

func TestLoad_NoDedupKeepsRepeats(t *testing.T) {
	path := writeFile(t, "urls.txt", "a\nb\na\n")

	res, err := Load(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.URLs) != 3 {
		t.Errorf("expected 3 URLs, got %v", res.URLs)
	}
}

func TestLoad_CSV(t *testing.T) {
	content := "id,url,city\n1,https://x/1,Pune\n2,,Delhi\n3, https://x/3 ,Goa\n"
	path := writeFile(t, "input.csv", content)

	tests := []struct {
		name   string
		column string
		want   []string
	}{
		{"by name", "url", []string{"https://x/1", "https://x/3"}},
		{"by index", "1", []string{"https://x/1", "https://x/3"}},
		{"other column", "city", []string{"Pune", "Delhi", "Goa"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Load(path, Options{Column: tt.column})
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(res.URLs, tt.want) {
				t.Errorf("URLs = %v, want %v", res.URLs, tt.want)
			}
		})
	}
}

func TestLoad_Workbook(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"url", "note"},
		{"https://www.bookmyplayer.com/1", "a"},
		{"https://www.bookmyplayer.com/2", "b"},
		{"", "blank"},
		{"https://www.bookmyplayer.com/3", "c"},
	})

	res, err := Load(path, Options{Column: "url", StartFrom: 1})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"https://www.bookmyplayer.com/2", "https://www.bookmyplayer.com/3"}
	if !reflect.DeepEqual(res.URLs, want) {
		t.Errorf("URLs = %v, want %v", res.URLs, want)
	}
	if res.Total != 3 || res.Skipped != 1 {
		t.Errorf("Total = %d, Skipped = %d; want 3, 1", res.Total, res.Skipped)
	}
}

func TestLoad_WorkbookColumnIndex(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"Links"},
		{"https://www.bookmyplayer.com/1"},
	})

	res, err := Load(path, Options{Column: "0"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.URLs) != 1 {
		t.Errorf("URLs = %v", res.URLs)
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeFile(t, "input.csv", "id,link\n1,https://x\n")

	_, err := Load(path, Options{Column: "url"})
	if !errors.Is(err, ErrColumnNotFound) {
		t.Errorf("expected ErrColumnNotFound, got %v", err)
	}
}

func TestLoad_StartFromPastEnd(t *testing.T) {
	path := writeFile(t, "urls.txt", "a\nb\n")

	res, err := Load(path, Options{StartFrom: 10})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.URLs) != 0 || res.Skipped != 2 {
		t.Errorf("URLs = %v, Skipped = %d", res.URLs, res.Skipped)
	}
}

func TestLoad_NonExistent(t *testing.T) {
	for _, name := range []string{"missing.txt", "missing.csv", "missing.xlsx"} {
		if _, err := Load(filepath.Join(t.TempDir(), name), Options{Column: "url"}); err == nil {
			t.Errorf("Load(%s) expected error", name)
		}
	}
}

func TestLoad_EmptyCSV(t *testing.T) {
	path := writeFile(t, "empty.csv", "")

	if _, err := Load(path, Options{Column: "url"}); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("expected ErrEmptySheet, got %v", err)
	}
}
