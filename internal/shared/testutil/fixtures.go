package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// WriteFile writes content to name inside dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteCSV writes content to a new CSV file in a fresh temporary directory
func WriteCSV(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "data.csv", content)
}

// Sheet is one worksheet of a workbook fixture. Rows are written as-is,
// so numbers stay numeric cells. ColumnStyles applies a style, keyed by
// zero-based column, to every row after the header.
type Sheet struct {
	Name         string
	Rows         [][]interface{}
	ColumnStyles map[int]*excelize.Style
}

// WriteWorkbook builds an .xlsx file at dir/name with the given sheets, in
// order. The first sheet replaces excelize's default "Sheet1".
func WriteWorkbook(t *testing.T, dir, name string, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sh := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", sh.Name))
		} else {
			_, err := f.NewSheet(sh.Name)
			require.NoError(t, err)
		}
		for r, row := range sh.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(sh.Name, cell, &row))
		}
		for col, style := range sh.ColumnStyles {
			if len(sh.Rows) < 2 {
				break
			}
			id, err := f.NewStyle(style)
			require.NoError(t, err)
			first, err := excelize.CoordinatesToCellName(col+1, 2)
			require.NoError(t, err)
			last, err := excelize.CoordinatesToCellName(col+1, len(sh.Rows))
			require.NoError(t, err)
			require.NoError(t, f.SetCellStyle(sh.Name, first, last, id))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, f.SaveAs(path))
	return path
}
