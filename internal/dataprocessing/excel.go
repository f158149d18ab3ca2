package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tabinspect/internal/dataset"
	apperrors "tabinspect/internal/errors"
)

// loadExcel reads one worksheet of a workbook. Blank rows are skipped
// anywhere in the sheet and the first remaining row is the header. Legacy BIFF .xls files are not zip packages and fail to open.
func (l *Loader) loadExcel(ctx context.Context, path string) (*dataset.Dataset, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", apperrors.NewParsingError("workbook contains no worksheets", nil)
	}

	sheetName := l.opts.Sheet
	if sheetName == "" {
		sheetName = sheets[0]
	} else if !slices.Contains(sheets, sheetName) {
		return nil, "", apperrors.NewParsingError(fmt.Sprintf("Worksheet named '%s' not found", sheetName), nil).
			WithContext("sheets", sheets)
	}

	rows, err := readCells(f, sheetName)
	if err != nil {
		return nil, sheetName, apperrors.NewParsingError(fmt.Sprintf("failed to read worksheet '%s'", sheetName), err)
	}

	if err := ctx.Err(); err != nil {
		return nil, sheetName, apperrors.NewParsingError("load cancelled", err)
	}

	rows = dropBlankRows(rows)
	if len(rows) == 0 {
		return nil, sheetName, apperrors.NewParsingError("No columns to parse from file", nil).
			WithContext("sheet", sheetName)
	}

	l.logger.DebugContext(ctx, "worksheet read",
		slog.String("sheet", sheetName),
		slog.Int("total_rows", len(rows)))

	header, records := rows[0], rows[1:]

	// Cells to the right of the header become unnamed columns.
	width := len(header)
	for _, rec := range records {
		width = max(width, len(rec))
	}
	for len(header) < width {
		header = append(header, "")
	}

	ds, err := dataset.Build(header, records, l.opts.Missing)
	if err != nil {
		return nil, sheetName, apperrors.NewParsingError("failed to build dataset", err)
	}
	return ds, sheetName, nil
}

// readCells returns the worksheet as text. Numeric cells are read as their
// stored value rather than their display text, so "1,234.50" or "12%"
// still infer as numbers; numeric cells with a date format are converted
// to ISO dates. Text and boolean cells keep their display text.
func readCells(f *excelize.File, sheet string) ([][]string, error) {
	display, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	dateStyles := make(map[int]bool)

	rows := make([][]string, max(len(display), len(raw)))
	for r := range rows {
		var shown, stored []string
		if r < len(display) {
			shown = display[r]
		}
		if r < len(raw) {
			stored = raw[r]
		}

		row := make([]string, max(len(shown), len(stored)))
		for c := range row {
			var text, value string
			if c < len(shown) {
				text = shown[c]
			}
			if c < len(stored) {
				value = stored[c]
			}
			row[c] = resolveCell(text, value, func() bool {
				return isDateCell(f, sheet, c, r, dateStyles)
			}, date1904)
		}
		rows[r] = row
	}
	return rows, nil
}

// resolveCell picks the text for one cell from its display text and its
// stored value.
func resolveCell(text, value string, isDate func() bool, date1904 bool) string {
	if text == value || value == "" {
		return text
	}
	num, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return text
	}
	// Boolean cells store 1/0.
	if strings.EqualFold(text, "TRUE") || strings.EqualFold(text, "FALSE") {
		return text
	}
	if isDate() {
		t, err := excelize.ExcelDateToTime(num, date1904)
		if err != nil {
			return text
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	}
	return value
}

// builtInDateFormats are the built-in number format ids that render dates
// or times.
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true,
	20: true, 21: true, 22: true, 45: true, 46: true, 47: true,
}

// isDateCell reports whether the cell at zero-based (col, row) has a date or
// time number format. Results are cached per style id.
func isDateCell(f *excelize.File, sheet string, col, row int, cache map[int]bool) bool {
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return false
	}
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}
	if isDate, ok := cache[styleID]; ok {
		return isDate
	}

	isDate := false
	if style, err := f.GetStyle(styleID); err == nil {
		switch {
		case style.CustomNumFmt != nil:
			isDate = isDateFormatCode(*style.CustomNumFmt)
		default:
			isDate = builtInDateFormats[style.NumFmt]
		}
	}
	cache[styleID] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom number format code contains
// date or time tokens outside quoted literals, escapes and [...] sections.
func isDateFormatCode(code string) bool {
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			inBracket = ch != ']'
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case strings.IndexByte("yYmMdDhHsS", ch) >= 0:
			return true
		}
	}
	return false
}

// dropBlankRows removes rows whose cells are all empty or whitespace,
// wherever they occur in the sheet
func dropBlankRows(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		blank := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				blank = false
				break
			}
		}
		if !blank {
			out = append(out, row)
		}
	}
	return out
}
