package dataprocessing

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"tabinspect/internal/dataset"
	apperrors "tabinspect/internal/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ctxCheckInterval is how many records are read between context checks
const ctxCheckInterval = 4096

func (l *Loader) loadCSV(ctx context.Context, path string) (*dataset.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open file", err)
	}
	defer f.Close()

	return l.parseCSV(ctx, f)
}

// parseCSV reads comma-separated records from r. The first record is the
// header. Short records are padded with missing cells; longer ones fail.
func (l *Loader) parseCSV(ctx context.Context, r io.Reader) (*dataset.Dataset, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewParsingError("No columns to parse from file", nil)
	}
	if err != nil {
		return nil, csvReadError(err)
	}
	if err := checkUTF8(header, 1); err != nil {
		return nil, err
	}

	var records [][]string
	for n := 0; ; n++ {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, apperrors.NewParsingError("load cancelled", err)
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvReadError(err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) > len(header) {
			return nil, apperrors.NewRowParsingError(line,
				fmt.Sprintf("Error tokenizing data. Expected %d fields, saw %d", len(header), len(record)), nil)
		}
		if err := checkUTF8(record, line); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	ds, err := dataset.Build(header, records, l.opts.Missing)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to build dataset", err)
	}
	return ds, nil
}

func csvReadError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return apperrors.NewRowParsingError(pe.Line, "Error tokenizing data", pe.Err)
	}
	return apperrors.NewParsingError("failed to read CSV", err)
}

func checkUTF8(record []string, line int) error {
	for _, field := range record {
		if !utf8.ValidString(field) {
			return apperrors.NewRowParsingError(line, "'utf-8' codec can't decode field", nil).
				WithContext("encoding", "utf-8")
		}
	}
	return nil
}
