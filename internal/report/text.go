package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	apperrors "tabinspect/internal/errors"
	"tabinspect/pkg/contracts/domain"
)

const (
	successIndicator = "✅"
	warningIndicator = "⚠️"
)

// TextRenderer writes the human-readable console report
type TextRenderer struct{}

// Render writes r section by section
func (t *TextRenderer) Render(w io.Writer, r *domain.InspectionReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Loading data from: %s\n", r.Source)
	fmt.Fprintf(bw, "Successfully loaded %d rows and %d columns\n\n", r.Shape.Rows, r.Shape.Columns)

	fmt.Fprintln(bw, "=== DATASET INFORMATION ===")
	fmt.Fprintf(bw, "Shape: %s\n", r.Shape)
	fmt.Fprintf(bw, "Columns: %s\n", pyList(r.Columns))

	fmt.Fprintf(bw, "\n=== FIRST %d ROWS ===\n", r.HeadLimit)
	writeHead(bw, r)

	fmt.Fprintln(bw, "\n=== DATA TYPES ===")
	writeDTypes(bw, r.DTypes)

	fmt.Fprintln(bw, "\n=== SUMMARY STATISTICS ===")
	switch {
	case len(r.NumericSummary) > 0:
		writeNumericSummary(bw, r.NumericSummary)
	case len(r.CategoricalSummary) > 0:
		writeCategoricalSummary(bw, r.CategoricalSummary)
	default:
		fmt.Fprintln(bw, "Empty DataFrame")
	}

	fmt.Fprintln(bw, "\n=== MISSING VALUES ===")
	writeMissing(bw, r.Missing)
	if r.HasMissing() {
		fmt.Fprintf(bw, "%s  Total missing values: %d\n", warningIndicator, r.TotalMissing)
	} else {
		fmt.Fprintf(bw, "%s No missing values found!\n", successIndicator)
	}

	return bw.Flush()
}

// RenderError writes a one-line failure message. Not-found paths get their
// own message; every other failure is reported as a processing error after
// the loading banner.
func (t *TextRenderer) RenderError(w io.Writer, path string, err error) error {
	if apperrors.IsNotFound(err) {
		_, werr := fmt.Fprintf(w, "Error: %s\n", apperrors.Detail(err))
		return werr
	}
	_, werr := fmt.Fprintf(w, "Loading data from: %s\nError processing file: %s\n", path, apperrors.Detail(err))
	return werr
}

// Separator is a blank line between reports
func (t *TextRenderer) Separator() string { return "\n" }

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
}

func writeHead(w io.Writer, r *domain.InspectionReport) {
	if r.Shape.Rows == 0 {
		fmt.Fprintln(w, "Empty DataFrame")
		fmt.Fprintf(w, "Columns: %s\n", pyList(r.Columns))
		fmt.Fprintln(w, "Index: []")
		return
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(r.Columns, "\t"))
	for _, row := range r.Head {
		fmt.Fprintf(tw, "%d\t%s\t\n", row.Index, strings.Join(row.Values, "\t"))
	}
	tw.Flush()
}

func writeDTypes(w io.Writer, dtypes []domain.ColumnType) {
	labels := make([]string, len(dtypes))
	values := make([]string, len(dtypes))
	for i, d := range dtypes {
		labels[i], values[i] = d.Column, d.DType
	}
	writeSeries(w, labels, values)
	fmt.Fprintln(w, "dtype: object")
}

// writeSeries prints label/value pairs, labels left-aligned and values
// right-aligned.
func writeSeries(w io.Writer, labels, values []string) {
	lw, vw := 0, 0
	for i := range labels {
		lw = max(lw, len(labels[i]))
		vw = max(vw, len(values[i]))
	}
	for i := range labels {
		fmt.Fprintf(w, "%-*s    %*s\n", lw, labels[i], vw, values[i])
	}
}

func writeNumericSummary(w io.Writer, stats []domain.NumericSummary) {
	tw := newTable(w)

	header := make([]string, len(stats))
	for i, s := range stats {
		header[i] = s.Column
	}
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(header, "\t"))

	rows := []struct {
		label string
		value func(domain.NumericSummary) domain.Stat
	}{
		{"count", func(s domain.NumericSummary) domain.Stat { return domain.Stat(s.Count) }},
		{"mean", func(s domain.NumericSummary) domain.Stat { return s.Mean }},
		{"std", func(s domain.NumericSummary) domain.Stat { return s.Std }},
		{"min", func(s domain.NumericSummary) domain.Stat { return s.Min }},
		{"25%", func(s domain.NumericSummary) domain.Stat { return s.Q25 }},
		{"50%", func(s domain.NumericSummary) domain.Stat { return s.Median }},
		{"75%", func(s domain.NumericSummary) domain.Stat { return s.Q75 }},
		{"max", func(s domain.NumericSummary) domain.Stat { return s.Max }},
	}
	for _, row := range rows {
		cells := make([]string, len(stats))
		for i, s := range stats {
			cells[i] = formatStat(row.value(s))
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", row.label, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

func writeCategoricalSummary(w io.Writer, stats []domain.CategoricalSummary) {
	tw := newTable(w)

	header := make([]string, len(stats))
	counts := make([]string, len(stats))
	uniques := make([]string, len(stats))
	tops := make([]string, len(stats))
	freqs := make([]string, len(stats))
	for i, s := range stats {
		header[i] = s.Column
		counts[i] = strconv.Itoa(s.Count)
		uniques[i] = strconv.Itoa(s.Unique)
		tops[i] = s.Top
		freqs[i] = strconv.Itoa(s.Freq)
		if s.Count == 0 {
			tops[i], freqs[i] = "NaN", "NaN"
		}
	}
	fmt.Fprintf(tw, "\t%s\t\n", strings.Join(header, "\t"))
	fmt.Fprintf(tw, "count\t%s\t\n", strings.Join(counts, "\t"))
	fmt.Fprintf(tw, "unique\t%s\t\n", strings.Join(uniques, "\t"))
	fmt.Fprintf(tw, "top\t%s\t\n", strings.Join(tops, "\t"))
	fmt.Fprintf(tw, "freq\t%s\t\n", strings.Join(freqs, "\t"))
	tw.Flush()
}

func writeMissing(w io.Writer, missing []domain.MissingCount) {
	labels := make([]string, len(missing))
	values := make([]string, len(missing))
	for i, m := range missing {
		labels[i], values[i] = m.Column, strconv.Itoa(m.Count)
	}
	writeSeries(w, labels, values)
	fmt.Fprintln(w, "dtype: int64")
}

func formatStat(s domain.Stat) string {
	switch {
	case s.IsNaN():
		return "NaN"
	case math.IsInf(float64(s), 1):
		return "inf"
	case math.IsInf(float64(s), -1):
		return "-inf"
	}
	return strconv.FormatFloat(float64(s), 'f', 6, 64)
}

// pyList renders names as a bracketed, single-quoted list: ['a', 'b']
func pyList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + strings.ReplaceAll(n, "'", `\'`) + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
