package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Column is a named sequence of cells of a single inferred kind
type Column struct {
	Name string
	Kind Kind

	raw     []string
	missing []bool
	nums    []float64
	times   []time.Time
	bools   []bool
}

// Len returns the number of cells in the column
func (c *Column) Len() int {
	return len(c.raw)
}

// IsMissing reports whether cell i is missing
func (c *Column) IsMissing(i int) bool {
	return c.missing[i]
}

// Raw returns the cell text as it appeared in the file
func (c *Column) Raw(i int) string {
	return c.raw[i]
}

// MissingCount returns the number of missing cells
func (c *Column) MissingCount() int {
	n := 0
	for _, m := range c.missing {
		if m {
			n++
		}
	}
	return n
}

// Float returns the numeric value of cell i. ok is false for missing cells
// and for non-numeric columns.
func (c *Column) Float(i int) (float64, bool) {
	if !c.Kind.IsNumeric() || c.missing[i] {
		return 0, false
	}
	return c.nums[i], true
}

// Floats returns the non-missing numeric values in row order. It returns
// nil for non-numeric columns.
func (c *Column) Floats() []float64 {
	if !c.Kind.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.nums))
	for i, v := range c.nums {
		if !c.missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Values returns the raw text of the non-missing cells in row order.
func (c *Column) Values() []string {
	out := make([]string, 0, len(c.raw))
	for i, v := range c.raw {
		if !c.missing[i] {
			out = append(out, v)
		}
	}
	return out
}

// Format renders cell i for display. Missing cells render as NaN, or NaT
// in datetime columns.
func (c *Column) Format(i int) string {
	if c.missing[i] {
		if c.Kind == KindDatetime {
			return "NaT"
		}
		return "NaN"
	}
	switch c.Kind {
	case KindInt64:
		n, _ := parseInt(c.raw[i])
		return strconv.FormatInt(n, 10)
	case KindFloat64:
		return FormatFloat(c.nums[i])
	case KindBool:
		if c.bools[i] {
			return "True"
		}
		return "False"
	case KindDatetime:
		t := c.times[i]
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	}
	return c.raw[i]
}

// FormatFloat renders v the way float cells are displayed: shortest
// round-trip form, always with a fractional part.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Dataset is an ordered collection of uniquely named columns of equal length
type Dataset struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// Build constructs a dataset from a header and raw records. Records shorter
// than the header are padded with missing cells; callers must reject
// records that are longer. Cells matching missing are flagged as missing.
func Build(header []string, records [][]string, missing MissingSet) (*Dataset, error) {
	if len(header) == 0 {
		return nil, fmt.Errorf("no columns to build dataset from")
	}
	if missing == nil {
		missing = NewMissingSet()
	}

	for i, rec := range records {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", i, len(rec), len(header))
		}
	}

	names := NormalizeHeader(header)
	ds := &Dataset{
		columns: make([]*Column, len(names)),
		index:   make(map[string]int, len(names)),
		rows:    len(records),
	}

	for j, name := range names {
		raw := make([]string, len(records))
		miss := make([]bool, len(records))
		for i, rec := range records {
			if j >= len(rec) {
				miss[i] = true
				continue
			}
			raw[i] = rec[j]
			miss[i] = missing.IsMissing(rec[j])
		}
		ds.columns[j] = newColumn(name, raw, miss)
		ds.index[name] = j
	}

	return ds, nil
}

func newColumn(name string, raw []string, missing []bool) *Column {
	col := &Column{
		Name:    name,
		Kind:    inferKind(raw, missing),
		raw:     raw,
		missing: missing,
	}

	switch col.Kind {
	case KindInt64, KindFloat64:
		col.nums = make([]float64, len(raw))
		for i, v := range raw {
			if missing[i] {
				col.nums[i] = math.NaN()
				continue
			}
			if col.Kind == KindInt64 {
				n, _ := parseInt(v)
				col.nums[i] = float64(n)
			} else {
				col.nums[i], _ = parseFloat(v)
			}
		}
	case KindBool:
		col.bools = make([]bool, len(raw))
		for i, v := range raw {
			col.bools[i], _ = parseBool(v)
		}
	case KindDatetime:
		col.times = make([]time.Time, len(raw))
		for i, v := range raw {
			if !missing[i] {
				col.times[i], _, _ = parseDatetime(v)
			}
		}
	}
	return col
}

// Rows returns the number of data rows
func (d *Dataset) Rows() int {
	return d.rows
}

// NumColumns returns the number of columns
func (d *Dataset) NumColumns() int {
	return len(d.columns)
}

// Shape returns (rows, columns)
func (d *Dataset) Shape() (int, int) {
	return d.rows, len(d.columns)
}

// Columns returns the columns in file order. The slice must not be modified.
func (d *Dataset) Columns() []*Column {
	return d.columns
}

// ColumnNames returns the column names in file order
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.columns))
	for i, c := range d.columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column
func (d *Dataset) Column(name string) (*Column, bool) {
	i, ok := d.index[name]
	if !ok {
		return nil, false
	}
	return d.columns[i], true
}

// Row returns row i rendered with Column.Format
func (d *Dataset) Row(i int) []string {
	row := make([]string, len(d.columns))
	for j, c := range d.columns {
		row[j] = c.Format(i)
	}
	return row
}

// Head returns the indices of the first n rows, or all rows if fewer.
func (d *Dataset) Head(n int) []int {
	if n > d.rows {
		n = d.rows
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
