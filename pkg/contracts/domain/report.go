package domain

import (
	"math"
	"strconv"
	"time"
)

// FileFormat is the input family a report was produced from
type FileFormat string

const (
	FileFormatCSV   FileFormat = "csv"
	FileFormatExcel FileFormat = "excel"
)

// InspectionReport is the structured result of inspecting one tabular file.
// Renderers turn it into text or JSON; callers and tests read it directly.
type InspectionReport struct {
	ID                 string               `json:"id" validate:"required,uuid"`
	Source             string               `json:"source" validate:"required"`
	Format             FileFormat           `json:"format" validate:"oneof=csv excel"`
	Sheet              string               `json:"sheet,omitempty"`
	Shape              Shape                `json:"shape"`
	Columns            []string             `json:"columns"`
	HeadLimit          int                  `json:"head_limit" validate:"min=0"`
	Head               []HeadRow            `json:"head"`
	DTypes             []ColumnType         `json:"dtypes" validate:"dive"`
	NumericSummary     []NumericSummary     `json:"numeric_summary"`
	CategoricalSummary []CategoricalSummary `json:"categorical_summary,omitempty"`
	Missing            []MissingCount       `json:"missing"`
	TotalMissing       int                  `json:"total_missing" validate:"min=0"`
	GeneratedAt        time.Time            `json:"generated_at"`
}

// Shape is the (rows, columns) size of a dataset
type Shape struct {
	Rows    int `json:"rows" validate:"min=0"`
	Columns int `json:"columns" validate:"min=0"`
}

// String renders the shape as a tuple, e.g. "(2, 2)"
func (s Shape) String() string {
	return "(" + strconv.Itoa(s.Rows) + ", " + strconv.Itoa(s.Columns) + ")"
}

// HeadRow is one of the leading rows of the dataset. Missing cells are
// rendered as "NaN".
type HeadRow struct {
	Index  int      `json:"index"`
	Values []string `json:"values"`
}

// ColumnType pairs a column with its inferred dtype name
type ColumnType struct {
	Column string `json:"column" validate:"required"`
	DType  string `json:"dtype" validate:"oneof=int64 float64 bool datetime64[ns] object"`
}

// NumericSummary holds describe-style statistics for a numeric column.
type NumericSummary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Mean   Stat   `json:"mean"`
	Std    Stat   `json:"std"`
	Min    Stat   `json:"min"`
	Q25    Stat   `json:"25%"`
	Median Stat   `json:"50%"`
	Q75    Stat   `json:"75%"`
	Max    Stat   `json:"max"`
}

// CategoricalSummary holds describe-style statistics for a non-numeric
// column. Only produced when a dataset has no numeric column.
type CategoricalSummary struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
	Unique int    `json:"unique"`
	Top    string `json:"top,omitempty"`
	Freq   int    `json:"freq"`
}

// MissingCount is the number of missing cells in one column
type MissingCount struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

// HasMissing reports whether any column has missing cells
func (r *InspectionReport) HasMissing() bool {
	return r.TotalMissing > 0
}

// MissingFor returns the missing count of the named column
func (r *InspectionReport) MissingFor(column string) (int, bool) {
	for _, m := range r.Missing {
		if m.Column == column {
			return m.Count, true
		}
	}
	return 0, false
}

// Stat is a summary statistic that may be undefined (NaN), e.g. the standard
// deviation of a single value. It may also be infinite when the column holds
// inf. JSON has no encoding for either, so both marshal as null.
type Stat float64

// IsNaN reports whether the statistic is undefined
func (s Stat) IsNaN() bool {
	return math.IsNaN(float64(s))
}

// IsInf reports whether the statistic is +inf or -inf
func (s Stat) IsInf() bool {
	return math.IsInf(float64(s), 0)
}

// MarshalJSON implements json.Marshaler
func (s Stat) MarshalJSON() ([]byte, error) {
	if s.IsNaN() || s.IsInf() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(s), 'g', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (s *Stat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Stat(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*s = Stat(f)
	return nil
}
