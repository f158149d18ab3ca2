package report

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tabinspect/internal/errors"
	"tabinspect/pkg/contracts/domain"
)

func sampleReport() *domain.InspectionReport {
	return &domain.InspectionReport{
		ID:      "3f1c2b8e-8f57-4a43-9d64-2a7c3c0b5f11",
		Source:  "data.csv",
		Format:  domain.FileFormatCSV,
		Shape:   domain.Shape{Rows: 2, Columns: 2},
		Columns:   []string{"id", "value"},
		HeadLimit: 5,
		Head: []domain.HeadRow{
			{Index: 0, Values: []string{"1", "10.0"}},
			{Index: 1, Values: []string{"2", "NaN"}},
		},
		DTypes: []domain.ColumnType{
			{Column: "id", DType: "int64"},
			{Column: "value", DType: "float64"},
		},
		NumericSummary: []domain.NumericSummary{
			{Column: "id", Count: 2, Mean: 1.5, Std: 0.7071067811865476, Min: 1, Q25: 1.25, Median: 1.5, Q75: 1.75, Max: 2},
			{Column: "value", Count: 1, Mean: 10, Std: domain.Stat(math.NaN()), Min: 10, Q25: 10, Median: 10, Q75: 10, Max: 10},
		},
		Missing: []domain.MissingCount{
			{Column: "id", Count: 0},
			{Column: "value", Count: 1},
		},
		TotalMissing: 1,
		GeneratedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		format  string
		want    Renderer
		wantErr bool
	}{
		{"text", &TextRenderer{}, false},
		{"", &TextRenderer{}, false},
		{"JSON", &JSONRenderer{}, false},
		{"yaml", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r, err := NewRenderer(tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, r)
		})
	}
}

func TestTextRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextRenderer{}).Render(&buf, sampleReport()))
	out := buf.String()

	sections := []string{
		"Loading data from: data.csv",
		"Successfully loaded 2 rows and 2 columns",
		"=== DATASET INFORMATION ===",
		"Shape: (2, 2)",
		"Columns: ['id', 'value']",
		"=== FIRST 5 ROWS ===",
		"=== DATA TYPES ===",
		"=== SUMMARY STATISTICS ===",
		"=== MISSING VALUES ===",
		"⚠️  Total missing values: 1",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(out, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q in output:\n%s", s, out)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}

	assert.Contains(t, out, "1.500000")
	assert.Contains(t, out, "NaN")
	assert.Contains(t, out, "dtype: int64")
	assert.NotContains(t, out, "No missing values found!")

	lines := strings.Split(out, "\n")
	var dtypeLines []string
	for _, l := range lines {
		if strings.HasPrefix(l, "id ") || strings.HasPrefix(l, "value ") {
			dtypeLines = append(dtypeLines, strings.Join(strings.Fields(l), " "))
		}
	}
	assert.Contains(t, dtypeLines, "id int64")
	assert.Contains(t, dtypeLines, "value float64")
}

func TestTextRenderer_HeadSection(t *testing.T) {
	tests := []struct {
		name        string
		headLimit   int
		head        []domain.HeadRow
		wantHeading string
		wantRows    int
	}{
		{"configured count", 2, sampleReport().Head, "=== FIRST 2 ROWS ===", 2},
		{"larger than dataset", 10, sampleReport().Head, "=== FIRST 10 ROWS ===", 2},
		{"zero rows requested", 0, nil, "=== FIRST 0 ROWS ===", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sampleReport()
			r.HeadLimit = tt.headLimit
			r.Head = tt.head

			var buf bytes.Buffer
			require.NoError(t, (&TextRenderer{}).Render(&buf, r))
			out := buf.String()
			assert.Contains(t, out, tt.wantHeading)
			assert.NotContains(t, out, "Index: []", "a non-empty dataset is never reported as empty")

			section := out[strings.Index(out, tt.wantHeading):strings.Index(out, "=== DATA TYPES ===")]
			lines := strings.Split(strings.TrimSpace(section), "\n")
			require.Len(t, lines, 2+tt.wantRows, section)
			assert.Equal(t, []string{"id", "value"}, strings.Fields(lines[1]))
		})
	}
}

func TestTextRenderer_NoMissing(t *testing.T) {
	r := sampleReport()
	r.Missing[1].Count = 0
	r.TotalMissing = 0

	var buf bytes.Buffer
	require.NoError(t, (&TextRenderer{}).Render(&buf, r))
	assert.Contains(t, buf.String(), "✅ No missing values found!")
	assert.NotContains(t, buf.String(), "Total missing values")
}

func TestTextRenderer_InfiniteStats(t *testing.T) {
	r := sampleReport()
	r.NumericSummary[1].Mean = domain.Stat(math.Inf(1))
	r.NumericSummary[1].Max = domain.Stat(math.Inf(1))
	r.NumericSummary[1].Min = domain.Stat(math.Inf(-1))

	var buf bytes.Buffer
	require.NoError(t, (&TextRenderer{}).Render(&buf, r))

	rows := make(map[string][]string)
	for _, line := range strings.Split(buf.String(), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			rows[fields[0]] = fields
		}
	}
	assert.Equal(t, []string{"mean", "1.500000", "inf"}, rows["mean"])
	assert.Equal(t, []string{"min", "1.000000", "-inf"}, rows["min"])

	buf.Reset()
	require.NoError(t, (&JSONRenderer{}).Render(&buf, r))
	var got map[string]interface{}
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &got))
	value := got["numeric_summary"].([]interface{})[1].(map[string]interface{})
	assert.Nil(t, value["mean"])
	assert.Nil(t, value["min"])
}

func TestTextRenderer_CategoricalAndEmpty(t *testing.T) {
	t.Run("categorical fallback", func(t *testing.T) {
		r := sampleReport()
		r.NumericSummary = nil
		r.CategoricalSummary = []domain.CategoricalSummary{
			{Column: "city", Count: 3, Unique: 2, Top: "Austin", Freq: 2},
		}

		var buf bytes.Buffer
		require.NoError(t, (&TextRenderer{}).Render(&buf, r))
		out := buf.String()
		for _, label := range []string{"unique", "top", "freq", "Austin"} {
			assert.Contains(t, out, label)
		}
	})

	t.Run("empty dataset", func(t *testing.T) {
		r := sampleReport()
		r.Shape.Rows = 0
		r.Head = nil
		r.NumericSummary = nil

		var buf bytes.Buffer
		require.NoError(t, (&TextRenderer{}).Render(&buf, r))
		out := buf.String()
		assert.Contains(t, out, "Empty DataFrame")
		assert.Contains(t, out, "Index: []")
	})
}

func TestTextRenderer_RenderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "not found",
			err:  apperrors.NewNotFoundError("missing.csv"),
			want: "Error: File 'missing.csv' not found!\n",
		},
		{
			name: "unsupported",
			err:  apperrors.NewUnsupportedFormatError("data.json", ".json"),
			want: "Loading data from: data.json\nError processing file: Unsupported file format. Use CSV or Excel files.\n",
		},
		{
			name: "row parse failure",
			err:  apperrors.NewRowParsingError(3, "Error tokenizing data. Expected 2 fields, saw 3", nil),
			want: "Loading data from: data.json\nError processing file: line 3: Error tokenizing data. Expected 2 fields, saw 3\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "data.json"
			if apperrors.IsNotFound(tt.err) {
				path = "missing.csv"
			}
			var buf bytes.Buffer
			require.NoError(t, (&TextRenderer{}).RenderError(&buf, path, tt.err))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONRenderer_Render(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONRenderer{}).Render(&buf, sampleReport()))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))

	var got map[string]interface{}
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "data.csv", got["source"])
	assert.Equal(t, float64(1), got["total_missing"])

	summaries := got["numeric_summary"].([]interface{})
	require.Len(t, summaries, 2)
	value := summaries[1].(map[string]interface{})
	assert.Nil(t, value["std"])
	assert.Equal(t, float64(10), value["50%"])

	var report domain.InspectionReport
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, sampleReport().Columns, report.Columns)
	assert.True(t, report.NumericSummary[1].Std.IsNaN())
}

func TestJSONRenderer_RenderError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
		wantLine *int
	}{
		{"not found", apperrors.NewNotFoundError("x.csv"), "NOT_FOUND", nil},
		{"row failure", apperrors.NewRowParsingError(7, "bad row", nil), "PARSING", intPtr(7)},
		{"untyped", errors.New("boom"), "PARSING", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, (&JSONRenderer{}).RenderError(&buf, "x.csv", tt.err))

			var doc ErrorDocument
			require.NoError(t, gojson.Unmarshal(buf.Bytes(), &doc))
			assert.Equal(t, "x.csv", doc.Source)
			assert.Equal(t, tt.wantType, doc.Error.Type)
			assert.Equal(t, tt.wantLine, doc.Error.Line)
		})
	}
}

func intPtr(i int) *int { return &i }
