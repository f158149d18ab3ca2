package report

import (
	"io"

	gojson "github.com/goccy/go-json"

	apperrors "tabinspect/internal/errors"
	"tabinspect/pkg/contracts/domain"
)

// JSONRenderer writes one compact JSON document per report or failure
type JSONRenderer struct{}

// ErrorDocument is the JSON shape of a failed inspection
type ErrorDocument struct {
	Source string      `json:"source"`
	Error  ErrorDetail `json:"error"`
}

// ErrorDetail carries the failure kind and message
type ErrorDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Line    *int   `json:"line,omitempty"`
}

// Render encodes r as a single JSON line
func (j *JSONRenderer) Render(w io.Writer, r *domain.InspectionReport) error {
	return gojson.NewEncoder(w).Encode(r)
}

// Separator is empty; each document already ends with a newline
func (j *JSONRenderer) Separator() string { return "" }

// RenderError encodes err as an ErrorDocument
func (j *JSONRenderer) RenderError(w io.Writer, path string, err error) error {
	errType := apperrors.TypeOf(err)
	if errType == "" {
		errType = apperrors.ErrTypeParsing
	}
	doc := ErrorDocument{
		Source: path,
		Error: ErrorDetail{
			Type:    string(errType),
			Message: apperrors.Detail(err),
		},
	}
	if line, ok := apperrors.Line(err); ok {
		doc.Error.Line = &line
	}
	return gojson.NewEncoder(w).Encode(doc)
}
