package report

import (
	"fmt"
	"io"
	"strings"

	"tabinspect/pkg/contracts/domain"
)

// Renderer writes reports and failures to an output stream
type Renderer interface {
	Render(w io.Writer, r *domain.InspectionReport) error
	RenderError(w io.Writer, path string, err error) error
	// Separator is written between consecutive documents
	Separator() string
}

// Output formats accepted by NewRenderer
const (
	FormatText = "text"
	FormatJSON = "json"
)

// NewRenderer returns the renderer for format
func NewRenderer(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatText, "":
		return &TextRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	}
	return nil, fmt.Errorf("unsupported output format: %s", format)
}
