package dataprocessing

import (
	"context"
	"log/slog"

	"tabinspect/internal/dataset"
	"tabinspect/internal/validation"
	"tabinspect/pkg/contracts/domain"
)

// LoadOptions controls how files are parsed
type LoadOptions struct {
	// Sheet selects a worksheet by name; empty means the first sheet.
	Sheet string
	// Missing is the set of cell values read as missing; nil means
	// dataset.DefaultMissingTokens.
	Missing dataset.MissingSet
}

// Source describes where a dataset was loaded from
type Source struct {
	Path   string
	Format domain.FileFormat
	Sheet  string
}

// Loader parses CSV and workbook files into datasets
type Loader struct {
	logger *slog.Logger
	opts   LoadOptions
}

// NewLoader creates a loader with the given options
func NewLoader(logger *slog.Logger, opts LoadOptions) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Missing == nil {
		opts.Missing = dataset.NewMissingSet()
	}
	return &Loader{
		logger: logger.With("component", "loader"),
		opts:   opts,
	}
}

// Load parses the file at path, choosing the parser from its extension.
// The file handle is closed before Load returns.
func (l *Loader) Load(ctx context.Context, path string) (*dataset.Dataset, Source, error) {
	format, err := validation.DetectFormat(path)
	if err != nil {
		return nil, Source{}, err
	}

	src := Source{Path: path, Format: format}
	var ds *dataset.Dataset

	switch format {
	case domain.FileFormatCSV:
		ds, err = l.loadCSV(ctx, path)
	case domain.FileFormatExcel:
		ds, src.Sheet, err = l.loadExcel(ctx, path)
	}
	if err != nil {
		l.logger.WarnContext(ctx, "failed to load file",
			slog.String("path", path),
			slog.String("format", string(format)),
			slog.String("error", err.Error()))
		return nil, src, err
	}

	rows, cols := ds.Shape()
	l.logger.InfoContext(ctx, "file loaded",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.String("sheet", src.Sheet),
		slog.Int("rows", rows),
		slog.Int("columns", cols))

	return ds, src, nil
}
