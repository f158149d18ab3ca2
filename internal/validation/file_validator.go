package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "tabinspect/internal/errors"
	"tabinspect/pkg/contracts/domain"
)

// supportedExtensions maps lower-cased file extensions to input formats.
// .xlsm is read by the same workbook parser as .xlsx.
var supportedExtensions = map[string]domain.FileFormat{
	".csv":  domain.FileFormatCSV,
	".xlsx": domain.FileFormatExcel,
	".xlsm": domain.FileFormatExcel,
	".xls":  domain.FileFormatExcel,
}

// FileValidator runs the pre-parse checks on an input path
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// DetectFormat returns the input format implied by the path's extension.
func DetectFormat(path string) (domain.FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(path))
	format, ok := supportedExtensions[ext]
	if !ok {
		return "", apperrors.NewUnsupportedFormatError(path, ext)
	}
	return format, nil
}

// ValidateInputFile checks that path names an existing regular file with a
// supported extension. The existence check runs first, so a missing file
// with an unsupported extension is reported as not found.
func (v *FileValidator) ValidateInputFile(path string) (domain.FileFormat, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("Input file does not exist",
			slog.String("file", path))
		return "", apperrors.NewNotFoundError(path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return "", apperrors.NewParsingError(fmt.Sprintf("failed to stat %s", path), err)
	}
	if info.IsDir() {
		v.logger.Warn("Input path is a directory, not a file",
			slog.String("path", path))
		return "", apperrors.NewNotFoundError(path).WithContext("reason", "is a directory")
	}

	format, err := DetectFormat(path)
	if err != nil {
		v.logger.Warn("Unsupported input format",
			slog.String("file", path),
			slog.String("extension", filepath.Ext(path)))
		return "", err
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.String("format", string(format)),
		slog.Int64("size", info.Size()))
	return format, nil
}
