package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "tabinspect/internal/errors"
	"tabinspect/pkg/contracts/domain"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    domain.FileFormat
		wantErr bool
	}{
		{path: "data.csv", want: domain.FileFormatCSV},
		{path: "DATA.CSV", want: domain.FileFormatCSV},
		{path: "book.xlsx", want: domain.FileFormatExcel},
		{path: "book.xlsm", want: domain.FileFormatExcel},
		{path: "legacy.xls", want: domain.FileFormatExcel},
		{path: "notes.txt", wantErr: true},
		{path: "noext", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.True(t, apperrors.IsUnsupportedFormat(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileValidator_ValidateInputFile(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		want      domain.FileFormat
		check     func(error) bool
	}{
		{
			name: "existing csv",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "data.csv")
				require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0644))
				return path
			},
			want: domain.FileFormatCSV,
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.csv")
			},
			check: apperrors.IsNotFound,
		},
		{
			name: "non-existent file with unsupported extension",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.txt")
			},
			check: apperrors.IsNotFound,
		},
		{
			name: "unsupported extension",
			setupFunc: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "notes.txt")
				require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
				return path
			},
			check: apperrors.IsUnsupportedFormat,
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				dir := filepath.Join(t.TempDir(), "data.csv")
				require.NoError(t, os.Mkdir(dir, 0755))
				return dir
			},
			check: apperrors.IsNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			path := tt.setupFunc(t)

			got, err := validator.ValidateInputFile(path)
			if tt.check != nil {
				require.Error(t, err)
				assert.True(t, tt.check(err), "unexpected error kind: %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewFileValidator_NilLogger(t *testing.T) {
	v := NewFileValidator(nil)
	assert.NotNil(t, v.logger)
}
