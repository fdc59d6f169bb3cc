package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstats/internal/errors"
)

func TestFileValidator_ValidateFile(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		errorContains string
	}{
		{
			name: "valid file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "export.zip")
				require.NoError(t, os.WriteFile(file, []byte("PK"), 0644))
				return file
			},
			wantErr: false,
		},
		{
			name: "empty file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "empty.zip")
				require.NoError(t, os.WriteFile(file, nil, 0644))
				return file
			},
			wantErr: false,
		},
		{
			name: "non-existent file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.zip")
			},
			wantErr:       true,
			errorContains: "not found",
		},
		{
			name: "path is directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			errorContains: "is a directory",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			path := tt.setupFunc(t)

			err := validator.ValidateFile(path)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorContains)
				assert.True(t, errors.IsType(err, errors.ErrTypeUsage))
				assert.Equal(t, errors.ExitUsage, errors.ExitCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFileValidator_ValidateArchive(t *testing.T) {
	validator := NewFileValidator(nil)
	dir := t.TempDir()

	zipped := filepath.Join(dir, "export.ZIP")
	require.NoError(t, os.WriteFile(zipped, []byte("PK"), 0644))
	assert.NoError(t, validator.ValidateArchive(zipped))

	// Other extensions only produce a warning
	other := filepath.Join(dir, "export.bin")
	require.NoError(t, os.WriteFile(other, []byte("PK"), 0644))
	assert.NoError(t, validator.ValidateArchive(other))

	err := validator.ValidateArchive(filepath.Join(dir, "none.zip"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUsage))
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		wantErr   bool
	}{
		{
			name: "existing directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr: false,
		},
		{
			name: "create new directory",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "new", "nested")
			},
			wantErr: false,
		},
		{
			name: "parent is a file",
			setupFunc: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "blocker")
				require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
				return filepath.Join(file, "out")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := NewFileValidator(slog.Default())
			dir := tt.setupFunc(t)

			err := validator.ValidateOutputDirectory(dir)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, errors.ErrTypeStorage))
				return
			}
			require.NoError(t, err)
			info, statErr := os.Stat(dir)
			require.NoError(t, statErr)
			assert.True(t, info.IsDir())

			// The write probe is cleaned up
			_, statErr = os.Stat(filepath.Join(dir, ".write_test"))
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestFileValidator_ValidateOutputFile(t *testing.T) {
	validator := NewFileValidator(nil)
	dir := t.TempDir()

	assert.NoError(t, validator.ValidateOutputFile(filepath.Join(dir, "report", "scores.html")))

	err := validator.ValidateOutputFile(dir)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeUsage))
}

func TestFileValidator_ValidateWorkbookPath(t *testing.T) {
	validator := NewFileValidator(nil)
	dir := t.TempDir()

	assert.NoError(t, validator.ValidateWorkbookPath(filepath.Join(dir, "scores.xlsx")))
	assert.NoError(t, validator.ValidateWorkbookPath(filepath.Join(dir, "SCORES.XLSX")))

	err := validator.ValidateWorkbookPath(filepath.Join(dir, "scores.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".xlsx")
	assert.True(t, errors.IsType(err, errors.ErrTypeUsage))
}
