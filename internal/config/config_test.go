package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "confstats/internal/errors"
)

var envVars = []string{
	"CONFSTATS_CONFERENCE_NAME", "CONFSTATS_CONFERENCE_SCORES",
	"CONFSTATS_CONFERENCE_ACCEPT_SCORES", "CONFSTATS_CONFERENCE_TOPICS_MARKER",
	"CONFSTATS_REPORT_OUTPUT_PATH", "CONFSTATS_REPORT_CSV_DIR",
	"CONFSTATS_LOGGING_LEVEL", "CONFSTATS_LOGGING_OUTPUT",
	"CONFSTATS_TELEMETRY_TRACE_EXPORTER",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, envVar := range envVars {
		// t.Setenv restores the original value when the test ends.
		t.Setenv(envVar, "")
		os.Unsetenv(envVar)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "confstats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ESA 2021", cfg.Conference.Name)
				assert.Equal(t, []int{3, 2, 1, 0, -1, -2}, cfg.Conference.Scores)
				assert.Equal(t, []int{3, 2, 1}, cfg.Conference.AcceptScores)
				assert.Equal(t, "Topics", cfg.Conference.TopicsMarker)
				assert.Equal(t, "review.csv", cfg.Conference.ReviewsResource)
				assert.Equal(t, "submission_field_value.csv", cfg.Conference.FieldValuesResource)
				assert.Equal(t, "scores.html", cfg.Report.OutputPath)
				assert.Empty(t, cfg.Report.CSVDir)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, "none", cfg.Telemetry.TraceExporter)
			},
		},
		{
			name: "environment overrides",
			env: map[string]string{
				"CONFSTATS_CONFERENCE_NAME":          "SODA 2025",
				"CONFSTATS_CONFERENCE_SCORES":        "2,1,-1,-2",
				"CONFSTATS_CONFERENCE_ACCEPT_SCORES": "2,1",
				"CONFSTATS_LOGGING_LEVEL":            "DEBUG",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "SODA 2025", cfg.Conference.Name)
				assert.Equal(t, []int{2, 1, -1, -2}, cfg.Conference.Scores)
				assert.Equal(t, []int{2, 1}, cfg.Conference.AcceptScores)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "file overrides defaults and env overrides file",
			env: map[string]string{
				"CONFSTATS_LOGGING_LEVEL": "warn",
			},
			file: `
conference:
  name: ICALP 2024
  topics_marker: Areas
logging:
  level: error
report:
  csv_dir: out/csv
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "ICALP 2024", cfg.Conference.Name)
				assert.Equal(t, "Areas", cfg.Conference.TopicsMarker)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, "out/csv", cfg.Report.CSVDir)
				assert.Equal(t, []int{3, 2, 1, 0, -1, -2}, cfg.Conference.Scores)
			},
		},
		{
			name: "file output sets default log file",
			env:  map[string]string{"CONFSTATS_LOGGING_OUTPUT": "both"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultLogFile, cfg.Logging.FilePath)
			},
		},
		{
			name:    "unknown file key",
			file:    "conference:\n  nmae: typo\n",
			wantErr: true,
		},
		{
			name:    "scale not descending",
			env:     map[string]string{"CONFSTATS_CONFERENCE_SCORES": "1,2,3"},
			wantErr: true,
		},
		{
			name:    "accept score outside scale",
			env:     map[string]string{"CONFSTATS_CONFERENCE_ACCEPT_SCORES": "4"},
			wantErr: true,
		},
		{
			name:    "invalid scores list",
			env:     map[string]string{"CONFSTATS_CONFERENCE_SCORES": "3,x"},
			wantErr: true,
		},
		{
			name:    "unsupported trace exporter",
			env:     map[string]string{"CONFSTATS_TELEMETRY_TRACE_EXPORTER": "otlp"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			var path string
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(path)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
	assert.Contains(t, appErr.Context, "path")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "default is valid", mutate: func(*Config) {}},
		{name: "empty name", mutate: func(c *Config) { c.Conference.Name = "" }, wantErr: true},
		{name: "empty scale", mutate: func(c *Config) { c.Conference.Scores = nil }, wantErr: true},
		{name: "duplicate scale value", mutate: func(c *Config) { c.Conference.Scores = []int{2, 2, 1} }, wantErr: true},
		{name: "empty accept", mutate: func(c *Config) { c.Conference.AcceptScores = []int{} }, wantErr: true},
		{name: "empty marker", mutate: func(c *Config) { c.Conference.TopicsMarker = "" }, wantErr: true},
		{name: "empty output", mutate: func(c *Config) { c.Report.OutputPath = "" }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "verbose" }, wantErr: true},
		{name: "uppercase output normalised", mutate: func(c *Config) { c.Logging.Output = "FILE" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefault_ReturnsIndependentSlices(t *testing.T) {
	a := Default()
	a.Conference.Scores[0] = 99
	b := Default()
	assert.Equal(t, 3, b.Conference.Scores[0])
	assert.Equal(t, 3, DefaultScores[0])
}
