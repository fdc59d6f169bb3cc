package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the absolute locations of every file a run writes.
// Empty fields mean the artifact is disabled.
type Paths struct {
	WorkingDir  string
	ReportFile  string
	CSVDir      string
	XLSXFile    string
	LogFile     string
	MetricsFile string
}

// ResolvePaths resolves the configured output locations against the
// current working directory.
func ResolvePaths(cfg *Config) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return resolvePathsFrom(wd, cfg), nil
}

func resolvePathsFrom(wd string, cfg *Config) *Paths {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(wd, p)
	}

	paths := &Paths{
		WorkingDir:  wd,
		ReportFile:  abs(cfg.Report.OutputPath),
		CSVDir:      abs(cfg.Report.CSVDir),
		XLSXFile:    abs(cfg.Report.XLSXPath),
		MetricsFile: abs(cfg.Telemetry.MetricsFile),
	}
	if cfg.Logging.Output != "console" {
		paths.LogFile = abs(cfg.Logging.FilePath)
	}
	return paths
}

// EnsureDirectories creates the parent directories of every enabled output
func (p *Paths) EnsureDirectories() error {
	var directories []string
	for _, file := range []string{p.ReportFile, p.XLSXFile, p.LogFile, p.MetricsFile} {
		if file != "" {
			directories = append(directories, filepath.Dir(file))
		}
	}
	if p.CSVDir != "" {
		directories = append(directories, p.CSVDir)
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetCSVPath returns the path for a CSV export file
func (p *Paths) GetCSVPath(filename string) string {
	return filepath.Join(p.CSVDir, filename)
}

// LogPathResolution logs the resolved output locations
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution summary",
		slog.String("working_dir", p.WorkingDir),
		slog.Group("outputs",
			slog.String("report", p.ReportFile),
			slog.String("csv_dir", p.CSVDir),
			slog.String("xlsx", p.XLSXFile),
			slog.String("log", p.LogFile),
			slog.String("metrics", p.MetricsFile),
		))
}
