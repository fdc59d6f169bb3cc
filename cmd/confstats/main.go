package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"confstats/internal/config"
	apperrors "confstats/internal/errors"
	"confstats/internal/infrastructure"
	"confstats/internal/pipeline"
	"confstats/internal/validation"
	"confstats/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}

// options holds the command-line flags. Non-empty values override the
// configuration file and environment.
type options struct {
	configPath  string
	outputPath  string
	csvDir      string
	xlsxPath    string
	metricsFile string
	archivePath string
	version     bool
}

func parseFlags(args []string, stdout io.Writer) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.outputPath, "out", "", "HTML report path (default "+config.DefaultOutputPath+")")
	fs.StringVar(&opts.csvDir, "csv-dir", "", "also write the tables as CSV files into this directory")
	fs.StringVar(&opts.xlsxPath, "xlsx", "", "also write the tables to this XLSX workbook")
	fs.StringVar(&opts.metricsFile, "metrics", "", "write run metrics in Prometheus text format to this file")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] <conference.zip>\n", config.AppName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.version {
		return opts, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, apperrors.NewUsageError("expected exactly one archive argument").
			WithContext("args", fs.NArg())
	}
	opts.archivePath = fs.Arg(0)
	return opts, nil
}

// apply overlays the flags onto cfg
func (o *options) apply(cfg *config.Config) {
	if o.outputPath != "" {
		cfg.Report.OutputPath = o.outputPath
	}
	if o.csvDir != "" {
		cfg.Report.CSVDir = o.csvDir
	}
	if o.xlsxPath != "" {
		cfg.Report.XLSXPath = o.xlsxPath
	}
	if o.metricsFile != "" {
		cfg.Telemetry.MetricsFile = o.metricsFile
	}
}

// run executes one invocation and returns the process exit code
func run(ctx context.Context, args []string, stdout io.Writer) int {
	opts, err := parseFlags(args, stdout)
	if errors.Is(err, flag.ErrHelp) {
		return apperrors.ExitOK
	}
	if err != nil {
		return apperrors.ExitUsage
	}
	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return apperrors.ExitOK
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return apperrors.NewHandler(nil).Handle(ctx, err)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return apperrors.NewHandler(nil).Handle(ctx, err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()
	handler := apperrors.NewHandler(logger)

	ctx = infrastructure.EnsureRunID(ctx)

	if err := validation.NewFileValidator(logger).ValidateArchive(opts.archivePath); err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			fmt.Fprintln(stdout, appErr.Message)
		}
		fmt.Fprintf(stdout, "Usage: %s [flags] <conference.zip>\n", config.AppName)
		return handler.Handle(ctx, err)
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return handler.Handle(ctx, apperrors.NewStorageError("failed to resolve output paths", err))
	}
	if err := paths.EnsureDirectories(); err != nil {
		return handler.Handle(ctx, apperrors.NewStorageError("failed to create output directories", err))
	}
	paths.LogPathResolution(logger)

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return handler.Handle(ctx, apperrors.NewConfigError("failed to initialize telemetry", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	runner, err := pipeline.NewRunner(cfg, paths, providers, logger)
	if err != nil {
		return handler.Handle(ctx, err)
	}

	result, runErr := runner.Run(ctx, opts.archivePath)

	// Metrics are written for failed runs too
	if paths.MetricsFile != "" {
		if err := providers.WriteMetricsFile(paths.MetricsFile); err != nil {
			logger.WarnContext(ctx, "Failed to write metrics file",
				slog.String("path", paths.MetricsFile),
				slog.String("error", err.Error()))
		}
	}

	if runErr != nil {
		return handler.Handle(ctx, runErr)
	}

	fmt.Fprintf(stdout, "Wrote %s\n", paths.ReportFile)
	logger.InfoContext(ctx, "Report generated",
		slog.String("report", paths.ReportFile),
		slog.Int("artifacts", len(result.Artifacts)))
	return apperrors.ExitOK
}
