package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"confstats/internal/config"
	"confstats/internal/easychair"
	apperrors "confstats/internal/errors"
	"confstats/internal/exporter"
	"confstats/internal/infrastructure"
	"confstats/internal/report"
	"confstats/internal/scoring"
	"confstats/internal/validation"
	"confstats/pkg/contracts/domain"
)

// Stage names, used as span names and as the stage metric attribute
const (
	StageLoad      = "load"
	StageIndex     = "index"
	StageAggregate = "aggregate"
	StageFormat    = "format"
	StageRender    = "render"
	StageExport    = "export"
)

// Result is what a run produced
type Result struct {
	// Updated is the modification time of the export archive
	Updated time.Time

	Reviews     []domain.Review
	Assignments []domain.TopicAssignment
	Index       scoring.TopicIndex
	Aggregates  *scoring.Aggregates

	Reviewers *report.Table
	Batches   *report.Table
	// Topics is nil when no review could be attributed to a topic
	Topics *report.Table

	Document report.Document

	// Artifacts lists every file written, the HTML report first
	Artifacts []string
}

// Runner executes the stages of a run in order. The first failing stage
// aborts the run.
type Runner struct {
	cfg       *config.Config
	paths     *config.Paths
	scale     *scoring.Scale
	validator *validation.FileValidator
	tracer    trace.Tracer
	metrics   *infrastructure.RunMetrics
	logger    *slog.Logger
}

// NewRunner creates a runner for cfg writing to paths. providers may be
// nil, in which case nothing is traced or measured.
func NewRunner(cfg *config.Config, paths *config.Paths, providers *infrastructure.OTelProviders, logger *slog.Logger) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "pipeline")

	scale, err := scoring.ScaleFromConfig(cfg.Conference)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:       cfg,
		paths:     paths,
		scale:     scale,
		validator: validation.NewFileValidator(logger),
		tracer:    noop.NewTracerProvider().Tracer(infrastructure.ServiceName),
		logger:    logger,
	}

	if providers != nil {
		if providers.Tracer != nil {
			r.tracer = providers.Tracer
		}
		if providers.Meter != nil {
			r.metrics, err = infrastructure.CreateRunMetrics(providers.Meter)
			if err != nil {
				return nil, fmt.Errorf("failed to create run metrics: %w", err)
			}
		}
	}
	return r, nil
}

// Run processes the export archive at archivePath into the configured
// outputs
func (r *Runner) Run(ctx context.Context, archivePath string) (*Result, error) {
	ctx, span := r.tracer.Start(ctx, "run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("archive", archivePath),
			attribute.String("conference", r.cfg.Conference.Name),
		),
	)
	defer span.End()

	r.logger.InfoContext(ctx, "Starting run",
		slog.String("archive", archivePath),
		slog.String("conference", r.cfg.Conference.Name))
	start := time.Now()

	if err := r.prepare(archivePath); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	result := &Result{}
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{StageLoad, func(ctx context.Context) error { return r.load(ctx, archivePath, result) }},
		{StageIndex, func(ctx context.Context) error { return r.index(ctx, result) }},
		{StageAggregate, func(ctx context.Context) error { return r.aggregate(ctx, result) }},
		{StageFormat, func(ctx context.Context) error { return r.format(ctx, result) }},
		{StageRender, func(ctx context.Context) error { return r.render(ctx, result) }},
		{StageExport, func(ctx context.Context) error { return r.export(ctx, result) }},
	}

	for _, s := range stages {
		if err := r.runStage(ctx, s.name, s.fn); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	span.SetStatus(codes.Ok, "")
	r.logger.InfoContext(ctx, "Run completed",
		slog.Int("reviews", len(result.Reviews)),
		slog.Int("artifacts", len(result.Artifacts)),
		slog.Duration("duration", time.Since(start)))
	return result, nil
}

// prepare checks the input and every enabled output before anything is
// read or written
func (r *Runner) prepare(archivePath string) error {
	if err := r.validator.ValidateArchive(archivePath); err != nil {
		return err
	}
	if err := r.validator.ValidateOutputFile(r.paths.ReportFile); err != nil {
		return err
	}
	if r.paths.CSVDir != "" {
		if err := r.validator.ValidateOutputDirectory(r.paths.CSVDir); err != nil {
			return err
		}
	}
	if r.paths.XLSXFile != "" {
		if err := r.validator.ValidateWorkbookPath(r.paths.XLSXFile); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := r.tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("stage", name)),
	)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	infrastructure.RecordStage(ctx, r.metrics, name, duration, err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		r.logger.DebugContext(ctx, "Stage failed",
			slog.String("stage", name),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return err
	}

	span.SetStatus(codes.Ok, "")
	r.logger.DebugContext(ctx, "Stage completed",
		slog.String("stage", name),
		slog.Duration("duration", duration))
	return nil
}

func (r *Runner) load(ctx context.Context, archivePath string, result *Result) error {
	archive, err := easychair.Open(archivePath, easychair.ResourcesFromConfig(r.cfg.Conference), r.logger)
	if err != nil {
		return err
	}
	defer archive.Close()

	reviews, err := archive.Reviews(ctx)
	if err != nil {
		return err
	}
	assignments, err := archive.TopicAssignments(ctx, r.cfg.Conference.TopicsMarker)
	if err != nil {
		return err
	}

	result.Updated = archive.ModTime()
	result.Reviews = reviews
	result.Assignments = assignments

	if r.metrics != nil {
		r.metrics.ReviewsLoaded.Add(ctx, int64(len(reviews)))
		r.metrics.TopicRowsLoaded.Add(ctx, int64(len(assignments)))
	}
	return nil
}

func (r *Runner) index(ctx context.Context, result *Result) error {
	result.Index = scoring.BuildTopicIndex(result.Assignments)
	r.logger.DebugContext(ctx, "Built topic index",
		slog.Int("submissions", len(result.Index.BySubmission)),
		slog.Int("topics", len(result.Index.Counts)))
	return nil
}

func (r *Runner) aggregate(ctx context.Context, result *Result) error {
	aggregates, err := scoring.NewAggregator(r.scale, r.logger).Aggregate(ctx, result.Reviews, result.Index)
	if err != nil {
		return err
	}
	result.Aggregates = aggregates
	return nil
}

func (r *Runner) format(ctx context.Context, result *Result) error {
	var err error
	if result.Reviewers, err = r.formatTable(ctx, "reviewers", result.Aggregates.ByReviewer); err != nil {
		return err
	}
	if result.Batches, err = r.formatTable(ctx, "batches", result.Aggregates.ByBatch); err != nil {
		return err
	}
	if len(result.Aggregates.ByTopic.Groups()) > 0 {
		if result.Topics, err = r.formatTable(ctx, "topics", result.Aggregates.ByTopic); err != nil {
			return err
		}
	} else {
		r.logger.InfoContext(ctx, "No topic information found",
			slog.String("resource", r.cfg.Conference.FieldValuesResource))
	}

	result.Document = report.Document{
		Conference:          r.cfg.Conference.Name,
		Updated:             result.Updated,
		Columns:             r.scale.Labels(),
		Reviewers:           result.Reviewers,
		Batches:             result.Batches,
		Topics:              result.Topics,
		FieldValuesResource: r.cfg.Conference.FieldValuesResource,
	}
	return nil
}

func (r *Runner) formatTable(ctx context.Context, name string, h *scoring.Histogram) (*report.Table, error) {
	table, err := report.Format(h)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, appErr.WithContext("table", name)
		}
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.TableRows.Add(ctx, int64(len(table.Rows)),
			metric.WithAttributes(attribute.String("table", name)))
	}
	return table, nil
}

func (r *Runner) render(ctx context.Context, result *Result) error {
	if err := report.WriteFile(r.paths.ReportFile, result.Document); err != nil {
		return err
	}
	r.artifactWritten(ctx, result, "html", r.paths.ReportFile)
	return nil
}

func (r *Runner) export(ctx context.Context, result *Result) error {
	if r.paths.CSVDir == "" && r.paths.XLSXFile == "" {
		return nil
	}

	dataset := exporter.Dataset{
		Reviewers:  result.Reviewers,
		Batches:    result.Batches,
		Topics:     result.Topics,
		Aggregates: result.Aggregates,
		Index:      result.Index,
	}

	if r.paths.CSVDir != "" {
		written, err := exporter.NewTableExporter(r.paths.CSVDir, r.logger).ExportCSV(ctx, dataset)
		for _, path := range written {
			r.artifactWritten(ctx, result, "csv", path)
		}
		if err != nil {
			return err
		}
	}

	if r.paths.XLSXFile != "" {
		if err := exporter.NewWorkbookWriter(r.logger).Write(ctx, r.paths.XLSXFile, dataset); err != nil {
			return err
		}
		r.artifactWritten(ctx, result, "xlsx", r.paths.XLSXFile)
	}
	return nil
}

func (r *Runner) artifactWritten(ctx context.Context, result *Result, kind, path string) {
	result.Artifacts = append(result.Artifacts, path)
	if r.metrics != nil {
		r.metrics.ArtifactsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
	r.logger.InfoContext(ctx, "Wrote artifact",
		slog.String("kind", kind),
		slog.String("path", path))
}
