package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"confstats/internal/config"
)

func TestInitializeOTel_NoTracing(t *testing.T) {
	providers, err := initializeOTel(config.TelemetryConfig{TraceExporter: "none", Environment: "test"}, nil, &bytes.Buffer{})
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Meter)
	assert.NotNil(t, providers.Registry)

	ctx, span := providers.Tracer.Start(context.Background(), "noop")
	span.End()
	assert.Empty(t, TraceIDFromContext(ctx))
}

func TestInitializeOTel_StdoutTracing(t *testing.T) {
	var out bytes.Buffer
	providers, err := initializeOTel(config.TelemetryConfig{TraceExporter: "stdout"}, nil, &out)
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "aggregate")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	RecordError(ctx, errors.New("boom"))
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, out.String(), `"Name": "aggregate"`)
	assert.Contains(t, out.String(), "boom")
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := initializeOTel(config.TelemetryConfig{TraceExporter: "jaeger"}, nil, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestRunMetrics_WriteMetricsFile(t *testing.T) {
	providers, err := initializeOTel(config.TelemetryConfig{TraceExporter: "none"}, nil, &bytes.Buffer{})
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreateRunMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.ReviewsLoaded.Add(ctx, 7)
	RecordStage(ctx, metrics, "load", 20*time.Millisecond, nil)
	RecordStage(ctx, metrics, "format", time.Millisecond, errors.New("degenerate"))

	path := filepath.Join(t.TempDir(), "confstats.prom")
	require.NoError(t, providers.WriteMetricsFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "confstats_reviews_loaded_total 7")
	assert.Contains(t, text, "confstats_stage_duration_seconds")
	assert.Contains(t, text, `stage="load"`)
	assert.Contains(t, text, `confstats_stage_errors_total{stage="format"} 1`)
}

func TestRecordStage_NilMetrics(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordStage(context.Background(), nil, "load", time.Second, nil)
	})
}

func TestWriteMetricsFile_NotInitialized(t *testing.T) {
	p := &OTelProviders{}
	assert.Error(t, p.WriteMetricsFile(filepath.Join(t.TempDir(), "m.prom")))
}
