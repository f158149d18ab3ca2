package infrastructure

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabinspect/internal/config"
)

func testTelemetryConfig() config.TelemetryConfig {
	return config.Default().Telemetry
}

func TestInitializeTelemetry_Defaults(t *testing.T) {
	tel, err := InitializeTelemetry(testTelemetryConfig(), slog.Default())
	require.NoError(t, err)
	require.NotNil(t, tel)

	assert.Nil(t, tel.TracerProvider, "tracing is off by default")
	assert.NotNil(t, tel.Tracer)
	assert.NotNil(t, tel.MeterProvider)
	assert.NotNil(t, tel.Registry)
	assert.NotNil(t, tel.Metrics)

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestInitializeTelemetry_StdoutTracing(t *testing.T) {
	cfg := testTelemetryConfig()
	cfg.TraceExporter = "stdout"

	tel, err := InitializeTelemetry(cfg, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, tel.TracerProvider)

	ctx, span := tel.Tracer.Start(context.Background(), "test-operation")
	assert.NotEmpty(t, TraceIDFromContext(ctx))
	assert.Equal(t, span.SpanContext().TraceID().String(), TraceIDFromContext(ctx))
	span.End()

	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestInitializeTelemetry_UnsupportedExporter(t *testing.T) {
	cfg := testTelemetryConfig()
	cfg.TraceExporter = "zipkin"

	_, err := InitializeTelemetry(cfg, slog.Default())
	assert.Error(t, err)
}

func TestInspectionMetrics_Gathered(t *testing.T) {
	tel, err := InitializeTelemetry(testTelemetryConfig(), slog.Default())
	require.NoError(t, err)
	defer tel.Shutdown(context.Background())

	tel.Metrics.RecordInspection(context.Background(), "csv", "success", 25*time.Millisecond, 10, 2)

	families, err := tel.Registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["tabinspect_inspections_total"])
	assert.True(t, names["tabinspect_rows_loaded_total"])
	assert.True(t, names["tabinspect_missing_values_total"])
}

func TestShutdown_WritesMetricsTextfile(t *testing.T) {
	cfg := testTelemetryConfig()
	cfg.MetricsFile = filepath.Join(t.TempDir(), "tabinspect.prom")

	tel, err := InitializeTelemetry(cfg, slog.Default())
	require.NoError(t, err)

	tel.Metrics.RecordInspection(context.Background(), "excel", "parse_failure", time.Millisecond, 0, 0)
	require.NoError(t, tel.Shutdown(context.Background()))

	content, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "tabinspect_inspections_total")
	assert.Contains(t, string(content), `outcome="parse_failure"`)
}

func TestNoopTelemetry(t *testing.T) {
	tel := NewNoopTelemetry()
	require.NotNil(t, tel.Metrics)

	tel.Metrics.RecordInspection(context.Background(), "csv", "success", time.Second, 1, 0)
	ctx, span := tel.Tracer.Start(context.Background(), "noop")
	RecordError(ctx, os.ErrNotExist)
	span.End()

	assert.NoError(t, tel.Shutdown(context.Background()))
}
