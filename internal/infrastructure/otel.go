package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"tabinspect/internal/config"
	"tabinspect/pkg/contracts"
)

// InstrumentationName identifies tabinspect's tracer and meter.
const InstrumentationName = "tabinspect"

// Telemetry holds the tracing and metrics providers for one process run.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *InspectionMetrics

	metricsFile string
	logger      *slog.Logger
}

// InspectionMetrics are the instruments recorded for every inspected file.
type InspectionMetrics struct {
	Inspections   metric.Int64Counter
	Duration      metric.Float64Histogram
	RowsLoaded    metric.Int64Counter
	MissingValues metric.Int64Counter
}

// NewNoopTelemetry returns telemetry that records nothing. Used by tests and
// by callers that do not care about observability.
func NewNoopTelemetry() *Telemetry {
	meter := metricnoop.NewMeterProvider().Meter(InstrumentationName)
	metrics, _ := CreateInspectionMetrics(meter)
	return &Telemetry{
		Tracer:  tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		Meter:   meter,
		Metrics: metrics,
		logger:  slog.Default(),
	}
}

// InitializeTelemetry builds tracing and metrics according to cfg.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ctx := context.Background()

	res, err := createResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	t := NewNoopTelemetry()
	t.logger = logger
	t.metricsFile = cfg.MetricsFile

	if err := initializeTracing(cfg, res, t); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if cfg.EnableMetrics {
		if err := initializeMetrics(res, t); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	logger.DebugContext(ctx, "telemetry initialized",
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.Bool("metrics_enabled", cfg.EnableMetrics),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) (*resource.Resource, error) {
	hostname, _ := os.Hostname()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(contracts.Version),
		attribute.String("host.name", hostname),
	), nil
}

// initializeTracing sets up span export. Spans go to stderr so stdout only
// carries reports.
func initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, t *Telemetry) error {
	switch cfg.TraceExporter {
	case "stdout":
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(os.Stderr),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		t.TracerProvider = tp
		t.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(contracts.Version))
	case "none", "":
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}
	return nil
}

// initializeMetrics wires an OpenTelemetry meter to a private Prometheus
// registry. The registry is gathered into a textfile on Shutdown.
func initializeMetrics(res *resource.Resource, t *Telemetry) error {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	metrics, err := CreateInspectionMetrics(mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(contracts.Version)))
	if err != nil {
		return err
	}

	t.Registry = registry
	t.MeterProvider = mp
	t.Meter = mp.Meter(InstrumentationName)
	t.Metrics = metrics
	return nil
}

// CreateInspectionMetrics creates the inspection instruments on meter.
func CreateInspectionMetrics(meter metric.Meter) (*InspectionMetrics, error) {
	inspections, err := meter.Int64Counter(
		"tabinspect_inspections_total",
		metric.WithDescription("Total number of inspected files by format and outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"tabinspect_inspection_duration_seconds",
		metric.WithDescription("Time spent loading and summarising a file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	rows, err := meter.Int64Counter(
		"tabinspect_rows_loaded_total",
		metric.WithDescription("Total number of data rows loaded"),
	)
	if err != nil {
		return nil, err
	}

	missing, err := meter.Int64Counter(
		"tabinspect_missing_values_total",
		metric.WithDescription("Total number of missing cells found"),
	)
	if err != nil {
		return nil, err
	}

	return &InspectionMetrics{
		Inspections:   inspections,
		Duration:      duration,
		RowsLoaded:    rows,
		MissingValues: missing,
	}, nil
}

// RecordInspection records the outcome of one inspection.
func (m *InspectionMetrics) RecordInspection(ctx context.Context, format, outcome string, duration time.Duration, rows, missing int) {
	attrs := metric.WithAttributes(
		attribute.String("format", format),
		attribute.String("outcome", outcome),
	)
	m.Inspections.Add(ctx, 1, attrs)
	m.Duration.Record(ctx, duration.Seconds(), attrs)
	if rows > 0 {
		m.RowsLoaded.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("format", format)))
	}
	if missing > 0 {
		m.MissingValues.Add(ctx, int64(missing), metric.WithAttributes(attribute.String("format", format)))
	}
}

// Shutdown writes the metrics textfile, if configured, then flushes and
// stops the providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.metricsFile != "" && t.Registry != nil {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		} else {
			t.logger.DebugContext(ctx, "metrics written", slog.String("path", t.metricsFile))
		}
	}

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RecordError records an error on the current span
func RecordError(ctx context.Context, err error, options ...trace.EventOption) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.RecordError(err, options...)
	span.SetStatus(codes.Error, err.Error())
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
