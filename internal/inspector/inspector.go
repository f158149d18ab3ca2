package inspector

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"tabinspect/internal/config"
	"tabinspect/internal/dataprocessing"
	"tabinspect/internal/dataset"
	apperrors "tabinspect/internal/errors"
	"tabinspect/internal/infrastructure"
	"tabinspect/internal/validation"
	"tabinspect/pkg/contracts/domain"
)

// DefaultHeadRows is how many leading rows a report shows
const DefaultHeadRows = 5

// Options configures an Inspector
type Options struct {
	HeadRows           int
	Sheet              string
	ExtraMissingTokens []string
	MaxParallel        int
}

// OptionsFromConfig maps the inspect section of the configuration
func OptionsFromConfig(cfg config.InspectConfig) Options {
	return Options{
		HeadRows:           cfg.HeadRows,
		Sheet:              cfg.Sheet,
		ExtraMissingTokens: cfg.ExtraMissingTokens,
		MaxParallel:        cfg.MaxParallel,
	}
}

// Inspector turns file paths into inspection reports
type Inspector struct {
	opts       Options
	files      *validation.FileValidator
	loader     *dataprocessing.Loader
	summarizer *dataprocessing.Summarizer
	telemetry  *infrastructure.Telemetry
	validate   *validator.Validate
	logger     *slog.Logger
	now        func() time.Time
}

// New creates an Inspector. A nil telemetry records nothing; a nil logger
// uses slog.Default.
func New(opts Options, telemetry *infrastructure.Telemetry, logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.Default()
	}
	if telemetry == nil {
		telemetry = infrastructure.NewNoopTelemetry()
	}
	if opts.HeadRows < 0 {
		opts.HeadRows = DefaultHeadRows
	}
	if opts.MaxParallel < 1 {
		opts.MaxParallel = 1
	}

	return &Inspector{
		opts:  opts,
		files: validation.NewFileValidator(logger),
		loader: dataprocessing.NewLoader(logger, dataprocessing.LoadOptions{
			Sheet:   opts.Sheet,
			Missing: dataset.NewMissingSet(opts.ExtraMissingTokens...),
		}),
		summarizer: dataprocessing.NewSummarizer(logger),
		telemetry:  telemetry,
		validate:   validator.New(),
		logger:     infrastructure.WithComponent(logger, "inspector"),
		now:        time.Now,
	}
}

// Inspect loads the file at path and builds its report. Errors are always
// *errors.AppError values of type NOT_FOUND, UNSUPPORTED_FORMAT or PARSING.
func (i *Inspector) Inspect(ctx context.Context, path string) (*domain.InspectionReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := i.telemetry.Tracer.Start(ctx, "inspector.inspect",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("file.path", path)),
	)
	defer span.End()

	start := time.Now()
	report, format, err := i.inspect(ctx, path)
	duration := time.Since(start)

	rows, missing := 0, 0
	if report != nil {
		rows, missing = report.Shape.Rows, report.TotalMissing
	}
	formatLabel := string(format)
	if formatLabel == "" {
		formatLabel = "unknown"
	}
	i.telemetry.Metrics.RecordInspection(ctx, formatLabel, Outcome(err), duration, rows, missing)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.Detail(err))
		i.logger.WarnContext(ctx, "inspection failed",
			slog.String("path", path),
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration))
		return nil, err
	}

	span.SetAttributes(
		attribute.String("file.format", string(format)),
		attribute.Int("dataset.rows", rows),
		attribute.Int("dataset.columns", report.Shape.Columns),
		attribute.Int("dataset.missing", missing),
	)
	i.logger.InfoContext(ctx, "inspection completed",
		slog.String("path", path),
		slog.String("report_id", report.ID),
		slog.Int("rows", rows),
		slog.Int("columns", report.Shape.Columns),
		slog.Duration("duration", duration))

	return report, nil
}

func (i *Inspector) inspect(ctx context.Context, path string) (*domain.InspectionReport, domain.FileFormat, error) {
	format, err := i.files.ValidateInputFile(path)
	if err != nil {
		return nil, format, typed(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, format, apperrors.NewParsingError("inspection cancelled", err)
	}

	ds, src, err := i.loader.Load(ctx, path)
	if err != nil {
		return nil, format, typed(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, format, apperrors.NewParsingError("inspection cancelled", err)
	}

	summary := i.summarizer.Summarize(ctx, ds)
	report := i.buildReport(ds, src, summary)

	if err := i.validate.Struct(report); err != nil {
		return nil, format, apperrors.NewParsingError("failed to build report", err)
	}
	return report, format, nil
}

func (i *Inspector) buildReport(ds *dataset.Dataset, src dataprocessing.Source, summary *dataprocessing.Summary) *domain.InspectionReport {
	rows, cols := ds.Shape()

	report := &domain.InspectionReport{
		ID:                 uuid.New().String(),
		Source:             src.Path,
		Format:             src.Format,
		Sheet:              src.Sheet,
		Shape:              domain.Shape{Rows: rows, Columns: cols},
		Columns:            ds.ColumnNames(),
		HeadLimit:          i.opts.HeadRows,
		NumericSummary:     summary.Numeric,
		CategoricalSummary: summary.Categorical,
		Missing:            summary.Missing,
		TotalMissing:       summary.TotalMissing,
		GeneratedAt:        i.now().UTC(),
	}

	for _, idx := range ds.Head(i.opts.HeadRows) {
		report.Head = append(report.Head, domain.HeadRow{Index: idx, Values: ds.Row(idx)})
	}

	report.DTypes = make([]domain.ColumnType, 0, cols)
	for _, col := range ds.Columns() {
		report.DTypes = append(report.DTypes, domain.ColumnType{Column: col.Name, DType: col.Kind.String()})
	}

	return report
}

// typed makes sure err belongs to the closed taxonomy. Anything that is not
// already an AppError is a parse failure.
func typed(err error) error {
	if apperrors.TypeOf(err) != "" {
		return err
	}
	return apperrors.NewParsingError(err.Error(), nil)
}

// Outcome is the metrics label for an inspection result
func Outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case apperrors.IsNotFound(err):
		return "not_found"
	case apperrors.IsUnsupportedFormat(err):
		return "unsupported_format"
	default:
		return "parse_failure"
	}
}
