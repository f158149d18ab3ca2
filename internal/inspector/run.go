package inspector

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	apperrors "tabinspect/internal/errors"
	"tabinspect/internal/report"
	"tabinspect/pkg/contracts/domain"
)

// Exit codes used in strict mode
const (
	ExitOK                = 0
	ExitNotFound          = 2
	ExitUnsupportedFormat = 3
	ExitParseFailure      = 4
)

// Result is the outcome of inspecting one path
type Result struct {
	Path   string
	Report *domain.InspectionReport
	Err    error
}

// InspectAll inspects every path, at most MaxParallel at a time. Results
// are returned in the order of paths regardless of completion order.
func (i *Inspector) InspectAll(ctx context.Context, paths []string) []Result {
	results := make([]Result, len(paths))

	var g errgroup.Group
	g.SetLimit(i.opts.MaxParallel)
	for idx, path := range paths {
		g.Go(func() error {
			r, err := i.Inspect(ctx, path)
			results[idx] = Result{Path: path, Report: r, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Run inspects paths and renders each report or failure to w in argument
// order. Inspection failures are rendered, not returned; the returned error
// is only set when writing to w fails.
func (i *Inspector) Run(ctx context.Context, w io.Writer, r report.Renderer, paths ...string) ([]Result, error) {
	results := i.InspectAll(ctx, paths)

	for idx, res := range results {
		if idx > 0 {
			if _, err := io.WriteString(w, r.Separator()); err != nil {
				return results, fmt.Errorf("write output: %w", err)
			}
		}

		var err error
		if res.Err != nil {
			err = r.RenderError(w, res.Path, res.Err)
		} else {
			err = r.Render(w, res.Report)
		}
		if err != nil {
			i.logger.ErrorContext(ctx, "failed to write report",
				slog.String("path", res.Path),
				slog.String("error", err.Error()))
			return results, fmt.Errorf("write output: %w", err)
		}
	}

	return results, nil
}

// ExitCode maps results to a strict-mode exit code: the highest code of any
// failure, or ExitOK when every inspection succeeded.
func ExitCode(results []Result) int {
	code := ExitOK
	for _, res := range results {
		code = max(code, exitCodeFor(res.Err))
	}
	return code
}

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case apperrors.IsNotFound(err):
		return ExitNotFound
	case apperrors.IsUnsupportedFormat(err):
		return ExitUnsupportedFormat
	default:
		return ExitParseFailure
	}
}
