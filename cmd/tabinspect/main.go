package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tabinspect/internal/config"
	"tabinspect/internal/infrastructure"
	"tabinspect/internal/inspector"
	"tabinspect/internal/report"
	"tabinspect/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

// exitError carries a non-zero exit code out of a command
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

type rootFlags struct {
	configFile string
	format     string
	head       int
	sheet      string
	logLevel   string
	strict     bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "tabinspect [path ...]",
		Short: "Inspect CSV and Excel files",
		Long: `tabinspect loads tabular data files and prints their shape, columns,
first rows, data types, summary statistics and missing values.

Without arguments the configured default path (Data/measurements.csv) is
inspected. Inspection failures are printed and do not change the exit
status unless --strict is set.

Example:
  tabinspect data/prices.csv reports/q1.xlsx --format json`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, flags, args)
		},
	}

	root.Flags().StringVarP(&flags.configFile, "config", "c", "", "Path to YAML configuration file")
	root.Flags().StringVarP(&flags.format, "format", "f", "", "Output format (text, json)")
	root.Flags().IntVarP(&flags.head, "head", "n", inspector.DefaultHeadRows, "Number of leading rows to show")
	root.Flags().StringVar(&flags.sheet, "sheet", "", "Worksheet to read from Excel files (default: first sheet)")
	root.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.Flags().BoolVar(&flags.strict, "strict", false, "Exit with a non-zero status when an inspection fails")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	})

	return root
}

func runInspect(cmd *cobra.Command, flags *rootFlags, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger)
	if err != nil {
		logger.Warn("Failed to initialize telemetry, continuing without it", slog.String("error", err.Error()))
		telemetry = infrastructure.NewNoopTelemetry()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	renderer, err := report.NewRenderer(cfg.Inspect.OutputFormat)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = []string{cfg.Inspect.DefaultPath}
	}

	ctx = infrastructure.ContextWithTraceID(ctx)
	logger.InfoContext(ctx, "Starting inspection",
		slog.Int("files", len(paths)),
		slog.String("format", cfg.Inspect.OutputFormat),
		slog.String("version", contracts.Version))

	insp := inspector.New(inspector.OptionsFromConfig(cfg.Inspect), telemetry, logger)
	results, err := insp.Run(ctx, cmd.OutOrStdout(), renderer, paths...)
	if err != nil {
		return err
	}

	if flags.strict {
		if code := inspector.ExitCode(results); code != inspector.ExitOK {
			return &exitError{code: code}
		}
	}
	return nil
}

// loadConfig loads the configuration and applies command line overrides
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("format") {
		cfg.Inspect.OutputFormat = flags.format
	}
	if cmd.Flags().Changed("head") {
		cfg.Inspect.HeadRows = flags.head
	}
	if cmd.Flags().Changed("sheet") {
		cfg.Inspect.Sheet = flags.sheet
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
