package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "tabinspect/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "TABINSPECT"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Inspect   InspectConfig   `yaml:"inspect" envconfig:"INSPECT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stderr file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Output file,required_if=Output both"`
}

// InspectConfig controls how files are loaded and reported
type InspectConfig struct {
	DefaultPath        string   `yaml:"default_path" envconfig:"DEFAULT_PATH" validate:"required"`
	HeadRows           int      `yaml:"head_rows" envconfig:"HEAD_ROWS" validate:"min=0,max=1000"`
	Sheet              string   `yaml:"sheet" envconfig:"SHEET"`
	ExtraMissingTokens []string `yaml:"extra_missing_tokens" envconfig:"EXTRA_MISSING_TOKENS"`
	OutputFormat       string   `yaml:"output_format" envconfig:"OUTPUT_FORMAT" validate:"oneof=text json"`
	MaxParallel        int      `yaml:"max_parallel" envconfig:"MAX_PARALLEL" validate:"min=1,max=64"`
}

// TelemetryConfig contains tracing and metrics configuration
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	EnableMetrics bool   `yaml:"enable_metrics" envconfig:"ENABLE_METRICS"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "warn",
			Format:   "json",
			Output:   "stderr",
			FilePath: "logs/tabinspect.log",
		},
		Inspect: InspectConfig{
			DefaultPath:  "Data/measurements.csv",
			HeadRows:     5,
			OutputFormat: "text",
			MaxParallel:  4,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "tabinspect",
			TraceExporter: "none",
			EnableMetrics: true,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// TABINSPECT_* environment variables, in increasing order of precedence.
// An empty configFile searches the usual locations.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = getConfigFilePath()
	} else if _, err := os.Stat(configFile); err != nil {
		return nil, apperrors.NewConfigError(fmt.Sprintf("config file %s", configFile), err)
	}

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err)
		}
	}

	// No default tags on the structs: envconfig only touches fields whose
	// variables are set, leaving file and Default() values in place.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at filePath onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

var validate = validator.New()

// Validate checks the configuration and normalises a few fields.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	c.Inspect.OutputFormat = strings.ToLower(c.Inspect.OutputFormat)

	if err := validate.Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"tabinspect.yaml",
		"configs/tabinspect.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}
