// Package config provides configuration management for tabinspect.
// It loads settings from multiple sources, validates them, and exposes a
// typed Config used by the CLI and the inspector.
//
// # Configuration Sources
//
// Configuration is assembled in the following order, later sources winning:
//
//	1. Default values (Default)
//	2. YAML configuration file (tabinspect.yaml, configs/tabinspect.yaml or --config)
//	3. Environment variables (highest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TABINSPECT_<SECTION>_<FIELD>:
//
//	TABINSPECT_LOGGING_LEVEL=debug
//	TABINSPECT_INSPECT_HEAD_ROWS=10
//	TABINSPECT_INSPECT_SHEET=Measurements
//	TABINSPECT_INSPECT_EXTRA_MISSING_TOKENS=-,?
//	TABINSPECT_TELEMETRY_METRICS_FILE=/var/lib/node_exporter/tabinspect.prom
//
// # Validation
//
// Load validates the result with go-playground/validator struct tags, so an
// unknown log level, output format or exporter is rejected up front.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
