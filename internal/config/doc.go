// Package config provides configuration for the journal-entry analyzer.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//	1. Default values (a run with nothing else configured analyzes the
//	   working directory and writes output/report.md)
//	2. glreport.yaml in the working directory or ./configs
//	3. A .env file in the working directory
//	4. GLREPORT_* environment variables
//
// # Environment Variables
//
//	GLREPORT_PATHS_INPUT_DIR=.
//	GLREPORT_PATHS_OUTPUT_DIR=output
//	GLREPORT_LOGGING_LEVEL=debug
//	GLREPORT_LOGGING_OUTPUT=both
//	GLREPORT_TELEMETRY_TRACE_EXPORTER=stdout
//	GLREPORT_TELEMETRY_METRICS_FILE=output/glreport.prom
//
// The result is checked with go-playground/validator struct tags before use.
package config
