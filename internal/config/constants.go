package config

import "glreport/pkg/contracts"

// Application constants
const (
	AppName    = "glreport"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment override, e.g. GLREPORT_PATHS_OUTPUT_DIR.
	EnvPrefix      = "GLREPORT"
	ConfigFileName = "glreport.yaml"

	// File Paths (relative to the working directory)
	DefaultInputDir       = "."
	DefaultOutputDir      = "output"
	DefaultLogsDir        = "logs"
	DefaultReportFileName = "report.md"

	// Report
	DefaultReportTitle       = "GL Data Analysis Report"
	DefaultTimestampFormat   = "2006-01-02 15:04:05"
	DefaultChartWidthInches  = 10.0
	DefaultChartHeightInches = 6.0

	// Log Settings
	DefaultLogLevel = "info"
)

// SpreadsheetExtensions are the input extensions the loader understands.
var SpreadsheetExtensions = []string{".xlsx", ".xlsm", ".csv"}

// TempFilePrefixes mark editor lock files that sit next to real workbooks.
var TempFilePrefixes = []string{"~$", ".~lock.", ".~"}
