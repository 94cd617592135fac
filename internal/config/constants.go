package config

const (
	// EnvPrefix is prepended to every key when reading environment variables,
	// e.g. J2D_DAYONE_BINARY.
	EnvPrefix = "J2D"

	// DefaultDayOneBinary is the Day One command-line tool name looked up on PATH
	DefaultDayOneBinary = "dayone2"

	// DefaultReportPath is where the missing attachment report is written
	DefaultReportPath = "./missing-attachments-report.json"

	// DefaultLogDir is the directory that receives the per-run debug log file
	DefaultLogDir = "."
)
