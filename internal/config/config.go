package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Viper keys. Flags are bound to the same names.
const (
	KeyDayOneBinary    = "dayone_binary"
	KeyDryRun          = "dry_run"
	KeyVerbose         = "verbose"
	KeyLogDir          = "log_dir"
	KeyLogFileEnabled  = "log_file_enabled"
	KeyReportPath      = "report_path"
	KeyDatabasePath    = "database_path"
	KeyDefaultTimezone = "default_timezone"
)

type (
	Config struct {
		DayOne
		Logging
		Report
		Database
		Timezone
	}

	DayOne struct {
		Binary string
		DryRun bool // Validate and print dayone2 invocations without running them
	}
	Logging struct {
		Dir         string
		FileEnabled bool
		Verbose     bool // Debug output on the console
	}
	Report struct {
		Path string // .json, .yaml or .yml
	}
	Database struct {
		Path string // Empty disables the run ledger
	}
	Timezone struct {
		Default string // Overrides host timezone detection when set
	}
)

// NewViper returns a viper instance with defaults and environment lookup set up.
// If configFile is not empty it is read as well; its format is taken from the extension.
func NewViper(configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDayOneBinary, DefaultDayOneBinary)
	v.SetDefault(KeyDryRun, false)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyLogDir, DefaultLogDir)
	v.SetDefault(KeyLogFileEnabled, true)
	v.SetDefault(KeyReportPath, DefaultReportPath)
	v.SetDefault(KeyDatabasePath, "")
	v.SetDefault(KeyDefaultTimezone, "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", configFile)
		}
	}

	return v, nil
}

// NewConfig snapshots the resolved settings from v.
func NewConfig(v *viper.Viper) *Config {
	return &Config{
		DayOne: DayOne{
			Binary: v.GetString(KeyDayOneBinary),
			DryRun: v.GetBool(KeyDryRun),
		},
		Logging: Logging{
			Dir:         v.GetString(KeyLogDir),
			FileEnabled: v.GetBool(KeyLogFileEnabled),
			Verbose:     v.GetBool(KeyVerbose),
		},
		Report: Report{
			Path: v.GetString(KeyReportPath),
		},
		Database: Database{
			Path: v.GetString(KeyDatabasePath),
		},
		Timezone: Timezone{
			Default: v.GetString(KeyDefaultTimezone),
		},
	}
}
