// Package cli implements the j2d command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mrlokans/journey2dayone/internal/audit"
	"github.com/mrlokans/journey2dayone/internal/config"
	"github.com/mrlokans/journey2dayone/internal/database"
	"github.com/mrlokans/journey2dayone/internal/database/runs"
	"github.com/mrlokans/journey2dayone/internal/dayone"
	"github.com/mrlokans/journey2dayone/internal/entities"
	"github.com/mrlokans/journey2dayone/internal/importers"
	"github.com/mrlokans/journey2dayone/internal/journey"
	"github.com/mrlokans/journey2dayone/internal/logging"
	"github.com/mrlokans/journey2dayone/internal/markup"
	"github.com/mrlokans/journey2dayone/internal/validation"
)

// ErrInvalidSource is returned when the source directory cannot be used.
var ErrInvalidSource = errors.New("invalid source directory")

// ImportCommand imports a Journey export directory into a Day One journal.
type ImportCommand struct {
	Journal    string
	SourceDir  string
	ConfigFile string
	Config     *config.Config

	out    io.Writer
	runner dayone.Runner
	now    func() time.Time
}

// NewImportCommand creates an ImportCommand writing its console output to out.
func NewImportCommand(out io.Writer) *ImportCommand {
	return &ImportCommand{out: out, now: time.Now}
}

// NewRootCommand builds the j2d command.
func NewRootCommand(version string) *cobra.Command {
	return newRootCommand(version, nil)
}

func newRootCommand(version string, runner dayone.Runner) *cobra.Command {
	var configFile string
	var noLogFile bool

	root := &cobra.Command{
		Use:   "j2d <destination-journal> <source-directory>",
		Short: "Import a Journey JSON export into Day One",
		Long: `Import a Journey JSON export into Day One.

Every *.json entry file below <source-directory> is validated and added to
<destination-journal> through the dayone2 command line tool, one at a time.
Entries with invalid fields are imported with those fields fixed or dropped;
attachments missing from the export are listed in a report once the run is over.

The destination journal must already exist in Day One.

Examples:
  j2d Journey ~/Downloads/journey-export            # Import into the "Journey" journal
  j2d Journey ./export --dry-run -v                 # Validate and show dayone2 commands
  j2d Journey ./export --report missing.yaml        # Write the report as YAML
  j2d Journey ./export --db ~/.j2d/ledger.db        # Keep a ledger of runs and failures`,
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.NewViper(configFile)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			if noLogFile {
				v.Set(config.KeyLogFileEnabled, false)
			}

			c := NewImportCommand(cmd.OutOrStdout())
			c.Journal = args[0]
			c.SourceDir = args[1]
			c.ConfigFile = configFile
			c.Config = config.NewConfig(v)
			c.runner = runner
			return c.Run(cmd.Context())
		},
	}

	flags := root.Flags()
	flags.StringVar(&configFile, "config", "", "Config file (yaml, toml, json, ...)")
	flags.String("dayone-bin", config.DefaultDayOneBinary, "Path to the dayone2 command line tool")
	flags.Bool("dry-run", false, "Validate entries and print dayone2 commands without running them")
	flags.BoolP("verbose", "v", false, "Show debug output on the console")
	flags.String("log-dir", config.DefaultLogDir, "Directory for the per-run debug log file")
	flags.BoolVar(&noLogFile, "no-log-file", false, "Do not write a debug log file")
	flags.String("report", config.DefaultReportPath, "Missing attachment report path (.json, .yaml or .yml)")
	flags.String("db", "", "SQLite run ledger path (disabled when empty)")
	flags.String("default-timezone", "", "Timezone for entries without a valid one (default: host timezone)")

	return root
}

var flagKeys = map[string]string{
	"dayone-bin":       config.KeyDayOneBinary,
	"dry-run":          config.KeyDryRun,
	"verbose":          config.KeyVerbose,
	"log-dir":          config.KeyLogDir,
	"report":           config.KeyReportPath,
	"db":               config.KeyDatabasePath,
	"default-timezone": config.KeyDefaultTimezone,
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return errors.Wrapf(err, "binding --%s", flag)
		}
	}
	return nil
}

// Run executes the import.
func (c *ImportCommand) Run(ctx context.Context) error {
	cfg := c.Config
	if cfg == nil {
		v, err := config.NewViper(c.ConfigFile)
		if err != nil {
			return err
		}
		cfg = config.NewConfig(v)
	}

	sourceDir, err := ResolveSourceDir(c.SourceDir)
	if err != nil {
		return err
	}

	logger, cleanup, err := c.newLogger(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Infof("Importing %s into Day One journal %q", sourceDir, c.Journal)
	if cfg.DayOne.DryRun {
		logger.Info("Dry run: nothing will be added to Day One")
	}

	validator, err := validation.NewValidator(validation.Options{
		SourceDir:       sourceDir,
		DefaultTimezone: cfg.Timezone.Default,
		Converter:       markup.NewHTMLConverter(),
		Logger:          logger,
	})
	if err != nil {
		return err
	}
	logger.Debugf("Entries without a valid timezone will use %s", validator.HostTimezone())

	client := dayone.NewClient(dayone.Options{
		Binary:  ExpandHome(cfg.DayOne.Binary),
		Journal: c.Journal,
		Runner:  c.runner,
		DryRun:  cfg.DayOne.DryRun,
		Logger:  logger,
	})

	opts := importers.Options{
		Journal:      c.Journal,
		SourceDir:    sourceDir,
		ReportWriter: audit.NewAuditor(ExpandHome(cfg.Report.Path), logger),
		Logger:       logger,
	}

	recorder, closeLedger := c.openLedger(cfg, sourceDir, logger)
	defer closeLedger()
	if recorder != nil {
		opts.Recorder = recorder
	}

	pipeline := importers.NewPipeline(journey.NewReader(sourceDir, logger), validator, client, opts)
	result, runErr := pipeline.Run(ctx)

	if recorder != nil {
		c.printLedgerSummary(recorder, logger)
	}
	if runErr != nil {
		return errors.Wrapf(runErr, "import stopped after %d of %d entries", result.Attempted, result.Total)
	}
	return nil
}

func (c *ImportCommand) newLogger(cfg *config.Config) (*zap.SugaredLogger, func(), error) {
	var filePath string
	if cfg.Logging.FileEnabled {
		filePath = filepath.Join(ExpandHome(cfg.Logging.Dir), logging.FileName(c.now()))
	}

	logger, cleanup, err := logging.New(logging.Options{
		Verbose:  cfg.Logging.Verbose,
		FilePath: filePath,
		Console:  c.out,
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "setting up logging")
	}
	if filePath != "" {
		logger.Debugf("Writing debug log to %s", filePath)
	}
	return logger, cleanup, nil
}

// openLedger opens the run ledger when one is configured. A ledger that
// cannot be opened is reported and the import continues without it.
func (c *ImportCommand) openLedger(cfg *config.Config, sourceDir string, logger *zap.SugaredLogger) (*runs.Recorder, func()) {
	if cfg.Database.Path == "" {
		return nil, func() {}
	}

	db, err := database.NewDatabase(ExpandHome(cfg.Database.Path), logger)
	if err != nil {
		logger.Warnf("Run ledger disabled: %v", err)
		return nil, func() {}
	}

	return runs.NewRecorder(db.DB, c.Journal, sourceDir), func() {
		if err := db.Close(); err != nil {
			logger.Debugf("Closing run ledger: %v", err)
		}
	}
}

func (c *ImportCommand) printLedgerSummary(recorder *runs.Recorder, logger *zap.SugaredLogger) {
	runID := recorder.RunID()
	if runID == "" {
		return
	}

	failed, err := recorder.FailedOutcomes(runID)
	if err != nil {
		logger.Warnf("Reading run ledger: %v", err)
		return
	}

	logger.Infof("Run %s recorded in ledger", runID)
	if len(failed) > 0 {
		logger.Infof("%d failed entries can be looked up with run id %s (status %q)",
			len(failed), runID, entities.OutcomeStatusFailed)
	}
}

// ResolveSourceDir expands a leading ~ and checks that path is an existing directory.
func ResolveSourceDir(path string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.WithHint(
			errors.Mark(errors.Wrapf(err, "source directory %s", abs), ErrInvalidSource),
			"pass the directory the Journey export zip was extracted to",
		)
	}
	if !info.IsDir() {
		return "", errors.WithHint(
			errors.Mark(errors.Newf("source %s is not a directory", abs), ErrInvalidSource),
			"extract the Journey export zip and pass the resulting directory",
		)
	}
	return abs, nil
}

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// PrintError writes err and any attached hints to w.
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}
