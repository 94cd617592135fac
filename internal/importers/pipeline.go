package importers

import (
	"context"
	"iter"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/mrlokans/journey2dayone/internal/dayone"
	"github.com/mrlokans/journey2dayone/internal/entities"
	"github.com/mrlokans/journey2dayone/internal/journey"
	"github.com/mrlokans/journey2dayone/internal/validation"
)

// EntrySource yields raw entries, or an error for each source file that
// could not be read.
//
// Implementations:
//   - journey.Reader - Journey JSON export directory
type EntrySource interface {
	Entries() iter.Seq2[entities.RawEntry, error]
}

// EntryValidator decides whether and how a raw entry is imported.
type EntryValidator interface {
	Validate(raw entities.RawEntry) validation.Outcome
}

// EntryImporter creates one entry in Day One.
type EntryImporter interface {
	Import(ctx context.Context, entry entities.NormalizedEntry) (dayone.Result, error)
}

// RunRecorder keeps a persistent record of the run. Optional.
type RunRecorder interface {
	StartRun(total int) (string, error)
	RecordOutcome(outcome entities.EntryOutcome) error
	CompleteRun(result *entities.BatchResult, runErr error) error
}

// ReportWriter persists the list of missing attachments. Optional.
type ReportWriter interface {
	WriteMissingAttachments(journal, sourceDir string, missing []entities.MissingAttachment) (string, error)
}

type Options struct {
	// Journal and SourceDir only label the missing-attachment report.
	Journal      string
	SourceDir    string
	Recorder     RunRecorder
	ReportWriter ReportWriter
	Logger       *zap.SugaredLogger
}

// Pipeline handles the import workflow:
// load → validate → import one by one → report.
//
// Entries are imported strictly sequentially. A failed entry never stops
// the run; only an unusable Day One CLI does.
type Pipeline struct {
	source    EntrySource
	validator EntryValidator
	importer  EntryImporter
	recorder  RunRecorder
	reporter  ReportWriter
	journal   string
	sourceDir string
	logger    *zap.SugaredLogger
}

func NewPipeline(source EntrySource, validator EntryValidator, importer EntryImporter, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Pipeline{
		source:    source,
		validator: validator,
		importer:  importer,
		recorder:  opts.Recorder,
		reporter:  opts.ReportWriter,
		journal:   opts.Journal,
		sourceDir: opts.SourceDir,
		logger:    logger.Named("importer"),
	}
}

// Run imports every entry of the source. The returned result is never nil;
// on a fatal error it holds whatever was done before the run stopped.
// Entries already created in Day One are not rolled back.
func (p *Pipeline) Run(ctx context.Context) (*entities.BatchResult, error) {
	result := entities.NewBatchResult()

	entries := p.collect(result)
	result.Total = len(entries)

	p.startRun(result)

	runErr := p.importAll(ctx, entries, result)

	p.report(result)
	p.completeRun(result, runErr)

	return result, runErr
}

// collect drains the source and validates every entry, so that the total is
// known before the first import.
func (p *Pipeline) collect(result *entities.BatchResult) []entities.NormalizedEntry {
	var entries []entities.NormalizedEntry

	for raw, err := range p.source.Entries() {
		if err != nil {
			skipped := entities.SkippedEntry{Reason: entities.SkipReasonMalformed}
			var malformed *journey.MalformedSourceFileError
			if errors.As(err, &malformed) {
				skipped.SourcePath = malformed.Path
			}
			p.logger.Errorf("Skipping unreadable source file: %v", err)
			result.AddSkipped(skipped)
			continue
		}

		outcome := p.validator.Validate(raw)
		result.AddMissingAttachments(outcome.MissingAttachments...)

		if outcome.Skipped() {
			result.AddSkipped(entities.SkippedEntry{
				SourcePath: raw.SourcePath,
				EntryID:    raw.ID,
				Reason:     outcome.Skip.Reason,
			})
			continue
		}
		entries = append(entries, *outcome.Entry)
	}

	return entries
}

func (p *Pipeline) importAll(ctx context.Context, entries []entities.NormalizedEntry, result *entities.BatchResult) error {
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "import interrupted")
		}

		res, err := p.importer.Import(ctx, entry)
		if err != nil && (errors.Is(err, dayone.ErrToolUnavailable) || ctx.Err() != nil) {
			p.logger.Errorf("Can't access your Day One journal: %v", err)
			return err
		}

		result.Attempted++

		if err != nil {
			p.logger.Errorf("Failed to add entry %s (%s): %v", entry.ForeignID, entry.SourcePath, err)
			result.AddFailed(entities.FailedEntry{
				SourcePath: entry.SourcePath,
				EntryID:    entry.ForeignID,
				Error:      err.Error(),
			})
			p.recordOutcome(entities.EntryOutcome{
				ForeignID:  entry.ForeignID,
				SourcePath: entry.SourcePath,
				Status:     entities.OutcomeStatusFailed,
				ErrorMsg:   err.Error(),
			})
			continue
		}

		result.Succeeded++
		p.logger.Info(progressLine(result.Attempted, result.Total, entry, res.EntryID))
		p.recordOutcome(entities.EntryOutcome{
			ForeignID:  entry.ForeignID,
			SourcePath: entry.SourcePath,
			Status:     entities.OutcomeStatusImported,
			DayOneID:   res.EntryID,
		})
	}
	return nil
}

func (p *Pipeline) startRun(result *entities.BatchResult) {
	if p.recorder == nil {
		return
	}
	runID, err := p.recorder.StartRun(result.Total)
	if err != nil {
		p.logger.Warnf("Run ledger unavailable, continuing without it: %v", err)
		p.recorder = nil
		return
	}
	p.logger.Debugf("Started ledger run %s", runID)

	for _, s := range result.SkippedEntries {
		p.recordOutcome(entities.EntryOutcome{
			ForeignID:  s.EntryID,
			SourcePath: s.SourcePath,
			Status:     entities.OutcomeStatusSkipped,
			Reason:     string(s.Reason),
		})
	}
}

func (p *Pipeline) recordOutcome(outcome entities.EntryOutcome) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordOutcome(outcome); err != nil {
		p.logger.Warnf("Failed to record outcome of %s in run ledger: %v", outcome.SourcePath, err)
	}
}

func (p *Pipeline) completeRun(result *entities.BatchResult, runErr error) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.CompleteRun(result, runErr); err != nil {
		p.logger.Warnf("Failed to complete run in ledger: %v", err)
	}
}
