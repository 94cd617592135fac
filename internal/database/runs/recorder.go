// Package runs records import runs and their per-entry outcomes in the ledger.
package runs

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

// ErrNoActiveRun is returned when outcomes are recorded before StartRun.
var ErrNoActiveRun = errors.New("no import run in progress")

// Recorder writes the ledger rows of one import run.
type Recorder struct {
	db        *gorm.DB
	journal   string
	sourceDir string
	runID     string
	now       func() time.Time
}

func NewRecorder(db *gorm.DB, journal, sourceDir string) *Recorder {
	return &Recorder{
		db:        db,
		journal:   journal,
		sourceDir: sourceDir,
		now:       time.Now,
	}
}

// RunID returns the id of the run started by StartRun, or "".
func (r *Recorder) RunID() string {
	return r.runID
}

// StartRun creates the run row and returns its id.
func (r *Recorder) StartRun(total int) (string, error) {
	run := entities.ImportRun{
		RunID:        uuid.New().String(),
		Journal:      r.journal,
		SourceDir:    r.sourceDir,
		Status:       entities.RunStatusRunning,
		TotalEntries: total,
		StartedAt:    r.now(),
	}
	if err := r.db.Create(&run).Error; err != nil {
		return "", errors.Wrap(err, "creating import run")
	}
	r.runID = run.RunID
	return run.RunID, nil
}

// RecordOutcome stores what happened to one entry in the current run.
func (r *Recorder) RecordOutcome(outcome entities.EntryOutcome) error {
	if r.runID == "" {
		return ErrNoActiveRun
	}
	outcome.ID = 0
	outcome.RunID = r.runID
	if outcome.CreatedAt.IsZero() {
		outcome.CreatedAt = r.now()
	}
	if err := r.db.Create(&outcome).Error; err != nil {
		return errors.Wrapf(err, "recording outcome for %s", outcome.SourcePath)
	}
	return nil
}

// CompleteRun stores the final counters. A non-nil runErr marks the run as aborted.
func (r *Recorder) CompleteRun(result *entities.BatchResult, runErr error) error {
	if r.runID == "" {
		return ErrNoActiveRun
	}

	now := r.now()
	updates := map[string]interface{}{
		"status":       entities.RunStatusCompleted,
		"completed_at": &now,
		"error":        "",
	}
	if runErr != nil {
		updates["status"] = entities.RunStatusAborted
		updates["error"] = runErr.Error()
	}
	if result != nil {
		updates["total_entries"] = result.Total
		updates["attempted"] = result.Attempted
		updates["succeeded"] = result.Succeeded
		updates["failed"] = result.Failed()
		updates["skipped"] = result.Skipped()
		updates["skipped_attachments"] = len(result.SkippedAttachmentPaths())
	}

	err := r.db.Model(&entities.ImportRun{}).
		Where("run_id = ?", r.runID).
		Updates(updates).Error
	return errors.Wrap(err, "completing import run")
}

// GetRun loads a run by id.
func (r *Recorder) GetRun(runID string) (*entities.ImportRun, error) {
	var run entities.ImportRun
	if err := r.db.Where("run_id = ?", runID).First(&run).Error; err != nil {
		return nil, errors.Wrapf(err, "loading import run %s", runID)
	}
	return &run, nil
}

// FailedOutcomes lists the entries of a run that dayone2 rejected, in processing order.
func (r *Recorder) FailedOutcomes(runID string) ([]entities.EntryOutcome, error) {
	var outcomes []entities.EntryOutcome
	err := r.db.Where("run_id = ? AND status = ?", runID, entities.OutcomeStatusFailed).
		Order("id ASC").
		Find(&outcomes).Error
	if err != nil {
		return nil, errors.Wrapf(err, "listing failed entries of run %s", runID)
	}
	return outcomes, nil
}
