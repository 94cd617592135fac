package entities

import "time"

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusAborted   RunStatus = "aborted"
)

type OutcomeStatus string

const (
	OutcomeStatusImported OutcomeStatus = "imported"
	OutcomeStatusFailed   OutcomeStatus = "failed"
	OutcomeStatusSkipped  OutcomeStatus = "skipped"
)

// ImportRun is the ledger row for one invocation of the importer.
type ImportRun struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	RunID              string     `gorm:"uniqueIndex;size:36" json:"run_id"`
	Journal            string     `gorm:"size:256" json:"journal"`
	SourceDir          string     `gorm:"size:1024" json:"source_dir"`
	Status             RunStatus  `gorm:"size:20" json:"status"`
	TotalEntries       int        `json:"total_entries"`
	Attempted          int        `json:"attempted"`
	Succeeded          int        `json:"succeeded"`
	Failed             int        `json:"failed"`
	Skipped            int        `json:"skipped"`
	SkippedAttachments int        `json:"skipped_attachments"`
	Error              string     `gorm:"type:text" json:"error,omitempty"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}

// EntryOutcome records what happened to a single source entry during a run.
type EntryOutcome struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	RunID      string        `gorm:"index;size:36" json:"run_id"`
	ForeignID  string        `gorm:"index;size:128" json:"foreign_id"`
	SourcePath string        `gorm:"size:1024" json:"source_path"`
	Status     OutcomeStatus `gorm:"index;size:20" json:"status"`
	DayOneID   string        `gorm:"size:64" json:"dayone_id,omitempty"`
	Reason     string        `gorm:"size:50" json:"reason,omitempty"`
	ErrorMsg   string        `gorm:"type:text" json:"error_msg,omitempty"`
	CreatedAt  time.Time     `gorm:"index" json:"created_at"`
}

func (EntryOutcome) TableName() string {
	return "entry_outcomes"
}
