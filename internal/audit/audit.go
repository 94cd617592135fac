// Package audit writes the missing-attachment report left behind by an import run.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

type Report struct {
	GeneratedAt     time.Time     `json:"generated_at" yaml:"generated_at"`
	Journal         string        `json:"journal" yaml:"journal"`
	SourceDirectory string        `json:"source_directory" yaml:"source_directory"`
	Entries         []ReportEntry `json:"entries" yaml:"entries"`
}

// ReportEntry groups the missing attachments of one source file.
type ReportEntry struct {
	SourcePath  string             `json:"source_path" yaml:"source_path"`
	EntryID     string             `json:"entry_id" yaml:"entry_id"`
	Attachments []ReportAttachment `json:"attachments" yaml:"attachments"`
}

type ReportAttachment struct {
	Path string                  `json:"path" yaml:"path"`
	Kind entities.AttachmentKind `json:"kind" yaml:"kind"`
}

// BuildReport groups missing attachments by entry, keeping first-seen order
// and dropping repeated paths.
func BuildReport(journal, sourceDir string, missing []entities.MissingAttachment, generatedAt time.Time) Report {
	report := Report{
		GeneratedAt:     generatedAt,
		Journal:         journal,
		SourceDirectory: sourceDir,
		Entries:         []ReportEntry{},
	}

	index := make(map[string]int)
	seen := make(map[string]bool)
	for _, m := range missing {
		if seen[m.AttachmentPath] {
			continue
		}
		seen[m.AttachmentPath] = true

		i, ok := index[m.SourcePath]
		if !ok {
			i = len(report.Entries)
			index[m.SourcePath] = i
			report.Entries = append(report.Entries, ReportEntry{SourcePath: m.SourcePath, EntryID: m.EntryID})
		}
		report.Entries[i].Attachments = append(report.Entries[i].Attachments, ReportAttachment{
			Path: m.AttachmentPath,
			Kind: m.Kind,
		})
	}
	return report
}

type Auditor struct {
	ReportPath string
	logger     *zap.SugaredLogger
	now        func() time.Time
}

func NewAuditor(reportPath string, logger *zap.SugaredLogger) *Auditor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Auditor{
		ReportPath: reportPath,
		logger:     logger.Named("audit"),
		now:        time.Now,
	}
}

// WriteMissingAttachments writes the report to ReportPath, as YAML when the
// path ends in .yaml or .yml and as indented JSON otherwise. Nothing is
// written when no attachment is missing; the returned path is then empty.
func (a *Auditor) WriteMissingAttachments(journal, sourceDir string, missing []entities.MissingAttachment) (string, error) {
	if len(missing) == 0 {
		return "", nil
	}

	report := BuildReport(journal, sourceDir, missing, a.now().UTC())
	data, err := encode(a.ReportPath, report)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(a.ReportPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", errors.Wrap(err, "creating report directory")
		}
	}

	a.logger.Debugf("Writing missing attachment report with %d entries to %s", len(report.Entries), a.ReportPath)
	if err := os.WriteFile(a.ReportPath, data, 0644); err != nil {
		return "", errors.Wrap(err, "writing missing attachment report")
	}
	return a.ReportPath, nil
}

func encode(path string, report Report) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(report)
		return data, errors.Wrap(err, "encoding report as YAML")
	default:
		data, err := json.MarshalIndent(report, "", "  ")
		return data, errors.Wrap(err, "encoding report as JSON")
	}
}
