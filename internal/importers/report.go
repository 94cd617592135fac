package importers

import (
	"fmt"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

func progressLine(attempted, total int, entry entities.NormalizedEntry, entryID string) string {
	line := fmt.Sprintf("[%d/%d] Entry added -> %s -> %s", attempted, total, entry.ForeignID, entryID)
	if summary := entry.Summary(); summary != "" {
		line += ": " + summary
	}
	return line
}

// report logs the end-of-run summary and writes the missing-attachment report.
func (p *Pipeline) report(result *entities.BatchResult) {
	p.logPaths("SKIPPED ATTACHMENTS", result.SkippedAttachmentPaths())
	p.logPaths("SKIPPED ENTRIES", result.SkippedEntryPaths())
	p.logPaths("FAILED ENTRIES", result.FailedEntryPaths())

	p.logger.Infof("%d succeeded, %d failed, %d skipped", result.Succeeded, result.Failed(), result.Skipped())

	if len(result.SkippedAttachments) == 0 {
		return
	}
	p.logger.Warn("Your Journey export was missing some attachments.")
	if p.reporter == nil {
		return
	}

	path, err := p.reporter.WriteMissingAttachments(p.journal, p.sourceDir, result.SkippedAttachments)
	if err != nil {
		p.logger.Errorf("Failed to write missing attachment report: %v", err)
		return
	}
	p.logger.Infof("Missing attachment report written to %s", path)
}

func (p *Pipeline) logPaths(prefix string, paths []string) {
	for _, path := range paths {
		p.logger.Infof("%s: %s", prefix, path)
	}
}
