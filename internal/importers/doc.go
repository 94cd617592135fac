// Package importers drives an import run from a source export into Day One.
//
// # Architecture
//
//	EntrySource → RawEntry → EntryValidator → NormalizedEntry → EntryImporter → Day One
//
// The pipeline first drains and validates the whole source so the total
// entry count is known, then imports the remaining entries one at a time.
// Every entry ends up in exactly one of three buckets of the BatchResult:
// succeeded, failed or skipped. Missing attachments are tracked separately
// since they never stop an entry from being imported.
//
// # Failure Policy
//
//   - Unreadable source file: logged, recorded as skipped (malformed_source)
//   - Validation skip (no content, already exported): recorded as skipped
//   - dayone2 exits non-zero: recorded as failed, the run continues
//   - dayone2 cannot be launched: the run stops and Run returns the error
//
// # Usage
//
//	pipeline := importers.NewPipeline(reader, validator, client, importers.Options{
//		Journal:      "Journey",
//		SourceDir:    sourceDir,
//		ReportWriter: audit.NewAuditor(reportPath, logger),
//		Logger:       logger,
//	})
//	result, err := pipeline.Run(ctx)
package importers
