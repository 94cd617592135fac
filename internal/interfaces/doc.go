// Package interfaces documents the abstractions the importer is assembled from.
//
// # Interface Categories
//
// ## Import Pipeline (internal/importers/pipeline.go)
//
//   - EntrySource: yields raw entries from an export (journey.Reader)
//   - EntryValidator: turns raw entries into importable ones or skips them (validation.Validator)
//   - EntryImporter: creates an entry in Day One (dayone.Client)
//
// ## Run Bookkeeping
//
//   - RunRecorder: optional SQLite ledger of runs and outcomes (runs.Recorder)
//   - ReportWriter: missing-attachment report (audit.Auditor)
//
// ## External Tools
//
//   - dayone.Runner: process execution, replaced by fakes in tests (dayone.ExecRunner)
//   - markup.Converter: HTML to Markdown conversion (markup.HTMLConverter)
//
// # Adding a New Export Source
//
//  1. Create a package next to internal/journey that reads the export
//  2. Produce entities.RawEntry values and implement importers.EntrySource
//  3. Add a compile-time check to checks.go
//  4. Pass the source to importers.NewPipeline from internal/cli
package interfaces
