package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/journey2dayone/internal/audit"
	"github.com/mrlokans/journey2dayone/internal/database/runs"
	"github.com/mrlokans/journey2dayone/internal/dayone"
	"github.com/mrlokans/journey2dayone/internal/importers"
	"github.com/mrlokans/journey2dayone/internal/journey"
	"github.com/mrlokans/journey2dayone/internal/markup"
	"github.com/mrlokans/journey2dayone/internal/validation"
)

// =============================================================================
// Import Pipeline
// =============================================================================

var _ importers.EntrySource = (*journey.Reader)(nil)
var _ importers.EntryValidator = (*validation.Validator)(nil)
var _ importers.EntryImporter = (*dayone.Client)(nil)

// =============================================================================
// Run Bookkeeping
// =============================================================================

var _ importers.RunRecorder = (*runs.Recorder)(nil)
var _ importers.ReportWriter = (*audit.Auditor)(nil)

// =============================================================================
// External Tools
// =============================================================================

var _ dayone.Runner = dayone.ExecRunner{}
var _ markup.Converter = (*markup.HTMLConverter)(nil)
