package entities

import (
	"path/filepath"
	"strings"
)

type SkipReason string

const (
	SkipReasonNoContent       SkipReason = "no_content"
	SkipReasonAlreadyExported SkipReason = "already_exported"
	SkipReasonMalformed       SkipReason = "malformed_source"
)

type AttachmentKind string

const (
	AttachmentKindPhoto AttachmentKind = "photo"
	AttachmentKindVideo AttachmentKind = "video"
	AttachmentKindAudio AttachmentKind = "audio"
)

var (
	videoExtensions = []string{".mp4", ".mov", ".m4v"}
	audioExtensions = []string{".mp3", ".m4a", ".aac", ".wav", ".ogg"}
)

// AttachmentKindFromPath infers the attachment kind from the file extension.
// Journey calls every attachment a photo, so anything unknown is treated as one.
// Only used to word diagnostics.
func AttachmentKindFromPath(path string) AttachmentKind {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range videoExtensions {
		if ext == v {
			return AttachmentKindVideo
		}
	}
	for _, a := range audioExtensions {
		if ext == a {
			return AttachmentKindAudio
		}
	}
	return AttachmentKindPhoto
}

// SkippedEntry is an entry that was never sent to Day One.
type SkippedEntry struct {
	SourcePath string
	EntryID    string
	Reason     SkipReason
}

// MissingAttachment is an attachment that could not be resolved on disk.
// The owning entry is still imported without it.
type MissingAttachment struct {
	SourcePath     string
	EntryID        string
	AttachmentPath string
	Kind           AttachmentKind
}

// FailedEntry is an entry the Day One CLI rejected.
type FailedEntry struct {
	SourcePath string
	EntryID    string
	Error      string
}

// BatchResult accumulates the outcome of one import run.
// It is only mutated by the orchestration loop.
type BatchResult struct {
	Total              int
	Attempted          int
	Succeeded          int
	FailedEntries      []FailedEntry
	SkippedEntries     []SkippedEntry
	SkippedAttachments []MissingAttachment
}

func NewBatchResult() *BatchResult {
	return &BatchResult{}
}

func (b *BatchResult) AddFailed(f FailedEntry) {
	b.FailedEntries = append(b.FailedEntries, f)
}

func (b *BatchResult) AddSkipped(s SkippedEntry) {
	b.SkippedEntries = append(b.SkippedEntries, s)
}

func (b *BatchResult) AddMissingAttachments(missing ...MissingAttachment) {
	b.SkippedAttachments = append(b.SkippedAttachments, missing...)
}

func (b *BatchResult) Failed() int {
	return len(b.FailedEntries)
}

func (b *BatchResult) Skipped() int {
	return len(b.SkippedEntries)
}

// FailedEntryPaths returns source paths of failed entries in the order they failed.
func (b *BatchResult) FailedEntryPaths() []string {
	paths := make([]string, 0, len(b.FailedEntries))
	for _, f := range b.FailedEntries {
		paths = append(paths, f.SourcePath)
	}
	return paths
}

// SkippedEntryPaths returns source paths of skipped entries in the order they were skipped.
func (b *BatchResult) SkippedEntryPaths() []string {
	paths := make([]string, 0, len(b.SkippedEntries))
	for _, s := range b.SkippedEntries {
		paths = append(paths, s.SourcePath)
	}
	return paths
}

// SkippedAttachmentPaths returns the source paths of entries with at least one
// missing attachment, de-duplicated in first-seen order.
func (b *BatchResult) SkippedAttachmentPaths() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, m := range b.SkippedAttachments {
		if seen[m.SourcePath] {
			continue
		}
		seen[m.SourcePath] = true
		paths = append(paths, m.SourcePath)
	}
	return paths
}
