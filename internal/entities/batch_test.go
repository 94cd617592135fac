package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentKindFromPath(t *testing.T) {
	tests := []struct {
		path string
		want AttachmentKind
	}{
		{"abc.jpg", AttachmentKindPhoto},
		{"abc.PNG", AttachmentKindPhoto},
		{"abc", AttachmentKindPhoto},
		{"clip.mp4", AttachmentKindVideo},
		{"clip.MOV", AttachmentKindVideo},
		{"memo.mp3", AttachmentKindAudio},
		{"memo.m4a", AttachmentKindAudio},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, AttachmentKindFromPath(tt.path))
		})
	}
}

func TestBatchResult_SkippedAttachmentPathsDeduplicates(t *testing.T) {
	b := NewBatchResult()
	b.AddMissingAttachments(
		MissingAttachment{SourcePath: "b.json", AttachmentPath: "/x/1.jpg"},
		MissingAttachment{SourcePath: "a.json", AttachmentPath: "/x/2.jpg"},
		MissingAttachment{SourcePath: "b.json", AttachmentPath: "/x/3.mp4"},
	)

	assert.Equal(t, []string{"b.json", "a.json"}, b.SkippedAttachmentPaths())
	assert.Len(t, b.SkippedAttachments, 3)
}

func TestBatchResult_Counts(t *testing.T) {
	b := NewBatchResult()
	b.AddSkipped(SkippedEntry{SourcePath: "s1.json", Reason: SkipReasonNoContent})
	b.AddSkipped(SkippedEntry{SourcePath: "s2.json", Reason: SkipReasonAlreadyExported})
	b.AddFailed(FailedEntry{SourcePath: "f1.json", Error: "boom"})

	assert.Equal(t, 2, b.Skipped())
	assert.Equal(t, 1, b.Failed())
	assert.Equal(t, []string{"s1.json", "s2.json"}, b.SkippedEntryPaths())
	assert.Equal(t, []string{"f1.json"}, b.FailedEntryPaths())
}

func TestNormalizedEntry_Summary(t *testing.T) {
	e := NormalizedEntry{
		Text:            "three little words",
		Tags:            []string{"a", "b"},
		AttachmentPaths: []string{"/tmp/x.jpg"},
	}
	assert.Equal(t, "3 words, 2 tags, 1 attachments", e.Summary())

	assert.Equal(t, "", NormalizedEntry{}.Summary())
	assert.Equal(t, "1 attachments", NormalizedEntry{AttachmentPaths: []string{"/a.jpg"}}.Summary())
}
