package entities

import (
	"fmt"
	"strings"
)

// Coordinates is a validated latitude/longitude pair.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// NormalizedEntry is an entry that passed validation and is ready to be
// handed to the Day One CLI.
type NormalizedEntry struct {
	ForeignID       string
	SourcePath      string
	Text            string
	Tags            []string // escaped for the dayone2 argument grammar
	AttachmentPaths []string // absolute, existence-checked
	Coordinates     *Coordinates
	Timestamp       string
	TimezoneName    string
}

// WordCount returns the number of whitespace-separated words in the entry text.
func (e NormalizedEntry) WordCount() int {
	return len(strings.Fields(e.Text))
}

// Summary describes the entry content for progress output,
// e.g. "12 words, 2 tags, 1 attachments". Empty parts are omitted.
func (e NormalizedEntry) Summary() string {
	var parts []string
	if e.Text != "" {
		parts = append(parts, fmt.Sprintf("%d words", e.WordCount()))
	}
	if len(e.Tags) > 0 {
		parts = append(parts, fmt.Sprintf("%d tags", len(e.Tags)))
	}
	if len(e.AttachmentPaths) > 0 {
		parts = append(parts, fmt.Sprintf("%d attachments", len(e.AttachmentPaths)))
	}
	return strings.Join(parts, ", ")
}
