package entities

// RawEntry is a single Journey entry as read from its export file.
// Nothing here is validated; nullable source fields are pointers.
type RawEntry struct {
	ID                     string
	SourcePath             string
	JournalTimestampMillis *int64
	Text                   string
	EntryType              string // unused downstream
	Latitude               *float64
	Longitude              *float64
	TimezoneName           string
	Address                string // unused downstream
	Tags                   []string
	AttachmentPaths        []string // "photos" in the export, may also reference audio and video
}
