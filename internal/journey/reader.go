// Package journey reads Journey archive exports.
//
// A Journey export is a directory tree with one JSON document per entry,
// next to the attachment files those entries reference. Reader walks the
// tree lazily and turns each document into an entities.RawEntry without
// validating field contents; that is the validator's job.
package journey

import (
	"encoding/json"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

const entryFileExtension = ".json"

// requiredFields lists the keys every Journey entry document carries.
// date_journal, lat and lon may be null but must be present.
var requiredFields = []string{
	"id",
	"date_journal",
	"text",
	"type",
	"lat",
	"lon",
	"timezone",
	"address",
	"tags",
	"photos",
}

// MalformedSourceFileError reports an entry file that could not be turned into a RawEntry.
type MalformedSourceFileError struct {
	Path string
	Err  error
}

func (e *MalformedSourceFileError) Error() string {
	return "malformed source file " + e.Path + ": " + e.Err.Error()
}

func (e *MalformedSourceFileError) Unwrap() error {
	return e.Err
}

// entryDocument mirrors the on-disk JSON of a single Journey entry.
type entryDocument struct {
	ID          string   `json:"id"`
	DateJournal *int64   `json:"date_journal"`
	Text        string   `json:"text"`
	Type        string   `json:"type"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
	Timezone    string   `json:"timezone"`
	Address     string   `json:"address"`
	Tags        []string `json:"tags"`
	Photos      []string `json:"photos"`
}

type Reader struct {
	root   string
	logger *zap.SugaredLogger
}

func NewReader(root string, logger *zap.SugaredLogger) *Reader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Reader{
		root:   root,
		logger: logger.Named("journey"),
	}
}

// Entries walks the export root and yields one RawEntry per entry file, in
// filesystem walk order. Files that cannot be parsed are yielded as a
// *MalformedSourceFileError so the caller decides what to do with them.
// The sequence is single-pass; the tree is walked again on every call.
func (r *Reader) Entries() iter.Seq2[entities.RawEntry, error] {
	return func(yield func(entities.RawEntry, error) bool) {
		err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if !yield(entities.RawEntry{}, &MalformedSourceFileError{Path: path, Err: err}) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if d.IsDir() || !IsEntryFile(path) {
				return nil
			}

			r.logger.Debugf("Loading Journey entry file %s", path)
			entry, readErr := r.ReadEntry(path)
			if !yield(entry, readErr) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			r.logger.Errorf("Walking %s stopped: %v", r.root, err)
		}
	}
}

// ReadEntry parses a single entry file.
func (r *Reader) ReadEntry(path string) (entities.RawEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return entities.RawEntry{}, &MalformedSourceFileError{Path: path, Err: err}
	}

	entry, err := ParseEntry(data, path)
	if err != nil {
		return entities.RawEntry{}, &MalformedSourceFileError{Path: path, Err: err}
	}
	return entry, nil
}

// ParseEntry decodes one Journey entry document. sourcePath is only carried
// through for error attribution.
func ParseEntry(data []byte, sourcePath string) (entities.RawEntry, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return entities.RawEntry{}, errors.Wrap(err, "decoding entry document")
	}

	var missing []string
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return entities.RawEntry{}, errors.Newf("missing required fields: %s", strings.Join(missing, ", "))
	}

	var doc entryDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return entities.RawEntry{}, errors.Wrap(err, "decoding entry fields")
	}

	tags := doc.Tags
	if tags == nil {
		tags = []string{}
	}
	photos := doc.Photos
	if photos == nil {
		photos = []string{}
	}

	return entities.RawEntry{
		ID:                     doc.ID,
		SourcePath:             sourcePath,
		JournalTimestampMillis: doc.DateJournal,
		Text:                   doc.Text,
		EntryType:              doc.Type,
		Latitude:               doc.Lat,
		Longitude:              doc.Lon,
		TimezoneName:           doc.Timezone,
		Address:                doc.Address,
		Tags:                   tags,
		AttachmentPaths:        photos,
	}, nil
}

// IsEntryFile reports whether path follows the per-entry file convention.
func IsEntryFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), entryFileExtension)
}
