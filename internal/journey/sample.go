package journey

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

// SampleEntryCount is the number of well-formed entry files WriteSampleExport
// creates; it additionally writes one malformed file.
const SampleEntryCount = 7

// WriteSampleExport writes a small synthetic Journey export to dir covering
// the cases the importer handles differently: HTML and plain text, tags with
// spaces, present, sentinel and invalid coordinates, invalid timezones,
// missing attachments, entries exported from Day One, empty entries and a
// file that is not valid JSON. It returns the paths of all files written.
func WriteSampleExport(dir string, now time.Time) ([]string, error) {
	var written []string

	write := func(rel string, data []byte) error {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return errors.Wrapf(err, "creating %s", filepath.Dir(path))
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return errors.Wrapf(err, "writing %s", path)
		}
		written = append(written, path)
		return nil
	}

	for _, rel := range samplePhotos {
		// a JPEG SOI/EOI marker pair is enough for a file to exist
		if err := write(rel, []byte{0xFF, 0xD8, 0xFF, 0xD9}); err != nil {
			return written, err
		}
	}

	for _, s := range sampleEntries(now) {
		data, err := json.MarshalIndent(s.doc, "", "  ")
		if err != nil {
			return written, errors.Wrapf(err, "encoding %s", s.rel)
		}
		if err := write(s.rel, data); err != nil {
			return written, err
		}
	}

	if err := write(sampleMalformed, []byte(`{"id": "8-truncated", "date_journal": `)); err != nil {
		return written, err
	}
	return written, nil
}

// RemoveSampleExport deletes the files WriteSampleExport creates in dir, and
// the subdirectories it creates once they are empty. Any other file is left alone.
func RemoveSampleExport(dir string) error {
	rels := append([]string{sampleMalformed}, samplePhotos...)
	for _, s := range sampleEntries(time.Time{}) {
		rels = append(rels, s.rel)
	}

	subdirs := make(map[string]bool)
	for _, rel := range rels {
		path := filepath.Join(dir, rel)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing %s", path)
		}
		if sub := filepath.Dir(rel); sub != "." {
			subdirs[sub] = true
		}
	}

	for sub := range subdirs {
		path := filepath.Join(dir, sub)
		entries, err := os.ReadDir(path)
		if err != nil || len(entries) > 0 {
			continue
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "removing %s", path)
		}
	}
	return nil
}

var samplePhotos = []string{"1-sunrise.jpg", "2019/7-harbour.jpg"}

const sampleMalformed = "2019/8-truncated.json"

type sampleEntry struct {
	rel string
	doc entryDocument
}

func sampleEntries(now time.Time) []sampleEntry {
	at := func(daysAgo int) *int64 {
		ms := now.AddDate(0, 0, -daysAgo).UnixMilli()
		return &ms
	}
	f := func(v float64) *float64 { return &v }
	noLocation := f(math.MaxFloat64)

	return []sampleEntry{
		{"1-sunrise.json", entryDocument{
			ID:          "1-sunrise",
			DateJournal: at(30),
			Text:        "<p>Watched the sunrise over the <strong>bay</strong>.</p><ul><li>coffee</li><li>quiet</li></ul>",
			Type:        "html",
			Lat:         f(37.8199),
			Lon:         f(-122.4783),
			Timezone:    "America/Los_Angeles",
			Address:     "Golden Gate Bridge, San Francisco",
			Tags:        []string{"morning", "San Francisco"},
			Photos:      []string{"1-sunrise.jpg"},
		}},
		{"2-plain.json", entryDocument{
			ID:          "2-plain",
			DateJournal: at(21),
			Text:        "A plain text entry without any location.",
			Type:        "markdown",
			Lat:         noLocation,
			Lon:         noLocation,
			Timezone:    "Europe/Berlin",
			Tags:        []string{},
			Photos:      []string{},
		}},
		{"3-invalid-fields.json", entryDocument{
			ID:          "3-invalid-fields",
			DateJournal: at(14),
			Text:        "Coordinates and timezone of this entry are broken.",
			Type:        "markdown",
			Lat:         f(100),
			Lon:         f(50),
			Timezone:    "Mars/Olympus_Mons",
			Tags:        []string{"broken"},
			Photos:      []string{},
		}},
		{"4-missing-video.json", entryDocument{
			ID:          "4-missing-video",
			DateJournal: at(10),
			Text:        "The video of this entry was not exported.",
			Type:        "markdown",
			Timezone:    "Asia/Tokyo",
			Tags:        []string{"trip"},
			Photos:      []string{"4-fireworks.mov"},
		}},
		{"5-from-dayone.json", entryDocument{
			ID:          "5-from-dayone",
			DateJournal: at(7),
			Text:        "Originally written in Day One: dayone-moment://1F2E3D4C5B6A",
			Type:        "markdown",
			Timezone:    "UTC",
			Tags:        []string{},
			Photos:      []string{},
		}},
		{"2019/6-empty.json", entryDocument{
			ID:          "6-empty",
			DateJournal: at(3),
			Text:        "  ",
			Type:        "markdown",
			Timezone:    "UTC",
		}},
		{"2019/7-photo-only.json", entryDocument{
			ID:     "7-photo-only",
			Type:   "markdown",
			Photos: []string{"2019/7-harbour.jpg"},
		}},
	}
}
