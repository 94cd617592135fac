// Package validation turns raw Journey entries into entries that are safe to
// hand to the Day One CLI.
//
// Every field is checked independently. Invalid optional fields (timezone,
// timestamp, coordinates, attachments) are replaced by a default or dropped
// with a logged warning; only entries without any content and entries that
// were exported from Day One in the first place are skipped outright.
package validation

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/mrlokans/journey2dayone/internal/entities"
	"github.com/mrlokans/journey2dayone/internal/markup"
)

// DuplicateExportMarker appears in the text of entries that Day One itself
// exported; importing them again would create duplicates.
const DuplicateExportMarker = "dayone-moment:"

type Options struct {
	// SourceDir is the export root attachment paths are relative to.
	SourceDir string
	// DefaultTimezone replaces host timezone detection when set.
	DefaultTimezone string
	Converter       markup.Converter
	// Now defaults to time.Now.
	Now    func() time.Time
	Logger *zap.SugaredLogger
}

type Validator struct {
	sourceDir    string
	converter    markup.Converter
	now          func() time.Time
	hostTimezone string
	hostLocation *time.Location
	logger       *zap.SugaredLogger
}

// SkipDecision explains why an entry will not be imported.
type SkipDecision struct {
	Reason  entities.SkipReason
	Message string
}

// Outcome is the result of validating one entry: exactly one of Entry and
// Skip is set. MissingAttachments lists attachments dropped from the entry;
// they never prevent the entry itself from being imported.
type Outcome struct {
	Entry              *entities.NormalizedEntry
	Skip               *SkipDecision
	MissingAttachments []entities.MissingAttachment
}

func (o Outcome) Skipped() bool {
	return o.Skip != nil
}

func NewValidator(opts Options) (*Validator, error) {
	if opts.Converter == nil {
		return nil, errors.New("validator requires a text converter")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	hostTimezone := opts.DefaultTimezone
	if hostTimezone == "" {
		hostTimezone = HostTimezone()
	}
	hostLocation, err := LoadTimezone(hostTimezone)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "default timezone %q is not a recognized zone", hostTimezone),
			"use an IANA zone name such as Europe/Berlin or America/New_York",
		)
	}

	return &Validator{
		sourceDir:    opts.SourceDir,
		converter:    opts.Converter,
		now:          now,
		hostTimezone: hostTimezone,
		hostLocation: hostLocation,
		logger:       logger.Named("validator"),
	}, nil
}

// HostTimezone returns the zone name substituted for missing or invalid entry timezones.
func (v *Validator) HostTimezone() string {
	return v.hostTimezone
}

// Validate normalizes a single raw entry.
func (v *Validator) Validate(raw entities.RawEntry) Outcome {
	v.logger.Debugf("Validating Journey entry %s", raw.ID)

	timezoneName, location := v.resolveTimezone(raw)
	timestamp := v.resolveTimestamp(raw, location)
	attachments, missing := v.resolveAttachments(raw)
	tags := EscapeTags(raw.Tags)
	coordinates := v.resolveCoordinates(raw)
	text := v.convertText(raw)

	outcome := Outcome{MissingAttachments: missing}

	if strings.TrimSpace(text) == "" {
		text = ""
		if len(attachments) == 0 {
			v.logger.Warnf("Entry has no text and no attachments, skipping: id=%s", raw.ID)
			outcome.Skip = &SkipDecision{
				Reason:  entities.SkipReasonNoContent,
				Message: "entry has no text and no attachments",
			}
			return outcome
		}
		v.logger.Warnf("Entry has no text: id=%s", raw.ID)
	}

	if strings.Contains(text, DuplicateExportMarker) {
		v.logger.Warnf("Skipped previously-exported Day One entry: id=%s", raw.ID)
		outcome.Skip = &SkipDecision{
			Reason:  entities.SkipReasonAlreadyExported,
			Message: "entry was exported from Day One",
		}
		return outcome
	}

	outcome.Entry = &entities.NormalizedEntry{
		ForeignID:       raw.ID,
		SourcePath:      raw.SourcePath,
		Text:            text,
		Tags:            tags,
		AttachmentPaths: attachments,
		Coordinates:     coordinates,
		Timestamp:       timestamp,
		TimezoneName:    timezoneName,
	}
	return outcome
}

func (v *Validator) convertText(raw entities.RawEntry) string {
	text, err := v.converter.Convert(raw.Text)
	if err != nil {
		v.logger.Warnf("Entry text could not be converted, importing it as is: id=%s: %v", raw.ID, err)
		return raw.Text
	}
	return text
}
