package validation

import (
	"time"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

// TimestampLayout is the date format dayone2 accepts for -d.
const TimestampLayout = "2006-01-02 03:04:05 PM"

// Epoch milliseconds of 0001-01-01 and 9999-12-31 23:59:59.999 UTC.
const (
	minMillis int64 = -62135596800000
	maxMillis int64 = 253402300799999
)

// TimeFromMillis converts epoch milliseconds into a time in location.
// Values that land outside years 1-9999 are rejected.
func TimeFromMillis(millis int64, location *time.Location) (time.Time, bool) {
	if millis < minMillis || millis > maxMillis {
		return time.Time{}, false
	}
	t := time.UnixMilli(millis).In(location)
	if year := t.Year(); year < 1 || year > 9999 {
		return time.Time{}, false
	}
	return t, true
}

func (v *Validator) resolveTimestamp(raw entities.RawEntry, location *time.Location) string {
	if raw.JournalTimestampMillis != nil {
		if t, ok := TimeFromMillis(*raw.JournalTimestampMillis, location); ok {
			return t.Format(TimestampLayout)
		}
		v.logger.Warnf("Entry's timestamp is invalid: %d", *raw.JournalTimestampMillis)
	}
	return v.now().In(location).Format(TimestampLayout)
}
