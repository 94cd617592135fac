package validation

import (
	"os"
	"strings"
	"time"
	_ "time/tzdata" // zone names must resolve on hosts without a zoneinfo database

	"github.com/cockroachdb/errors"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

const fallbackTimezone = "UTC"

// LoadTimezone resolves an IANA zone name. The pseudo-zones "" and "Local"
// are rejected because dayone2 cannot interpret them.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		return nil, errors.Newf("unknown time zone %q", name)
	}
	return time.LoadLocation(name)
}

// HostTimezone returns the IANA name of the host timezone: $TZ, then the
// /etc/localtime symlink, then /etc/timezone, then UTC.
func HostTimezone() string {
	if tz := strings.TrimPrefix(os.Getenv("TZ"), ":"); tz != "" {
		if _, err := LoadTimezone(tz); err == nil {
			return tz
		}
	}

	if target, err := os.Readlink("/etc/localtime"); err == nil {
		if name := zoneFromPath(target); name != "" {
			return name
		}
	}

	if data, err := os.ReadFile("/etc/timezone"); err == nil {
		name := strings.TrimSpace(string(data))
		if _, err := LoadTimezone(name); err == nil {
			return name
		}
	}

	return fallbackTimezone
}

// zoneFromPath extracts "Europe/Paris" from paths like /usr/share/zoneinfo/Europe/Paris.
func zoneFromPath(path string) string {
	const marker = "zoneinfo/"
	i := strings.LastIndex(path, marker)
	if i < 0 {
		return ""
	}
	name := path[i+len(marker):]
	if _, err := LoadTimezone(name); err != nil {
		return ""
	}
	return name
}

func (v *Validator) resolveTimezone(raw entities.RawEntry) (string, *time.Location) {
	if raw.TimezoneName != "" {
		if location, err := LoadTimezone(raw.TimezoneName); err == nil {
			return raw.TimezoneName, location
		}
		v.logger.Warnf("Timezone is invalid: %s", raw.TimezoneName)
	}
	return v.hostTimezone, v.hostLocation
}
