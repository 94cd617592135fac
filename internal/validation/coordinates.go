package validation

import (
	"math"
	"strconv"

	"github.com/mrlokans/journey2dayone/internal/entities"
)

// NoLocationSentinel is what Journey stores in lat and lon when an entry has no location.
const NoLocationSentinel = math.MaxFloat64

func ValidLatitude(lat float64) bool {
	return isFinite(lat) && math.Abs(lat) <= 90 && lat != NoLocationSentinel
}

func ValidLongitude(lon float64) bool {
	return isFinite(lon) && math.Abs(lon) <= 180 && lon != NoLocationSentinel
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// resolveCoordinates keeps the pair only when both halves are valid.
func (v *Validator) resolveCoordinates(raw entities.RawEntry) *entities.Coordinates {
	lat, lon := raw.Latitude, raw.Longitude

	if lat == nil && lon == nil {
		v.logger.Debugf("Journey doesn't have location information for entry %s", raw.ID)
		return nil
	}

	if lat != nil && lon != nil {
		if *lat == NoLocationSentinel && *lon == NoLocationSentinel {
			v.logger.Debugf("Journey doesn't have location information for entry %s", raw.ID)
			return nil
		}
		if ValidLatitude(*lat) && ValidLongitude(*lon) {
			return &entities.Coordinates{Latitude: *lat, Longitude: *lon}
		}
	}

	v.logger.Warnf("Entry's location coordinates are invalid: %s %s for entry %s",
		formatCoordinate(lat), formatCoordinate(lon), raw.ID)
	return nil
}

func formatCoordinate(f *float64) string {
	if f == nil {
		return "null"
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
