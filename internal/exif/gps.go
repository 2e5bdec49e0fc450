package exif

import (
	"math"
	"strings"
)

// NormalizeGPS converts the raw geodetic tags into a signed decimal
// degree pair, rounded to 6 decimal places (~0.11 m). Total and pure:
// any unresolvable side (missing triple, malformed hemisphere ref)
// yields ok=false rather than a partial or zero-filled pair — a
// fabricated (0,0) would silently place a photo on the equator.
func NormalizeGPS(t *Tags) (lat, lng float64, ok bool) {
	if t == nil {
		return 0, 0, false
	}
	lat, okLat := toDecimal(t.Latitude, t.LatitudeRef, "N", "S")
	lng, okLng := toDecimal(t.Longitude, t.LongitudeRef, "E", "W")
	if !okLat || !okLng {
		return 0, 0, false
	}
	return lat, lng, true
}

func toDecimal(d *DMS, ref *string, positive, negative string) (float64, bool) {
	if d == nil || ref == nil {
		return 0, false
	}

	dec := d.Degrees + d.Minutes/60 + d.Seconds/3600

	switch strings.ToUpper(strings.TrimSpace(*ref)) {
	case positive:
	case negative:
		dec = -dec
	default:
		return 0, false
	}

	return round6(dec), true
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
