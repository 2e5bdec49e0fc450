package exif

import (
	"fmt"
	"math"
)

// Settings holds the display-ready camera settings. Each field is
// derived from its own tags and stays nil when they are absent.
type Settings struct {
	Aperture     *string
	ShutterSpeed *string
	ISO          *int
	FocalLength  *string
}

// DeriveSettings formats the photographic tags for display. The four
// derivations are independent: a missing exposure time never blocks
// the aperture, and so on.
func DeriveSettings(t *Tags) Settings {
	if t == nil {
		return Settings{}
	}
	return Settings{
		Aperture:     formatAperture(t.FNumber, t.ApertureValue),
		ShutterSpeed: formatShutterSpeed(t.ExposureTime),
		ISO:          pickISO(t.ISOSpeed, t.Sensitivity),
		FocalLength:  formatFocalLength(t.FocalLength),
	}
}

// formatAperture prefers the direct f-number; otherwise it derives one
// from the APEX aperture value via f = 2^(Av/2).
func formatAperture(fNumber, apex *float64) *string {
	f := fNumber
	if f == nil && apex != nil {
		v := math.Pow(2, *apex/2)
		f = &v
	}
	if f == nil || *f <= 0 {
		return nil
	}
	s := fmt.Sprintf("f/%.1f", *f)
	return &s
}

// formatShutterSpeed renders exposures of a second or longer as "Ns"
// and shorter ones as a unit fraction "1/Ns". The 1s threshold is a
// display-legibility rule kept for output compatibility.
func formatShutterSpeed(seconds *float64) *string {
	if seconds == nil || *seconds <= 0 {
		return nil
	}
	var s string
	if *seconds >= 1 {
		s = fmt.Sprintf("%gs", *seconds)
	} else {
		s = fmt.Sprintf("1/%ds", int(math.Round(1 / *seconds)))
	}
	return &s
}

func pickISO(speed, sensitivity *int) *int {
	if speed != nil {
		return speed
	}
	return sensitivity
}

func formatFocalLength(mm *float64) *string {
	if mm == nil || *mm <= 0 {
		return nil
	}
	s := fmt.Sprintf("%dmm", int(math.Round(*mm)))
	return &s
}
