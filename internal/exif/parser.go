package exif

import (
	"bytes"
	"errors"
	"image"
	"time"

	_ "image/jpeg"
	_ "image/png"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"github.com/rwcarlsen/goexif/tiff"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when the buffer is not a decodable image
// container at all. A valid image with zero EXIF tags is not an error.
var ErrNotImage = errors.New("not a recognizable image")

// Include selects which tag groups Parse reads.
type Include uint8

const (
	IncludeIdentity Include = 1 << iota // make, model, lens, orientation, capture time
	IncludeExposure                     // f-number, aperture value, exposure time, ISO, focal length
	IncludeGPS                          // latitude/longitude DMS triples + hemisphere refs

	IncludeAll = IncludeIdentity | IncludeExposure | IncludeGPS
)

// DMS is a raw degree/minute/second triple as stored in the GPS tags.
type DMS struct {
	Degrees float64
	Minutes float64
	Seconds float64
}

// Tags is the explicit optional-per-field view of the EXIF block.
// Every field may be nil: vendors omit, truncate and misencode tags
// freely, so downstream code matches on presence instead of re-probing
// the raw dictionary.
type Tags struct {
	Make        *string
	Model       *string
	Lens        *string
	Orientation *int
	CapturedAt  *time.Time

	FNumber       *float64
	ApertureValue *float64 // APEX Av, used when FNumber is absent
	ExposureTime  *float64 // seconds
	ISOSpeed      *int
	Sensitivity   *int
	FocalLength   *float64 // millimetres

	Latitude     *DMS
	LatitudeRef  *string
	Longitude    *DMS
	LongitudeRef *string
}

func init() {
	// Vendor maker-note parsers improve tag coverage for some cameras.
	exif.RegisterParsers(mknote.All...)
}

// Parse decodes the requested tag groups from an image buffer.
// It fails only when the buffer is not a parseable image container;
// a missing or undecodable EXIF block yields empty Tags. Pure decode,
// no side effects.
func Parse(data []byte, include Include) (*Tags, error) {
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return nil, ErrNotImage
	}

	t := &Tags{}

	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		// PNG/WebP rarely carry EXIF; a bare JPEG is equally legitimate.
		return t, nil
	}

	if include&IncludeIdentity != 0 {
		t.Make = getString(x, exif.Make)
		t.Model = getString(x, exif.Model)
		t.Lens = getString(x, exif.LensModel)
		t.Orientation = getInt(x, exif.Orientation)
		t.CapturedAt = getCaptureTime(x)
	}

	if include&IncludeExposure != 0 {
		t.FNumber = getRat(x, exif.FNumber)
		t.ApertureValue = getRat(x, exif.ApertureValue)
		t.ExposureTime = getRat(x, exif.ExposureTime)
		t.ISOSpeed = getInt(x, exif.ISOSpeedRatings)
		// EXIF 2.3 name for the same quantity; some cameras write only this.
		t.Sensitivity = getInt(x, exif.FieldName("PhotographicSensitivity"))
		t.FocalLength = getRat(x, exif.FocalLength)
	}

	if include&IncludeGPS != 0 {
		t.Latitude = getDMS(x, exif.GPSLatitude)
		t.LatitudeRef = getString(x, exif.GPSLatitudeRef)
		t.Longitude = getDMS(x, exif.GPSLongitude)
		t.LongitudeRef = getString(x, exif.GPSLongitudeRef)
	}

	return t, nil
}

func getString(x *exif.Exif, name exif.FieldName) *string {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	s, err := tag.StringVal()
	if err != nil {
		return nil
	}
	return &s
}

func getInt(x *exif.Exif, name exif.FieldName) *int {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	v, err := tag.Int(0)
	if err != nil {
		return nil
	}
	return &v
}

func getRat(x *exif.Exif, name exif.FieldName) *float64 {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	v, ok := ratValue(tag, 0)
	if !ok {
		return nil
	}
	return &v
}

func getDMS(x *exif.Exif, name exif.FieldName) *DMS {
	tag, err := x.Get(name)
	if err != nil {
		return nil
	}
	d, okD := ratValue(tag, 0)
	m, okM := ratValue(tag, 1)
	s, okS := ratValue(tag, 2)
	if !okD || !okM || !okS {
		return nil
	}
	return &DMS{Degrees: d, Minutes: m, Seconds: s}
}

func ratValue(tag *tiff.Tag, i int) (float64, bool) {
	num, den, err := tag.Rat2(i)
	if err != nil || den == 0 {
		return 0, false
	}
	return float64(num) / float64(den), true
}

func getCaptureTime(x *exif.Exif) *time.Time {
	if tag, err := x.Get(exif.DateTimeOriginal); err == nil {
		if s, err := tag.StringVal(); err == nil {
			// EXIF time is commonly "2006:01:02 15:04:05"
			if t, err := time.ParseInLocation("2006:01:02 15:04:05", s, time.Local); err == nil {
				return &t
			}
		}
	}
	if t, err := x.DateTime(); err == nil {
		return &t
	}
	return nil
}
