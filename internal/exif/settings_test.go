package exif

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int         { return &v }

func TestDeriveSettings_AllPresent(t *testing.T) {
	s := DeriveSettings(&Tags{
		FNumber:      f64Ptr(2.8),
		ExposureTime: f64Ptr(0.004),
		ISOSpeed:     intPtr(200),
		FocalLength:  f64Ptr(35),
	})

	require.NotNil(t, s.Aperture)
	assert.Equal(t, "f/2.8", *s.Aperture)
	require.NotNil(t, s.ShutterSpeed)
	assert.Equal(t, "1/250s", *s.ShutterSpeed)
	require.NotNil(t, s.ISO)
	assert.Equal(t, 200, *s.ISO)
	require.NotNil(t, s.FocalLength)
	assert.Equal(t, "35mm", *s.FocalLength)
}

func TestDeriveSettings_ApertureFromAPEX(t *testing.T) {
	// 2^(4/2) = 4 when only the APEX aperture value exists.
	s := DeriveSettings(&Tags{ApertureValue: f64Ptr(4.0)})

	require.NotNil(t, s.Aperture)
	assert.Equal(t, "f/4.0", *s.Aperture)
}

func TestDeriveSettings_FNumberPreferredOverAPEX(t *testing.T) {
	s := DeriveSettings(&Tags{
		FNumber:       f64Ptr(1.8),
		ApertureValue: f64Ptr(4.0),
	})

	require.NotNil(t, s.Aperture)
	assert.Equal(t, "f/1.8", *s.Aperture)
}

func TestDeriveSettings_ShutterSpeedBoundary(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{1.0, "1s"},
		{2.5, "2.5s"},
		{30, "30s"},
		{0.5, "1/2s"},
		{0.004, "1/250s"},
		{0.002, "1/500s"},
		{1.0 / 8000, "1/8000s"},
	}

	for _, tt := range tests {
		s := DeriveSettings(&Tags{ExposureTime: f64Ptr(tt.seconds)})
		require.NotNil(t, s.ShutterSpeed, "seconds=%v", tt.seconds)
		assert.Equal(t, tt.want, *s.ShutterSpeed)
	}
}

func TestDeriveSettings_ISOFallback(t *testing.T) {
	s := DeriveSettings(&Tags{Sensitivity: intPtr(400)})
	require.NotNil(t, s.ISO)
	assert.Equal(t, 400, *s.ISO)

	s = DeriveSettings(&Tags{ISOSpeed: intPtr(100), Sensitivity: intPtr(400)})
	require.NotNil(t, s.ISO)
	assert.Equal(t, 100, *s.ISO)
}

func TestDeriveSettings_FocalLengthRounded(t *testing.T) {
	s := DeriveSettings(&Tags{FocalLength: f64Ptr(34.6)})
	require.NotNil(t, s.FocalLength)
	assert.Equal(t, "35mm", *s.FocalLength)
}

func TestDeriveSettings_FieldsAreIndependent(t *testing.T) {
	// A single present tag yields exactly that field, nothing else.
	s := DeriveSettings(&Tags{ExposureTime: f64Ptr(0.01)})

	assert.Nil(t, s.Aperture)
	require.NotNil(t, s.ShutterSpeed)
	assert.Equal(t, "1/100s", *s.ShutterSpeed)
	assert.Nil(t, s.ISO)
	assert.Nil(t, s.FocalLength)
}

func TestDeriveSettings_EmptyTags(t *testing.T) {
	s := DeriveSettings(&Tags{})
	assert.Nil(t, s.Aperture)
	assert.Nil(t, s.ShutterSpeed)
	assert.Nil(t, s.ISO)
	assert.Nil(t, s.FocalLength)

	s = DeriveSettings(nil)
	assert.Nil(t, s.Aperture)
}

func TestDeriveSettings_InvalidValuesIgnored(t *testing.T) {
	s := DeriveSettings(&Tags{
		FNumber:      f64Ptr(0),
		ExposureTime: f64Ptr(-1),
		FocalLength:  f64Ptr(0),
	})
	assert.Nil(t, s.Aperture)
	assert.Nil(t, s.ShutterSpeed)
	assert.Nil(t, s.FocalLength)
}
