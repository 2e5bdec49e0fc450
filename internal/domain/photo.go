package domain

import "time"

// Fallback values applied when the corresponding EXIF tag is absent.
// A photo is never rejected for missing camera metadata.
const (
	UnknownCamera       = "Unknown"
	UnknownLocationName = "Unknown Location"
	UnknownCountry      = "Unknown"
	DefaultCategory     = "uncategorized"
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location names stay placeholders — no reverse geocoding is performed,
// only Coordinates carries real data (and only when GPS tags resolved).
type Location struct {
	Name        string       `json:"name"`
	Country     string       `json:"country"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// CameraSettings fields are independently optional: each one is derived
// from its own tag and absence of one never blocks the others.
type CameraSettings struct {
	Aperture     *string `json:"aperture,omitempty"`
	ShutterSpeed *string `json:"shutter_speed,omitempty"`
	ISO          *int    `json:"iso,omitempty"`
	FocalLength  *string `json:"focal_length,omitempty"`
}

type Camera struct {
	Make     string         `json:"make"`
	Model    string         `json:"model"`
	Lens     string         `json:"lens"`
	Settings CameraSettings `json:"settings"`
}

type FileMetadata struct {
	CapturedAt       time.Time `json:"captured_at"`
	FileSizeBytes    int64     `json:"file_size_bytes"`
	Width            int       `json:"width"`
	Height           int       `json:"height"`
	OriginalFilename string    `json:"original_filename"`
}

// Photo is the unit of persistence. StoredFilename is always a bare
// filename (no path segments) resolvable inside the configured image
// directory; the record and the file live and die together.
type Photo struct {
	ID             string       `json:"id"`
	StoredFilename string       `json:"stored_filename"`
	Title          string       `json:"title"`
	Category       string       `json:"category"`
	Location       Location     `json:"location"`
	Camera         Camera       `json:"camera"`
	FileMetadata   FileMetadata `json:"file_metadata"`
	Comment        string       `json:"comment"`
	Tags           []string     `json:"tags"`
	UploadedAt     time.Time    `json:"uploaded_at"`
	LastModifiedAt *time.Time   `json:"last_modified_at,omitempty"`
}
