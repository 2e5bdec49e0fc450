package photo

import "portfolio/internal/domain"

// UploadInput carries the raw multipart form fields plus the file
// bytes. Tags is the raw comma-separated string; the service splits,
// trims and drops empty entries.
type UploadInput struct {
	Data     []byte
	Filename string
	Title    string
	Category string
	Comment  string
	Tags     string
}

// UpdateRequest accepts any subset of the mutable fields. Camera and
// file metadata are immutable after ingestion.
type UpdateRequest struct {
	Title    *string         `json:"title" validate:"omitempty,min=1"`
	Category *string         `json:"category"`
	Comment  *string         `json:"comment"`
	Tags     *[]string       `json:"tags"`
	Location *LocationUpdate `json:"location"`
}

type LocationUpdate struct {
	Name        string              `json:"name"`
	Country     string              `json:"country"`
	Coordinates *domain.Coordinates `json:"coordinates,omitempty"`
}

type ListResponse struct {
	Records []domain.Photo `json:"records"`
	Total   int64          `json:"total"`
	HasMore bool           `json:"has_more"`
}

type StatsResponse struct {
	TotalPhotos int64          `json:"total_photos"`
	Categories  map[string]int `json:"categories"`
	CameraMakes map[string]int `json:"camera_makes"`
	WithGPS     int            `json:"with_gps"`
}
