package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"portfolio/internal/domain"

	"gorm.io/gorm"
)

type PhotoRepository struct {
	db *gorm.DB
}

func NewPhotoRepository(db *gorm.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Migrate creates or updates the photos table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&photoModel{})
}

type photoModel struct {
	ID             string     `gorm:"column:id;primaryKey"`
	StoredFilename string     `gorm:"column:stored_filename"`
	Title          string     `gorm:"column:title"`
	Category       string     `gorm:"column:category;index"`
	LocationName   string     `gorm:"column:location_name"`
	Country        string     `gorm:"column:country"`
	Latitude       *float64   `gorm:"column:latitude"`
	Longitude      *float64   `gorm:"column:longitude"`
	CameraMake     string     `gorm:"column:camera_make"`
	CameraModel    string     `gorm:"column:camera_model"`
	CameraLens     string     `gorm:"column:camera_lens"`
	Aperture       *string    `gorm:"column:aperture"`
	ShutterSpeed   *string    `gorm:"column:shutter_speed"`
	ISO            *int       `gorm:"column:iso"`
	FocalLength    *string    `gorm:"column:focal_length"`
	CapturedAt     time.Time  `gorm:"column:captured_at"`
	FileSizeBytes  int64      `gorm:"column:file_size_bytes"`
	Width          int        `gorm:"column:width"`
	Height         int        `gorm:"column:height"`
	OriginalName   string     `gorm:"column:original_name"`
	Comment        string     `gorm:"column:comment"`
	Tags           string     `gorm:"column:tags"`
	UploadedAt     time.Time  `gorm:"column:uploaded_at;index"`
	LastModifiedAt *time.Time `gorm:"column:last_modified_at"`
}

func (photoModel) TableName() string { return "photos" }

type PhotoFilters struct {
	Category string
	Offset   int
	Limit    int
}

func (r *PhotoRepository) Create(ctx context.Context, p *domain.Photo) error {
	m := toPhotoModel(p)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*domain.Photo, error) {
	var m photoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return toDomainPhoto(m), nil
}

// Update persists the whole record; the service decides which fields
// are mutable before calling this.
func (r *PhotoRepository) Update(ctx context.Context, p *domain.Photo) error {
	m := toPhotoModel(p)
	// Select("*") so cleared fields (empty comment, removed tags) are
	// written too; struct Updates would skip zero values.
	res := r.db.WithContext(ctx).Model(&photoModel{}).Where("id = ?", p.ID).Select("*").Updates(&m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&photoModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PhotoRepository) List(ctx context.Context, f PhotoFilters) ([]domain.Photo, int64, error) {
	q := r.db.WithContext(ctx).Model(&photoModel{})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var models []photoModel
	if err := q.Order("uploaded_at DESC").Find(&models).Error; err != nil {
		return nil, 0, err
	}

	photos := make([]domain.Photo, 0, len(models))
	for _, m := range models {
		photos = append(photos, *toDomainPhoto(m))
	}
	return photos, total, nil
}

func toPhotoModel(p *domain.Photo) photoModel {
	m := photoModel{
		ID:             p.ID,
		StoredFilename: p.StoredFilename,
		Title:          strings.TrimSpace(p.Title),
		Category:       p.Category,
		LocationName:   p.Location.Name,
		Country:        p.Location.Country,
		CameraMake:     p.Camera.Make,
		CameraModel:    p.Camera.Model,
		CameraLens:     p.Camera.Lens,
		Aperture:       p.Camera.Settings.Aperture,
		ShutterSpeed:   p.Camera.Settings.ShutterSpeed,
		ISO:            p.Camera.Settings.ISO,
		FocalLength:    p.Camera.Settings.FocalLength,
		CapturedAt:     p.FileMetadata.CapturedAt,
		FileSizeBytes:  p.FileMetadata.FileSizeBytes,
		Width:          p.FileMetadata.Width,
		Height:         p.FileMetadata.Height,
		OriginalName:   p.FileMetadata.OriginalFilename,
		Comment:        p.Comment,
		Tags:           tagsToString(p.Tags),
		UploadedAt:     p.UploadedAt,
		LastModifiedAt: p.LastModifiedAt,
	}
	if p.Location.Coordinates != nil {
		lat := p.Location.Coordinates.Latitude
		lng := p.Location.Coordinates.Longitude
		m.Latitude = &lat
		m.Longitude = &lng
	}
	return m
}

func toDomainPhoto(m photoModel) *domain.Photo {
	p := &domain.Photo{
		ID:             m.ID,
		StoredFilename: m.StoredFilename,
		Title:          m.Title,
		Category:       m.Category,
		Location: domain.Location{
			Name:    m.LocationName,
			Country: m.Country,
		},
		Camera: domain.Camera{
			Make:  m.CameraMake,
			Model: m.CameraModel,
			Lens:  m.CameraLens,
			Settings: domain.CameraSettings{
				Aperture:     m.Aperture,
				ShutterSpeed: m.ShutterSpeed,
				ISO:          m.ISO,
				FocalLength:  m.FocalLength,
			},
		},
		FileMetadata: domain.FileMetadata{
			CapturedAt:       m.CapturedAt,
			FileSizeBytes:    m.FileSizeBytes,
			Width:            m.Width,
			Height:           m.Height,
			OriginalFilename: m.OriginalName,
		},
		Comment:        m.Comment,
		Tags:           stringToTags(m.Tags),
		UploadedAt:     m.UploadedAt,
		LastModifiedAt: m.LastModifiedAt,
	}
	if m.Latitude != nil && m.Longitude != nil {
		p.Location.Coordinates = &domain.Coordinates{
			Latitude:  *m.Latitude,
			Longitude: *m.Longitude,
		}
	}
	return p
}

// tagsToString converts []string to a JSON string (safe for DB).
func tagsToString(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(tags)
	return string(data)
}

// stringToTags converts the DB string back to []string.
func stringToTags(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		// Fallback: treat as comma-separated if invalid JSON
		return strings.Split(s, ",")
	}
	return tags
}
