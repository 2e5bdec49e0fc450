package photo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/exif"
	"portfolio/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	DefaultMaxUploadBytes = 25 * 1024 * 1024 // 25 MB
	defaultListLimit      = 20
	maxListLimit          = 100
)

// allowedMimeTypes defines which image types are accepted for ingestion.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/tiff": true,
}

// Service is the upload orchestrator. An ingestion runs through
// validate → extract → transcode → persist; every failure after the
// file write removes that file again, so storage never ends up with an
// image lacking a record.
type Service struct {
	repo     Repository
	enc      Transcoder
	imageDir string
	maxBytes int64
	log      *logrus.Logger
}

func NewService(repo Repository, enc Transcoder, imageDir string, maxBytes int64, log *logrus.Logger) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Service{
		repo:     repo,
		enc:      enc,
		imageDir: imageDir,
		maxBytes: maxBytes,
		log:      log,
	}
}

// Upload ingests a single image and returns the persisted record.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*domain.Photo, error) {
	// Validation happens before any filesystem write.
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if len(in.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if int64(len(in.Data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if !allowedMimeTypes[detectMimeType(in.Data)] {
		return nil, ErrInvalidMimeType
	}

	// Metadata extraction. A missing or partial EXIF block is normal;
	// only an unrecognizable container aborts the attempt.
	tags, err := exif.Parse(in.Data, exif.IncludeAll)
	if err != nil {
		return nil, ErrUnreadableImage
	}

	orientation := 1
	if tags.Orientation != nil {
		orientation = *tags.Orientation
	}

	// The upload is abortable until the file write begins; from here
	// the attempt runs to completion or rollback.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	storedFilename := id + ".jpg"
	dst := filepath.Join(s.imageDir, storedFilename)

	res, err := s.enc.Transcode(in.Data, orientation, dst)
	if err != nil {
		// The transcoder guarantees no partial file remains on failure.
		return nil, fmt.Errorf("%w: %v", ErrTranscodeFailed, err)
	}

	now := time.Now()
	record := buildRecord(id, storedFilename, title, in, tags, res.Width, res.Height, res.Size, now)

	if err := s.repo.Create(ctx, record); err != nil {
		s.removeStoredFile(storedFilename, "persist rollback")
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	s.log.WithFields(logrus.Fields{
		"photo_id":        id,
		"stored_filename": storedFilename,
		"size_bytes":      res.Size,
	}).Info("photo ingested")

	return record, nil
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Photo, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, err
	}
	return p, nil
}

// Update mutates title/category/comment/tags/location only.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*domain.Photo, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		p.Title = title
	}
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			category = domain.DefaultCategory
		}
		p.Category = category
	}
	if req.Comment != nil {
		p.Comment = *req.Comment
	}
	if req.Tags != nil {
		p.Tags = filterTags(*req.Tags)
	}
	if req.Location != nil {
		p.Location = domain.Location{
			Name:        req.Location.Name,
			Country:     req.Location.Country,
			Coordinates: req.Location.Coordinates,
		}
	}

	now := time.Now()
	p.LastModifiedAt = &now

	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}
	return p, nil
}

// Delete removes the record first and the backing file second: a crash
// in between leaves a sweepable orphan file instead of a record whose
// image is gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPhotoNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	s.removeStoredFile(p.StoredFilename, "delete")
	return nil
}

func (s *Service) List(ctx context.Context, category string, offset, limit int) (*ListResponse, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.repo.List(ctx, repository.PhotoFilters{
		Category: category,
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	return &ListResponse{
		Records: records,
		Total:   total,
		HasMore: int64(offset+len(records)) < total,
	}, nil
}

// Stats aggregates the full collection into the gallery's derived view.
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	records, total, err := s.repo.List(ctx, repository.PhotoFilters{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
	}

	stats := &StatsResponse{
		TotalPhotos: total,
		Categories:  make(map[string]int),
		CameraMakes: make(map[string]int),
	}
	for _, p := range records {
		stats.Categories[p.Category]++
		stats.CameraMakes[p.Camera.Make]++
		if p.Location.Coordinates != nil {
			stats.WithGPS++
		}
	}
	return stats, nil
}

// removeStoredFile deletes a transcoded image from the image
// directory. Failures are logged but never surfaced: a rollback or
// delete must not mask the error (or success) that triggered it.
func (s *Service) removeStoredFile(storedFilename, reason string) {
	path := filepath.Join(s.imageDir, filepath.Base(storedFilename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.WithFields(logrus.Fields{
			"stored_filename": storedFilename,
			"reason":          reason,
		}).WithError(err).Error("failed to remove stored file")
	}
}

func buildRecord(id, storedFilename, title string, in UploadInput, tags *exif.Tags, width, height int, size int64, now time.Time) *domain.Photo {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = domain.DefaultCategory
	}

	location := domain.Location{
		Name:    domain.UnknownLocationName,
		Country: domain.UnknownCountry,
	}
	if lat, lng, ok := exif.NormalizeGPS(tags); ok {
		location.Coordinates = &domain.Coordinates{Latitude: lat, Longitude: lng}
	}

	settings := exif.DeriveSettings(tags)

	capturedAt := now
	if tags.CapturedAt != nil {
		capturedAt = *tags.CapturedAt
	}

	return &domain.Photo{
		ID:             id,
		StoredFilename: storedFilename,
		Title:          title,
		Category:       category,
		Location:       location,
		Camera: domain.Camera{
			Make:  stringOrUnknown(tags.Make),
			Model: stringOrUnknown(tags.Model),
			Lens:  stringOrUnknown(tags.Lens),
			Settings: domain.CameraSettings{
				Aperture:     settings.Aperture,
				ShutterSpeed: settings.ShutterSpeed,
				ISO:          settings.ISO,
				FocalLength:  settings.FocalLength,
			},
		},
		FileMetadata: domain.FileMetadata{
			CapturedAt:       capturedAt,
			FileSizeBytes:    size,
			Width:            width,
			Height:           height,
			OriginalFilename: filepath.Base(in.Filename),
		},
		Comment:    in.Comment,
		Tags:       filterTags(strings.Split(in.Tags, ",")),
		UploadedAt: now,
	}
}

func stringOrUnknown(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return domain.UnknownCamera
	}
	return strings.TrimSpace(*s)
}

// filterTags trims entries and drops empty ones; deduplication is not
// performed.
func filterTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// detectMimeType sniffs the content type from the leading bytes.
// net/http does not know TIFF, so its two byte orders are checked
// explicitly.
func detectMimeType(data []byte) string {
	if bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")) {
		return "image/tiff"
	}
	n := len(data)
	if n > 512 {
		n = 512
	}
	mime := http.DetectContentType(data[:n])
	return strings.Split(mime, ";")[0]
}
