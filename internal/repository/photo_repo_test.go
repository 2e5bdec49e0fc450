package repository

import (
	"context"
	"testing"
	"time"

	"portfolio/internal/database"
	"portfolio/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *PhotoRepository {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return NewPhotoRepository(db)
}

func samplePhoto(id, category string, uploadedAt time.Time) *domain.Photo {
	aperture := "f/2.8"
	iso := 200
	return &domain.Photo{
		ID:             id,
		StoredFilename: id + ".jpg",
		Title:          "Sample " + id,
		Category:       category,
		Location: domain.Location{
			Name:        domain.UnknownLocationName,
			Country:     domain.UnknownCountry,
			Coordinates: &domain.Coordinates{Latitude: 40.446111, Longitude: -79.982222},
		},
		Camera: domain.Camera{
			Make:  "Canon",
			Model: "EOS R5",
			Lens:  "RF 35mm",
			Settings: domain.CameraSettings{
				Aperture: &aperture,
				ISO:      &iso,
			},
		},
		FileMetadata: domain.FileMetadata{
			CapturedAt:       uploadedAt.Add(-24 * time.Hour),
			FileSizeBytes:    2048,
			Width:            1200,
			Height:           800,
			OriginalFilename: "original.jpg",
		},
		Comment:    "a comment",
		Tags:       []string{"alpha", "beta"},
		UploadedAt: uploadedAt,
	}
}

func TestPhotoRepository_CreateAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	require.NoError(t, repo.Create(ctx, samplePhoto("p1", "travel", now)))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "p1.jpg", got.StoredFilename)
	assert.Equal(t, "travel", got.Category)
	require.NotNil(t, got.Location.Coordinates)
	assert.InDelta(t, 40.446111, got.Location.Coordinates.Latitude, 1e-9)
	assert.InDelta(t, -79.982222, got.Location.Coordinates.Longitude, 1e-9)
	require.NotNil(t, got.Camera.Settings.Aperture)
	assert.Equal(t, "f/2.8", *got.Camera.Settings.Aperture)
	assert.Nil(t, got.Camera.Settings.ShutterSpeed)
	assert.Equal(t, []string{"alpha", "beta"}, got.Tags)
	assert.Nil(t, got.LastModifiedAt)
}

func TestPhotoRepository_GetMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPhotoRepository_OptionalFieldsStayAbsent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	p := samplePhoto("p1", "travel", time.Now())
	p.Location.Coordinates = nil
	p.Camera.Settings = domain.CameraSettings{}
	p.Tags = nil
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, got.Location.Coordinates)
	assert.Nil(t, got.Camera.Settings.Aperture)
	assert.Nil(t, got.Camera.Settings.ISO)
	assert.Empty(t, got.Tags)
}

func TestPhotoRepository_Update(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePhoto("p1", "travel", time.Now())))

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)

	now := time.Now().Truncate(time.Second)
	p.Title = "Renamed"
	p.Comment = ""
	p.Tags = []string{}
	p.LastModifiedAt = &now
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Empty(t, got.Comment, "cleared fields must persist")
	assert.Empty(t, got.Tags)
	require.NotNil(t, got.LastModifiedAt)
}

func TestPhotoRepository_UpdateMissing(t *testing.T) {
	repo := setupRepo(t)

	err := repo.Update(context.Background(), samplePhoto("ghost", "x", time.Now()))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPhotoRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePhoto("p1", "travel", time.Now())))
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "p1"), gorm.ErrRecordNotFound)
}

func TestPhotoRepository_ListFilterAndPagination(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, samplePhoto("p1", "travel", base.Add(1*time.Minute))))
	require.NoError(t, repo.Create(ctx, samplePhoto("p2", "street", base.Add(2*time.Minute))))
	require.NoError(t, repo.Create(ctx, samplePhoto("p3", "travel", base.Add(3*time.Minute))))

	all, total, err := repo.List(ctx, PhotoFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	// Newest first.
	assert.Equal(t, "p3", all[0].ID)
	assert.Equal(t, "p1", all[2].ID)

	travel, total, err := repo.List(ctx, PhotoFilters{Category: "travel"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, travel, 2)

	page, total, err := repo.List(ctx, PhotoFilters{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total, "total counts the whole filtered set, not the page")
	require.Len(t, page, 1)
	assert.Equal(t, "p2", page[0].ID)
}
