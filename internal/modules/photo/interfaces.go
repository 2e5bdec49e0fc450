package photo

import (
	"context"

	"portfolio/internal/domain"
	"portfolio/internal/repository"
	"portfolio/internal/transcode"
)

type Repository interface {
	Create(ctx context.Context, p *domain.Photo) error
	GetByID(ctx context.Context, id string) (*domain.Photo, error)
	Update(ctx context.Context, p *domain.Photo) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f repository.PhotoFilters) ([]domain.Photo, int64, error)
}

type Transcoder interface {
	Transcode(data []byte, orientation int, dst string) (transcode.Result, error)
}
