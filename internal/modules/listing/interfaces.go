package listing

import (
	"context"

	"alxtravel/internal/domain"
	"alxtravel/internal/repository"
)

type ListingRepository interface {
	GetAll(ctx context.Context, f repository.ListingFilters) ([]domain.Listing, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Create(ctx context.Context, l *domain.Listing) error
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id int64) error
}

// Cache is a best-effort listing cache; misses and failures fall through to the repository.
type Cache interface {
	Get(ctx context.Context, id int64) (*domain.Listing, bool)
	Set(ctx context.Context, l *domain.Listing)
	Delete(ctx context.Context, id int64)
}
