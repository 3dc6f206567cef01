package listing

import (
	"context"
	"errors"
	"math"
	"strings"

	"alxtravel/internal/cache"
	"alxtravel/internal/domain"
	"alxtravel/internal/metrics"
	"alxtravel/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	listings ListingRepository
	cache    Cache
}

func NewService(listings ListingRepository, c Cache) *Service {
	if c == nil {
		c = cache.NoopListingCache{}
	}
	return &Service{listings: listings, cache: c}
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]ListingResponse, int64, error) {
	limit, offset := f.Page()
	items, total, err := s.listings.GetAll(ctx, repository.ListingFilters{
		Location: strings.TrimSpace(f.Location),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, 0, err
	}
	return NewListingResponses(items), total, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*ListingResponse, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	res := NewListingResponse(l)
	return &res, nil
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateListingRequest) (*ListingResponse, error) {
	if ownerID <= 0 || strings.TrimSpace(req.Title) == "" || req.PricePerNight <= 0 {
		return nil, ErrInvalidRequest
	}

	l := &domain.Listing{
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		Location:      strings.TrimSpace(req.Location),
		PricePerNight: roundMoney(req.PricePerNight),
		OwnerID:       ownerID,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	metrics.IncListingCreated()

	created, err := s.listings.GetByID(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	res := NewListingResponse(created)
	return &res, nil
}

// Update applies the non-nil fields of req to l. Ownership is checked by the caller.
func (s *Service) Update(ctx context.Context, l *domain.Listing, req UpdateListingRequest) (*ListingResponse, error) {
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrInvalidRequest
		}
		l.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Location != nil {
		l.Location = strings.TrimSpace(*req.Location)
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight <= 0 {
			return nil, ErrInvalidRequest
		}
		l.PricePerNight = roundMoney(*req.PricePerNight)
	}

	if err := s.listings.Update(ctx, l); err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, l.ID)

	res := NewListingResponse(l)
	return &res, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.cache.Delete(ctx, id)
	return nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Listing, error) {
	if id <= 0 {
		return nil, ErrInvalidRequest
	}

	if l, ok := s.cache.Get(ctx, id); ok {
		metrics.IncListingCache(true)
		return l, nil
	}
	metrics.IncListingCache(false)

	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	s.cache.Set(ctx, l)
	return l, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
