package review

import (
	"context"
	"errors"
	"math"

	"alxtravel/internal/domain"
	"alxtravel/internal/metrics"
	"alxtravel/internal/repository"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error)
	Summary(ctx context.Context, listingID int64) (*repository.RatingSummary, error)
}

type ListingGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

type NotificationSender interface {
	NotifyReviewCreated(ctx context.Context, ownerID int64, r *domain.Review)
}

type Service struct {
	reviews  ReviewRepository
	listings ListingGate
	notifs   NotificationSender
}

func NewService(reviews ReviewRepository, listings ListingGate, notifs NotificationSender) *Service {
	return &Service{reviews: reviews, listings: listings, notifs: notifs}
}

func (s *Service) Create(ctx context.Context, userID, listingID int64, req CreateReviewRequest) (*ReviewResponse, error) {
	if userID <= 0 || listingID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if l.OwnerID == userID {
		return nil, ErrSelfReview
	}

	rv := &domain.Review{
		ListingID: listingID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	metrics.IncReviewCreated()

	if s.notifs != nil {
		s.notifs.NotifyReviewCreated(ctx, l.OwnerID, rv)
	}

	res := NewReviewResponse(rv)
	return &res, nil
}

func (s *Service) GetByListing(ctx context.Context, listingID int64, limit, offset int) (*ListResponse, error) {
	if listingID <= 0 {
		return nil, ErrInvalidRequest
	}

	items, err := s.reviews.GetByListing(ctx, listingID, limit, offset)
	if err != nil {
		return nil, err
	}
	sum, err := s.reviews.Summary(ctx, listingID)
	if err != nil {
		return nil, err
	}

	out := &ListResponse{
		Reviews: make([]ReviewResponse, 0, len(items)),
		Count:   sum.Count,
		Average: math.Round(sum.Average*100) / 100,
	}
	for i := range items {
		out.Reviews = append(out.Reviews, NewReviewResponse(&items[i]))
	}
	return out, nil
}
