package repository

import (
	"context"
	"errors"

	"alxtravel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type RatingSummary struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rv).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").First(rv, rv.ID).Error
}

func (r *ReviewRepository) GetByListing(ctx context.Context, listingID int64, limit, offset int) ([]domain.Review, error) {
	limit, offset = ClampPage(limit, offset)

	var out []domain.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("listing_id = ?", listingID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *ReviewRepository) Summary(ctx context.Context, listingID int64) (*RatingSummary, error) {
	var row struct {
		Count   int64
		Average *float64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COUNT(*) AS count, AVG(rating) AS average").
		Where("listing_id = ?", listingID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	s := &RatingSummary{Count: row.Count}
	if row.Average != nil {
		s.Average = *row.Average
	}
	return s, nil
}

// GetOrCreate matches on (listing, user); rating and comment are only used for inserts.
func (r *ReviewRepository) GetOrCreate(ctx context.Context, rv *domain.Review) (*domain.Review, bool, error) {
	var existing domain.Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", rv.ListingID, rv.UserID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	created := *rv
	created.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&created).Error; err != nil {
		return nil, false, err
	}
	return &created, true, nil
}
