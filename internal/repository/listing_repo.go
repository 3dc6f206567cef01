package repository

import (
	"context"
	"errors"

	"alxtravel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ListingFilters struct {
	Location string
	OwnerID  int64
	Limit    int
	Offset   int
}

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// GetAll returns listings matching f, newest first, along with the unpaged total.
func (r *ListingRepository) GetAll(ctx context.Context, f ListingFilters) ([]domain.Listing, int64, error) {
	var listings []domain.Listing
	var total int64

	q := r.db.WithContext(ctx).Model(&domain.Listing{})

	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE LOWER(?)", "%"+f.Location+"%")
	}
	if f.OwnerID > 0 {
		q = q.Where("owner_id = ?", f.OwnerID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := ClampPage(f.Limit, f.Offset)
	err := q.
		Preload("Owner").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&listings).Error

	return listings, total, err
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.WithContext(ctx).
		Preload("Owner").
		First(&l, id).Error
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(l).Error
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(l).Error
}

// Delete removes the listing together with its bookings and reviews.
func (r *ListingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&domain.Review{}).Error; err != nil {
			return err
		}
		if err := tx.Where("listing_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Listing{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetOrCreate looks a listing up by (title, owner) and inserts defaults when none exists.
func (r *ListingRepository) GetOrCreate(ctx context.Context, title string, ownerID int64, defaults *domain.Listing) (*domain.Listing, bool, error) {
	var existing domain.Listing
	err := r.db.WithContext(ctx).
		Where("title = ? AND owner_id = ?", title, ownerID).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	l := *defaults
	l.ID = 0
	l.Title = title
	l.OwnerID = ownerID
	l.Owner = nil
	if err := r.Create(ctx, &l); err != nil {
		return nil, false, err
	}
	return &l, true, nil
}
