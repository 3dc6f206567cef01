package repository

import (
	"context"
	"errors"

	"alxtravel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Listing").Preload("Listing.Owner").Preload("User")
}

// Create inserts b and reloads it with listing, listing owner and user attached.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return err
	}
	loaded, err := r.GetByID(ctx, b.ID)
	if err != nil {
		return err
	}
	*b = *loaded
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.withRelations(r.db.WithContext(ctx)).First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error) {
	limit, offset = ClampPage(limit, offset)

	var out []domain.Booking
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("start_date ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) GetByListingID(ctx context.Context, listingID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("listing_id = ?", listingID).
		Order("start_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetOrCreate matches on (listing, user, start_date, end_date); guests is only used for inserts.
func (r *BookingRepository) GetOrCreate(ctx context.Context, b *domain.Booking) (*domain.Booking, bool, error) {
	var existing domain.Booking
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ? AND start_date = ? AND end_date = ?",
			b.ListingID, b.UserID, b.StartDate, b.EndDate).
		First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	created := *b
	created.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&created).Error; err != nil {
		return nil, false, err
	}
	return &created, true, nil
}
