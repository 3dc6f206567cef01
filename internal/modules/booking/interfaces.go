package booking

import (
	"context"

	"alxtravel/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, limit, offset int) ([]domain.Booking, error)
	GetByListingID(ctx context.Context, listingID int64) ([]domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
}

// NotificationSender is implemented by notification.Notifier.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking)
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking)
}
