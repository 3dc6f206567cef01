package booking

import (
	"context"
	"errors"

	"alxtravel/internal/domain"
	"alxtravel/internal/metrics"

	"gorm.io/gorm"
)

type Service struct {
	bookings BookingRepository
	listings ListingRepository
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, listings ListingRepository, notifs NotificationSender) *Service {
	return &Service{bookings: bookings, listings: listings, notifs: notifs}
}

func (s *Service) CreateBooking(ctx context.Context, userID int64, req CreateBookingRequest) (*BookingResponse, error) {
	start, end, err := req.Dates()
	if err != nil {
		return nil, err
	}

	l, err := s.listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	if l.OwnerID == userID {
		return nil, ErrSelfBooking
	}

	b := &domain.Booking{
		ListingID: l.ID,
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		Guests:    req.GuestCount(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.IncBookingCreated()

	if s.notifs != nil {
		s.notifs.NotifyBookingCreated(ctx, b)
	}

	res := NewBookingResponse(b)
	return &res, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]BookingResponse, error) {
	bs, err := s.bookings.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return NewBookingResponses(bs), nil
}

// GetBooking is visible to the guest and to the listing owner.
func (s *Service) GetBooking(ctx context.Context, userID, bookingID int64) (*BookingResponse, error) {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID && (b.Listing == nil || b.Listing.OwnerID != userID) {
		return nil, ErrForbidden
	}

	res := NewBookingResponse(b)
	return &res, nil
}

// Cancel deletes a booking. Only the guest who made it may cancel.
func (s *Service) Cancel(ctx context.Context, userID, bookingID int64) error {
	b, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return ErrForbidden
	}

	if err := s.bookings.Delete(ctx, b.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	metrics.IncBookingCancelled()

	if s.notifs != nil {
		s.notifs.NotifyBookingCancelled(ctx, b)
	}
	return nil
}

// ListForListing returns all bookings of a listing. Ownership is checked by the caller.
func (s *Service) ListForListing(ctx context.Context, listingID int64) ([]BookingResponse, error) {
	bs, err := s.bookings.GetByListingID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	return NewBookingResponses(bs), nil
}

func (s *Service) load(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}
