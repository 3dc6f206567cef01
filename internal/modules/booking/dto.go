package booking

import (
	"time"

	"alxtravel/internal/domain"
	"alxtravel/internal/modules/listing"
)

// CreateBookingRequest is the writable side of a booking. ListingID is write-only:
// responses carry the nested listing instead.
type CreateBookingRequest struct {
	ListingID int64  `json:"listing_id" binding:"required,gt=0"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Guests    *int   `json:"guests" binding:"omitempty,gte=1,lte=100"`
}

// Dates parses the date range and enforces end > start.
func (r CreateBookingRequest) Dates() (start, end time.Time, err error) {
	start, err = time.Parse(domain.DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err = time.Parse(domain.DateLayout, r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	if err := ValidateDates(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (r CreateBookingRequest) GuestCount() int {
	if r.Guests == nil {
		return 1
	}
	return *r.Guests
}

// ValidateDates rejects ranges where end is not strictly after start.
func ValidateDates(start, end time.Time) error {
	if !domain.TruncateDate(end).After(domain.TruncateDate(start)) {
		return ErrEndBeforeStart
	}
	return nil
}

type BookingResponse struct {
	ID        int64                    `json:"id"`
	Listing   *listing.ListingResponse `json:"listing"`
	User      string                   `json:"user"`
	StartDate string                   `json:"start_date"`
	EndDate   string                   `json:"end_date"`
	Guests    int                      `json:"guests"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func NewBookingResponse(b *domain.Booking) BookingResponse {
	res := BookingResponse{
		ID:        b.ID,
		StartDate: b.StartDate.Format(domain.DateLayout),
		EndDate:   b.EndDate.Format(domain.DateLayout),
		Guests:    b.Guests,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Listing != nil {
		l := listing.NewListingResponse(b.Listing)
		res.Listing = &l
	}
	if b.User != nil {
		res.User = b.User.String()
	}
	return res
}

func NewBookingResponses(bs []domain.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(bs))
	for i := range bs {
		out = append(out, NewBookingResponse(&bs[i]))
	}
	return out
}
