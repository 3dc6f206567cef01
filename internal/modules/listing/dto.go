package listing

import (
	"strconv"
	"time"

	"alxtravel/internal/domain"
	"alxtravel/internal/repository"
)

// ListingResponse is the public projection of a listing. Owner is the owner's display
// string and is never accepted on input.
type ListingResponse struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	PricePerNight string    `json:"price_per_night"`
	Owner         string    `json:"owner"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		Location:      l.Location,
		PricePerNight: FormatPrice(l.PricePerNight),
		Owner:         l.OwnerName(),
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func NewListingResponses(ls []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(ls))
	for i := range ls {
		out = append(out, NewListingResponse(&ls[i]))
	}
	return out
}

// FormatPrice renders a currency amount with exactly two decimals.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

type CreateListingRequest struct {
	Title         string  `json:"title" binding:"required,max=200"`
	Description   string  `json:"description"`
	Location      string  `json:"location" binding:"required,max=255"`
	PricePerNight float64 `json:"price_per_night" binding:"required,gt=0,lt=100000000"`
}

type UpdateListingRequest struct {
	Title         *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description   *string  `json:"description"`
	Location      *string  `json:"location" binding:"omitempty,min=1,max=255"`
	PricePerNight *float64 `json:"price_per_night" binding:"omitempty,gt=0,lt=100000000"`
}

type ListFilter struct {
	Location string
	Limit    int
	Offset   int
}

// Page returns the paging window actually applied to the query.
func (f ListFilter) Page() (limit, offset int) {
	return repository.ClampPage(f.Limit, f.Offset)
}
