package review

import (
	"time"

	"alxtravel/internal/domain"
)

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"max=5000"`
}

type ReviewResponse struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id"`
	User      string    `json:"user"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Count   int64            `json:"count"`
	Average float64          `json:"average_rating"`
}

func NewReviewResponse(rv *domain.Review) ReviewResponse {
	res := ReviewResponse{
		ID:        rv.ID,
		ListingID: rv.ListingID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
	if rv.User != nil {
		res.User = rv.User.String()
	}
	return res
}
