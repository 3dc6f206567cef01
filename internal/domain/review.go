package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id" gorm:"not null;uniqueIndex:idx_review_listing_user"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_review_listing_user"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
