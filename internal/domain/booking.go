package domain

import "time"

// DateLayout is the wire and storage format for booking dates.
const DateLayout = "2006-01-02"

type Booking struct {
	ID        int64     `json:"id"`
	ListingID int64     `json:"listing_id" gorm:"not null;index"`
	UserID    int64     `json:"user_id" gorm:"not null;index"`
	StartDate time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate   time.Time `json:"end_date" gorm:"type:date;not null"`
	Guests    int       `json:"guests" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// Nights is the number of nights between start and end date.
func (b *Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}

// TruncateDate drops the clock part of t and pins it to UTC midnight.
func TruncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
