package domain

import "time"

type Listing struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title" gorm:"size:200;not null;index"`
	Description   string    `json:"description" gorm:"type:text"`
	Location      string    `json:"location" gorm:"size:255;index"`
	PricePerNight float64   `json:"price_per_night" gorm:"type:numeric(10,2);not null"`
	OwnerID       int64     `json:"owner_id" gorm:"not null;index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
}

// OwnerName returns the owner's display string, or "" when the owner is not loaded.
func (l *Listing) OwnerName() string {
	if l.Owner == nil {
		return ""
	}
	return l.Owner.String()
}
