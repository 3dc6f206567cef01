package domain

import "time"

// RefreshToken is a long-lived credential exchanged for new access tokens. Only the
// SHA-256 hash of the raw token is stored; each refresh revokes the old row and links it
// to its replacement.
type RefreshToken struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id" gorm:"index;not null"`
	TokenHash string `json:"-" gorm:"size:64;uniqueIndex;not null"`

	CreatedAt    time.Time  `json:"created_at"`
	ExpiresAt    time.Time  `json:"expires_at" gorm:"index;not null"`
	RevokedAt    *time.Time `json:"revoked_at" gorm:"index"`
	ReplacedByID *int64     `json:"replaced_by_id"`

	User *User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}
