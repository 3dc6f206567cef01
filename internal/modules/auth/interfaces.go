package auth

import (
	"context"

	"alxtravel/internal/domain"
)

// UserRepository — only the methods the auth service uses
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, username string) (string, error)
}

type RefreshTokenStore interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id int64, replacedByID *int64) (bool, error)
	RevokeByUser(ctx context.Context, userID int64) error
}
