package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"alxtravel/internal/domain"
	"alxtravel/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service contains the business logic for registration and login
type Service struct {
	users    UserRepository
	tokens   TokenIssuer
	tokenTTL time.Duration

	refresh    RefreshTokenStore
	refreshTTL time.Duration
	now        func() time.Time
}

func NewService(users UserRepository, tokens TokenIssuer, tokenTTL time.Duration) *Service {
	return &Service{users: users, tokens: tokens, tokenTTL: tokenTTL, now: time.Now}
}

// WithRefreshTokens enables refresh tokens on login and register.
func (s *Service) WithRefreshTokens(store RefreshTokenStore, ttl time.Duration) *Service {
	s.refresh = store
	s.refreshTTL = ttl
	return s
}

// HashPassword bcrypt-hashes a plain password with the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*TokenResponse, error) {
	username := strings.TrimSpace(req.Username)

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	return s.issue(ctx, user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(ctx, user)
}

func (s *Service) Me(ctx context.Context, userID int64) (*UserPublic, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}

	pub := toPublic(user)
	return &pub, nil
}

// Refresh exchanges a live refresh token for a new token pair and revokes the old one.
// Presenting an already revoked token revokes every token of its user.
func (s *Service) Refresh(ctx context.Context, raw string) (*TokenResponse, error) {
	if s.refresh == nil || strings.TrimSpace(raw) == "" {
		return nil, ErrInvalidRefreshToken
	}

	stored, err := s.refresh.GetByHash(ctx, hashToken(raw))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}
	if stored.IsRevoked() {
		if err := s.refresh.RevokeByUser(ctx, stored.UserID); err != nil {
			return nil, err
		}
		return nil, ErrInvalidRefreshToken
	}
	if stored.IsExpired(s.now()) {
		return nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	res, next, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	ok, err := s.refresh.Revoke(ctx, stored.ID, &next.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// lost a race with another refresh of the same token
		_, _ = s.refresh.Revoke(ctx, next.ID, nil)
		return nil, ErrInvalidRefreshToken
	}
	return res, nil
}

// Logout revokes every refresh token of the user.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrUnauthorized
	}
	if s.refresh == nil {
		return nil
	}
	return s.refresh.RevokeByUser(ctx, userID)
}

func (s *Service) issue(ctx context.Context, user *domain.User) (*TokenResponse, error) {
	res, _, err := s.issuePair(ctx, user)
	return res, err
}

func (s *Service) issuePair(ctx context.Context, user *domain.User) (*TokenResponse, *domain.RefreshToken, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, nil, err
	}

	res := &TokenResponse{
		User:        toPublic(user),
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL.Seconds()),
	}
	if s.refresh == nil {
		return res, nil, nil
	}

	raw, err := newRefreshToken()
	if err != nil {
		return nil, nil, err
	}
	stored := &domain.RefreshToken{
		UserID:    user.ID,
		TokenHash: hashToken(raw),
		ExpiresAt: s.now().UTC().Add(s.refreshTTL),
	}
	if err := s.refresh.Create(ctx, stored); err != nil {
		return nil, nil, err
	}

	res.RefreshToken = raw
	return res, stored, nil
}

func newRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
