package repository

import (
	"context"
	"time"

	"alxtravel/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RefreshTokenRepository struct {
	db *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

func (r *RefreshTokenRepository) Create(ctx context.Context, t *domain.RefreshToken) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.db.WithContext(ctx).Where("token_hash = ?", hash).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Revoke marks a live token revoked. It reports false when the token was already revoked,
// which lets concurrent refreshes of the same token lose cleanly.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, id int64, replacedByID *int64) (bool, error) {
	updates := map[string]any{"revoked_at": time.Now().UTC()}
	if replacedByID != nil {
		updates["replaced_by_id"] = *replacedByID
	}
	res := r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

func (r *RefreshTokenRepository) RevokeByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&domain.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", time.Now().UTC()).Error
}

// DeleteStale removes expired tokens and tokens revoked before revokedBefore.
func (r *RefreshTokenRepository) DeleteStale(ctx context.Context, now, revokedBefore time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", now, revokedBefore).
		Delete(&domain.RefreshToken{})
	return res.RowsAffected, res.Error
}
