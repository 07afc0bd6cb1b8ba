package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"umto/internal/model"
)

// TokenRepository defines persistence operations on session tokens.
type TokenRepository interface {
	// Rotate deactivates every token of the user and records token as the new
	// active one, inside a single transaction. On error nothing is applied.
	Rotate(ctx context.Context, userID uint, token string) error
	// DeactivateAll revokes every active token of the user.
	DeactivateAll(ctx context.Context, userID uint) error
	// FindActive reports whether token is recorded as the active token of the
	// user.
	FindActive(ctx context.Context, userID uint, token string) (bool, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository builds a GORM-backed repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Rotate(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.SessionToken{}).
			Where("user_id = ?", userID).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(&model.SessionToken{
			UserID:    userID,
			Token:     token,
			Active:    true,
			CreatedAt: time.Now().UTC(),
		}).Error
	})
}

func (r *tokenRepository) DeactivateAll(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&model.SessionToken{}).
		Where("user_id = ?", userID).
		Update("active", false).Error
}

func (r *tokenRepository) FindActive(ctx context.Context, userID uint, token string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SessionToken{}).
		Where("user_id = ? AND token = ? AND active = ?", userID, token, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
