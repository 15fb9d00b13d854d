package repository

import (
	"context"
	"strings"
	"time"

	"nostagram/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func toLower(s string) string { return strings.ToLower(s) }

// TokenRepository defines the interface for push token data operations
type TokenRepository interface {
	Upsert(ctx context.Context, token *models.FCMToken) error
	ListByUser(ctx context.Context, userID uint) ([]models.FCMToken, error)
	Delete(ctx context.Context, userID uint, token string) error
	DeleteTokens(ctx context.Context, tokens []string) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new push token repository
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

// Upsert registers a device token, refreshing device info and timestamp when
// the (user, token) pair already exists.
func (r *tokenRepository) Upsert(ctx context.Context, token *models.FCMToken) error {
	token.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"device_info", "updated_at"}),
		}).
		Create(token).Error
}

func (r *tokenRepository) ListByUser(ctx context.Context, userID uint) ([]models.FCMToken, error) {
	var tokens []models.FCMToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&tokens).Error
	return tokens, err
}

func (r *tokenRepository) Delete(ctx context.Context, userID uint, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&models.FCMToken{}).Error
}

// DeleteTokens removes tokens the provider reported as permanently invalid,
// regardless of which user they belong to.
func (r *tokenRepository) DeleteTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("token IN ?", tokens).
		Delete(&models.FCMToken{})
	return res.RowsAffected, res.Error
}
